// Package config provides configuration loading for reflect-check.
//
// Settings live in .reflect-check.yml in the project directory and are
// loaded via viper, so every key can also be set through the environment.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Environment variables (REFLECT_CHECK_*)
//  2. Project config (.reflect-check.yml)
//  3. Built-in defaults
//
// Environment Variable Convention:
//   - Prefix: REFLECT_CHECK_
//   - Nested fields: Use underscores (REFLECT_CHECK_CRATES_PREFIX)
//   - Automatic mapping via Viper's SetEnvKeyReplacer
package config

// Config represents the complete reflect-check configuration.
// It can be loaded from .reflect-check.yml with environment variable overrides.
type Config struct {
	Source SourceConfig `yaml:"source" mapstructure:"source"`
	Crates CratesConfig `yaml:"crates" mapstructure:"crates"`
	Check  CheckConfig  `yaml:"check" mapstructure:"check"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Watch  WatchConfig  `yaml:"watch" mapstructure:"watch"`
}

// SourceConfig defines where the local sources live and what to skip.
type SourceConfig struct {
	Root        string   `yaml:"root" mapstructure:"root"`                 // local source root, relative to the project dir
	ExcludeDirs []string `yaml:"exclude_dirs" mapstructure:"exclude_dirs"` // directory names pruned wherever they appear
	Ignore      []string `yaml:"ignore" mapstructure:"ignore"`             // glob patterns to ignore
}

// CratesConfig selects which dependency crates are scanned.
type CratesConfig struct {
	Prefix string `yaml:"prefix" mapstructure:"prefix"` // crate name prefix, e.g. "bevy_"
}

// CheckConfig tunes the check itself.
type CheckConfig struct {
	PublicOnly bool `yaml:"public_only" mapstructure:"public_only"` // report only types visible outside their crate
}

// OutputConfig defines how findings are rendered.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "debug", "table" or "json"
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before a rescan
	CacheSize  int `yaml:"cache_size" mapstructure:"cache_size"`   // max entries in the parse cache
}

// Default returns a configuration with sensible defaults: scan ./src plus
// all bevy_* dependency crates and report public types only.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Root:        "src",
			ExcludeDirs: []string{"examples", "tests"},
			Ignore:      []string{},
		},
		Crates: CratesConfig{
			Prefix: "bevy_",
		},
		Check: CheckConfig{
			PublicOnly: true,
		},
		Output: OutputConfig{
			Format: "debug",
		},
		Watch: WatchConfig{
			DebounceMs: 500,
			CacheSize:  4096,
		},
	}
}
