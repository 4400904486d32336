package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	projectDir string
	configFile string
}

// NewLoader creates a configuration loader that searches the given project
// directory for .reflect-check.yml.
func NewLoader(projectDir string) Loader {
	return &loader{
		projectDir: projectDir,
	}
}

// NewLoaderWithFile creates a loader bound to an explicit config file. The
// file must exist; there is no silent fallback to defaults for a path the
// user asked for.
func NewLoaderWithFile(configFile string) Loader {
	return &loader{
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (REFLECT_CHECK_*)
// 2. Config file (.reflect-check.yml in the project directory)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName(".reflect-check")
		v.SetConfigType("yaml")
		v.AddConfigPath(l.projectDir)
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("REFLECT_CHECK")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., REFLECT_CHECK_CRATES_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables to config keys. List-valued keys
	// (exclude_dirs, ignore) stay file-only.
	v.BindEnv("source.root")
	v.BindEnv("crates.prefix")
	v.BindEnv("check.public_only")
	v.BindEnv("output.format")
	v.BindEnv("watch.debounce_ms")
	v.BindEnv("watch.cache_size")

	// Set defaults in viper
	setDefaults(v)

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is acceptable when searching the project
		// directory - defaults plus env vars apply. An explicit file that
		// cannot be read is an error either way.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate the configuration
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("source.root", defaults.Source.Root)
	v.SetDefault("source.exclude_dirs", defaults.Source.ExcludeDirs)
	v.SetDefault("source.ignore", defaults.Source.Ignore)
	v.SetDefault("crates.prefix", defaults.Crates.Prefix)
	v.SetDefault("check.public_only", defaults.Check.PublicOnly)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
	v.SetDefault("watch.cache_size", defaults.Watch.CacheSize)
}

// LoadConfig is a convenience function that creates a loader and loads
// config from the current working directory.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific project directory.
func LoadConfigFromDir(projectDir string) (*Config, error) {
	return NewLoader(projectDir).Load()
}
