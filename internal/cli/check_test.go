package cli

// Test Plan for Check Command:
// - applyFlagOverrides leaves the configuration untouched when no flags are set
// - applyFlagOverrides copies explicitly set flags over loaded values
// - applyFlagOverrides turns --include-private into public_only=false
// - applyFlagOverrides rejects invalid flag values via validation
// - loadConfig falls back to defaults in a directory with no config file
// - loadConfig reports a missing explicit config file

import (
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anlumo/bevy-reflect-check/internal/config"
)

// newOverrideFlags builds the same override flag set the root command carries.
func newOverrideFlags(t *testing.T) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("check", pflag.ContinueOnError)
	registerOverrideFlags(flags)
	return flags
}

func TestApplyFlagOverrides_NoFlags(t *testing.T) {
	// Test: Configuration is untouched when no flags are set
	flags := newOverrideFlags(t)
	cfg := config.Default()

	require.NoError(t, applyFlagOverrides(cfg, flags))

	assert.Equal(t, config.Default(), cfg)
}

func TestApplyFlagOverrides_SetFlags(t *testing.T) {
	// Test: Explicitly set flags override loaded values
	flags := newOverrideFlags(t)
	require.NoError(t, flags.Set("crate-prefix", "engine_"))
	require.NoError(t, flags.Set("source-root", "game/src"))
	require.NoError(t, flags.Set("format", "json"))

	cfg := config.Default()
	require.NoError(t, applyFlagOverrides(cfg, flags))

	assert.Equal(t, "engine_", cfg.Crates.Prefix)
	assert.Equal(t, "game/src", cfg.Source.Root)
	assert.Equal(t, "json", cfg.Output.Format)

	// Untouched keys keep their loaded values
	assert.True(t, cfg.Check.PublicOnly)
	assert.Equal(t, []string{"examples", "tests"}, cfg.Source.ExcludeDirs)
}

func TestApplyFlagOverrides_IncludePrivate(t *testing.T) {
	// Test: --include-private disables the public-only filter
	flags := newOverrideFlags(t)
	require.NoError(t, flags.Set("include-private", "true"))

	cfg := config.Default()
	require.NoError(t, applyFlagOverrides(cfg, flags))

	assert.False(t, cfg.Check.PublicOnly)
}

func TestApplyFlagOverrides_InvalidFormat(t *testing.T) {
	// Test: Flag values go through the same validation as file values
	flags := newOverrideFlags(t)
	require.NoError(t, flags.Set("format", "xml"))

	cfg := config.Default()
	err := applyFlagOverrides(cfg, flags)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "output format")
}

func TestLoadConfig_DefaultsWithoutConfigFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Chdir()

	// Test: A project directory without a config file yields the defaults
	t.Chdir(t.TempDir())

	cfg, err := loadConfig(newOverrideFlags(t))

	require.NoError(t, err)
	assert.Equal(t, "src", cfg.Source.Root)
	assert.Equal(t, "bevy_", cfg.Crates.Prefix)
	assert.Equal(t, "debug", cfg.Output.Format)
	assert.True(t, cfg.Check.PublicOnly)
}

func TestLoadConfig_MissingExplicitConfigFile(t *testing.T) {
	// Test: An explicit --config path that does not exist is an error
	original := cfgFile
	cfgFile = filepath.Join(t.TempDir(), "missing.yml")
	defer func() { cfgFile = original }()

	_, err := loadConfig(newOverrideFlags(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
