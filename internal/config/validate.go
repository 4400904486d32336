package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptySourceRoot indicates a missing local source root
	ErrEmptySourceRoot = errors.New("empty source root")

	// ErrInvalidExcludeDir indicates an exclude entry that is not a bare directory name
	ErrInvalidExcludeDir = errors.New("invalid exclude dir")

	// ErrEmptyCratePrefix indicates a missing dependency crate prefix
	ErrEmptyCratePrefix = errors.New("empty crate prefix")

	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidWatchSettings indicates invalid watch mode configuration
	ErrInvalidWatchSettings = errors.New("invalid watch settings")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateSource(&cfg.Source); err != nil {
		errs = append(errs, err)
	}

	if err := validateCrates(&cfg.Crates); err != nil {
		errs = append(errs, err)
	}

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}

	if err := validateWatch(&cfg.Watch); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateSource(cfg *SourceConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.Root) == "" {
		errs = append(errs, fmt.Errorf("%w: source.root is required", ErrEmptySourceRoot))
	}

	// Exclusion works on directory base names, so path fragments would
	// silently never match.
	for _, dir := range cfg.ExcludeDirs {
		if strings.ContainsAny(dir, `/\`) || strings.TrimSpace(dir) == "" {
			errs = append(errs, fmt.Errorf("%w: must be a bare directory name, got '%s'", ErrInvalidExcludeDir, dir))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateCrates(cfg *CratesConfig) error {
	// An empty prefix would select every dependency in the graph, which is
	// never what anyone wants from this check.
	if strings.TrimSpace(cfg.Prefix) == "" {
		return fmt.Errorf("%w: crates.prefix is required", ErrEmptyCratePrefix)
	}

	return nil
}

func validateOutput(cfg *OutputConfig) error {
	format := strings.ToLower(cfg.Format)
	if format != "debug" && format != "table" && format != "json" {
		return fmt.Errorf("%w: must be 'debug', 'table' or 'json', got '%s'", ErrInvalidFormat, cfg.Format)
	}

	return nil
}

func validateWatch(cfg *WatchConfig) error {
	var errs []error

	if cfg.DebounceMs < 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidWatchSettings, cfg.DebounceMs))
	}

	if cfg.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: cache_size must be positive, got %d", ErrInvalidWatchSettings, cfg.CacheSize))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
