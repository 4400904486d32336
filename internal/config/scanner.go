package config

import (
	"github.com/anlumo/bevy-reflect-check/internal/scanner"
)

// ToScannerConfig converts a Config to a scanner.Config.
// The source root is passed through as configured, relative to the working
// directory, so local files stay distinct from the absolute crate roots that
// cargo metadata reports.
func (c *Config) ToScannerConfig() *scanner.Config {
	return &scanner.Config{
		SourceRoot:     c.Source.Root,
		ExcludeDirs:    c.Source.ExcludeDirs,
		IgnorePatterns: c.Source.Ignore,
		CratePrefix:    c.Crates.Prefix,
		PublicOnly:     c.Check.PublicOnly,
	}
}
