package scanner

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/anlumo/bevy-reflect-check/internal/cargo"
)

// Config contains configuration for the scanner.
type Config struct {
	// Root directory of the local project's sources, usually "src"
	SourceRoot string

	// Directory names pruned wherever they appear in a walked tree
	ExcludeDirs []string

	// Glob patterns for paths to skip, relative to each walk root
	IgnorePatterns []string

	// Name prefix selecting the dependency crates to scan
	CratePrefix string

	// Report only types that are pub all the way up the module tree
	PublicOnly bool
}

// DefaultConfig returns the configuration the tool ships with: scan the
// local src tree plus all bevy_* dependencies, skip examples and tests,
// report public types only.
func DefaultConfig() *Config {
	return &Config{
		SourceRoot:  "src",
		ExcludeDirs: []string{"examples", "tests"},
		CratePrefix: "bevy_",
		PublicOnly:  true,
	}
}

// Scanner finds Reflect+Component types that are missing their
// #[reflect(Component)] registration across a project and its dependency
// crates.
type Scanner struct {
	config    *Config
	discovery *FileDiscovery
	progress  ProgressReporter
	logger    *log.Logger
	cache     *ParseCache
}

// New creates a scanner with silent progress reporting and no parse cache.
func New(config *Config, logger *log.Logger) (*Scanner, error) {
	return NewWithProgress(config, logger, &NoOpProgressReporter{}, nil)
}

// NewWithProgress creates a scanner with a custom progress reporter and an
// optional parse cache shared across Scan calls. A nil progress reporter
// falls back to NoOpProgressReporter; a nil cache disables caching.
func NewWithProgress(config *Config, logger *log.Logger, progress ProgressReporter, cache *ParseCache) (*Scanner, error) {
	discovery, err := NewFileDiscovery(config.ExcludeDirs, config.IgnorePatterns)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scanner{
		config:    config,
		discovery: discovery,
		progress:  progress,
		logger:    logger,
		cache:     cache,
	}, nil
}

// Scan discovers, parses and checks every source file reachable from the
// local project and the prefixed dependency crates. Findings appear in walk
// order: the local tree first, then each matching crate in metadata order.
// The same logical file reached through two roots is reported twice, once
// per resolved module path.
func (s *Scanner) Scan(ctx context.Context, meta *cargo.Metadata) (*Result, error) {
	start := time.Now()

	roots := make([]crateRoot, 0, len(meta.Packages))
	for _, pkg := range meta.Packages {
		roots = append(roots, crateRoot{dir: pkg.RootDir(), name: pkg.Name})
	}
	matched := meta.PackagesWithPrefix(s.config.CratePrefix)

	s.progress.OnDiscoveryStart()
	paths := s.discovery.Collect(s.config.SourceRoot)
	for _, pkg := range matched {
		paths = append(paths, s.discovery.Collect(pkg.RootDir())...)
	}
	s.progress.OnDiscoveryComplete(len(paths))

	loader := NewLoader()
	defer loader.Close()

	result := &Result{Stats: ScanStats{
		FilesDiscovered: len(paths),
		CratesScanned:   len(matched),
	}}

	s.progress.OnScanStart(len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.checkFile(loader, path, roots, result)
		s.progress.OnFileScanned(path)
	}

	result.Stats.Findings = len(result.Findings)
	result.Stats.Duration = time.Since(start)
	s.progress.OnComplete(&result.Stats)
	return result, nil
}

// checkFile resolves, parses and walks one file, appending its findings to
// the result. Files outside every known root and files that cannot be read
// or parsed are skipped, not fatal: a broken source under a dependency
// crate must not kill the whole scan.
func (s *Scanner) checkFile(loader *Loader, path string, roots []crateRoot, result *Result) {
	modPath, ok := resolveModulePath(path, roots, s.config.SourceRoot)
	if !ok {
		s.logger.Debug("skipping file outside known roots", "file", path)
		result.Stats.FilesSkipped++
		return
	}

	if s.cache != nil {
		if findings, hit := s.cache.Get(path, modPath, s.config.PublicOnly); hit {
			result.Findings = append(result.Findings, findings...)
			result.Stats.FilesScanned++
			result.Stats.CacheHits++
			return
		}
	}

	src, err := loader.Load(path)
	if err != nil {
		s.logger.Debug("skipping file", "file", path, "err", err)
		result.Stats.FilesSkipped++
		return
	}
	defer src.Close()

	findings := CollectFindings(src.Root(), src.Source, path, modPath, s.config.PublicOnly)
	if s.cache != nil {
		s.cache.Put(path, modPath, s.config.PublicOnly, findings)
	}
	result.Findings = append(result.Findings, findings...)
	result.Stats.FilesScanned++
}
