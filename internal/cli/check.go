package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/anlumo/bevy-reflect-check/internal/cargo"
	"github.com/anlumo/bevy-reflect-check/internal/config"
	"github.com/anlumo/bevy-reflect-check/internal/report"
	"github.com/anlumo/bevy-reflect-check/internal/scanner"
	"github.com/anlumo/bevy-reflect-check/internal/watcher"
)

func runCheck(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted! Cancelling check...")
		cancel()
	}()

	logger := newLogger()

	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	if watchFlag {
		return runWatch(ctx, cmd, cfg, logger)
	}

	progress := NewCLIProgressReporter(quietFlag)
	s, err := scanner.NewWithProgress(cfg.ToScannerConfig(), logger, progress, nil)
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}

	meta, err := fetchMetadata(ctx, progress, cfg.Crates.Prefix)
	if err != nil {
		return err
	}

	result, err := s.Scan(ctx, meta)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("check cancelled")
		}
		return fmt.Errorf("scan failed: %w", err)
	}

	return report.Write(cmd.OutOrStdout(), cfg.Output.Format, result)
}

// runWatch performs an initial check, then re-checks whenever the local
// source tree changes. Dependency crates are not watched: registry sources
// only change together with the metadata each rescan re-fetches anyway.
func runWatch(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *log.Logger) error {
	cache, err := scanner.NewParseCache(cfg.Watch.CacheSize)
	if err != nil {
		return err
	}
	defer cache.Close()

	scanConfig := cfg.ToScannerConfig()
	out := cmd.OutOrStdout()

	runScan := func() error {
		progress := NewCLIProgressReporter(quietFlag)
		s, err := scanner.NewWithProgress(scanConfig, logger, progress, cache)
		if err != nil {
			return fmt.Errorf("failed to create scanner: %w", err)
		}
		meta, err := fetchMetadata(ctx, progress, cfg.Crates.Prefix)
		if err != nil {
			return err
		}
		result, err := s.Scan(ctx, meta)
		if err != nil {
			return err
		}
		return report.Write(out, cfg.Output.Format, result)
	}

	// The initial check keeps single-run semantics: a metadata failure here
	// is fatal rather than skipped
	if err := runScan(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("check cancelled")
		}
		return err
	}

	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	sw, err := watcher.New(cfg.Source.Root, debounce, logger)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.Source.Root, err)
	}
	defer sw.Stop()

	err = sw.Start(ctx, func(files []string) {
		logger.Debug("source changes detected", "files", len(files))
		if err := runScan(); err != nil && ctx.Err() == nil {
			logger.Warn("rescan skipped", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	if !quietFlag {
		fmt.Fprintln(os.Stderr, "Watching for changes. Press Ctrl+C to stop.")
	}

	<-ctx.Done()
	return nil
}

// newLogger builds the stderr diagnostics logger. Per-file skips only
// surface under --verbose.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "reflect-check"})
	logger.SetLevel(log.WarnLevel)
	if verboseFlag {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads the project configuration and layers flag overrides on top.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.NewLoaderWithFile(cfgFile).Load()
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := applyFlagOverrides(cfg, flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlagOverrides copies explicitly set flags over the loaded
// configuration and re-validates, since flag values bypass the loader.
func applyFlagOverrides(cfg *config.Config, flags *pflag.FlagSet) error {
	if flags.Changed("crate-prefix") {
		prefix, err := flags.GetString("crate-prefix")
		if err != nil {
			return err
		}
		cfg.Crates.Prefix = prefix
	}
	if flags.Changed("source-root") {
		root, err := flags.GetString("source-root")
		if err != nil {
			return err
		}
		cfg.Source.Root = root
	}
	if flags.Changed("format") {
		format, err := flags.GetString("format")
		if err != nil {
			return err
		}
		cfg.Output.Format = format
	}
	includePrivate, err := flags.GetBool("include-private")
	if err != nil {
		return err
	}
	if includePrivate {
		cfg.Check.PublicOnly = false
	}

	return config.Validate(cfg)
}

// fetchMetadata queries cargo for the dependency graph, reporting progress
// around the call. Without metadata there is nothing to resolve crates
// against, so failures propagate to the caller.
func fetchMetadata(ctx context.Context, progress scanner.ProgressReporter, prefix string) (*cargo.Metadata, error) {
	progress.OnMetadataStart()

	metaCmd := &cargo.MetadataCommand{}
	meta, err := metaCmd.Exec(ctx)
	if err != nil {
		return nil, err
	}

	progress.OnMetadataComplete(len(meta.Packages), len(meta.PackagesWithPrefix(prefix)))
	return meta, nil
}
