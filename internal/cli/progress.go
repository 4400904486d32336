package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/anlumo/bevy-reflect-check/internal/scanner"
)

// CLIProgressReporter implements scanner.ProgressReporter with progress bars.
// Everything goes to stderr so findings on stdout stay pipeable.
type CLIProgressReporter struct {
	quiet   bool
	scanBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnMetadataStart() {
	if c.quiet {
		return
	}
	fmt.Fprintln(os.Stderr, "Resolving cargo metadata...")
}

func (c *CLIProgressReporter) OnMetadataComplete(packages, matched int) {
	if c.quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "Resolved %d packages, %d matching the crate prefix\n", packages, matched)
}

func (c *CLIProgressReporter) OnDiscoveryStart() {
	if c.quiet {
		return
	}
	fmt.Fprintln(os.Stderr, "Discovering source files...")
}

func (c *CLIProgressReporter) OnDiscoveryComplete(totalFiles int) {
	if c.quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "Found %d source files\n", totalFiles)
}

func (c *CLIProgressReporter) OnScanStart(totalFiles int) {
	if c.quiet {
		return
	}

	c.scanBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}

func (c *CLIProgressReporter) OnFileScanned(fileName string) {
	if c.quiet {
		return
	}
	if c.scanBar != nil {
		c.scanBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(stats *scanner.ScanStats) {
	if c.quiet {
		return
	}
	if c.scanBar != nil {
		c.scanBar.Finish()
		c.scanBar = nil
	}

	fmt.Fprintf(os.Stderr, "✓ Scanned %d files across %d crates in %.1fs (%d findings)\n",
		stats.FilesScanned, stats.CratesScanned, stats.Duration.Seconds(), stats.Findings)
	if stats.FilesSkipped > 0 {
		fmt.Fprintf(os.Stderr, "  Skipped: %d files\n", stats.FilesSkipped)
	}
	if stats.CacheHits > 0 {
		fmt.Fprintf(os.Stderr, "  Cache hits: %d\n", stats.CacheHits)
	}
}
