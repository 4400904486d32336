package scanner

// ProgressReporter provides callbacks for reporting scan progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnMetadataStart is called before the cargo metadata query runs.
	OnMetadataStart()

	// OnMetadataComplete is called once metadata is loaded. matched is the
	// number of dependency crates selected by the name prefix.
	OnMetadataComplete(packages, matched int)

	// OnDiscoveryStart is called when file discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(totalFiles int)

	// OnScanStart is called before files are parsed and walked.
	OnScanStart(totalFiles int)

	// OnFileScanned is called after each file has been handled.
	OnFileScanned(fileName string)

	// OnComplete is called when the scan finishes successfully.
	OnComplete(stats *ScanStats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnMetadataStart()                         {}
func (n *NoOpProgressReporter) OnMetadataComplete(packages, matched int) {}
func (n *NoOpProgressReporter) OnDiscoveryStart()                        {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(totalFiles int)       {}
func (n *NoOpProgressReporter) OnScanStart(totalFiles int)               {}
func (n *NoOpProgressReporter) OnFileScanned(fileName string)            {}
func (n *NoOpProgressReporter) OnComplete(stats *ScanStats)              {}
