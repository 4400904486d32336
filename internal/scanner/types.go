package scanner

import "time"

// Finding is one type definition that derives Reflect and Component but is
// missing the #[reflect(Component)] registration. Findings accumulate in
// walk order and are never de-duplicated: discovering the same logical file
// through two scan roots legitimately yields the entry twice.
type Finding struct {
	Module string `json:"module"` // fully qualified module path, e.g. "bevy_ecs::src::entity"
	Name   string `json:"name"`   // type name, e.g. "HealthBar"
	Kind   string `json:"kind"`   // "struct" or "enum"
	File   string `json:"file"`   // source file the definition lives in
	Line   int    `json:"line"`   // 1-based line of the definition
}

// Path returns the canonical form reported to the user: the module path and
// type name joined by the Rust path separator.
func (f Finding) Path() string {
	return f.Module + "::" + f.Name
}

// Result is the outcome of one scan run.
type Result struct {
	Findings []Finding
	Stats    ScanStats
}

// Paths returns the canonical finding strings in result order.
func (r *Result) Paths() []string {
	paths := make([]string, len(r.Findings))
	for i, f := range r.Findings {
		paths[i] = f.Path()
	}
	return paths
}

// ScanStats describes what one scan run did.
type ScanStats struct {
	FilesDiscovered int           // candidate .rs files found by discovery
	FilesScanned    int           // files parsed and walked (or served from cache)
	FilesSkipped    int           // unreadable, unparseable or unresolvable files
	CratesScanned   int           // dependency crates matching the name prefix
	CacheHits       int           // files served from the parse cache
	Findings        int           // total findings emitted
	Duration        time.Duration // wall-clock time for the whole run
}
