package scanner

import (
	"path/filepath"
	"strings"
)

// crateRoot pairs a compilation unit's root directory with the crate name
// that prefixes module paths resolved under it.
type crateRoot struct {
	dir  string
	name string
}

// resolveModulePath maps a source file path to the fully qualified module
// path reported for its items.
//
// The file is matched against the crate roots in order and the first root
// that is an ancestor wins, contributing its crate name as the leading
// segment. Files under none of the roots fall back to the local source
// root and carry no crate prefix; discovery hands the local tree over as
// relative paths, so local files can never collide with the absolute crate
// roots. Files outside every root resolve to nothing and are skipped by
// the caller.
func resolveModulePath(file string, roots []crateRoot, localRoot string) (string, bool) {
	for _, root := range roots {
		if rel, ok := relChild(root.dir, file); ok {
			return root.name + "::" + segmentsToModulePath(rel), true
		}
	}
	if rel, ok := relChild(localRoot, file); ok {
		return segmentsToModulePath(rel), true
	}
	return "", false
}

// relChild returns child relative to parent when parent is a strict
// ancestor.
func relChild(parent, child string) (string, bool) {
	rel, err := filepath.Rel(parent, child)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// segmentsToModulePath converts a path relative to a unit root into module
// path segments: the extension comes off the final segment and mod file
// markers vanish, so foo/bar.rs becomes foo::bar and foo/mod.rs collapses
// to foo.
func segmentsToModulePath(rel string) string {
	segments := strings.Split(filepath.ToSlash(rel), "/")
	last := len(segments) - 1
	segments[last] = strings.TrimSuffix(segments[last], ".rs")

	kept := segments[:0]
	for _, seg := range segments {
		if seg != "mod" {
			kept = append(kept, seg)
		}
	}
	return strings.Join(kept, "::")
}
