package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and its compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery walks source trees for Rust files. Directories named in
// excludeDirs are pruned wherever they appear in a tree, which keeps
// cargo's examples and integration test layouts out of the scan. Ignore
// patterns are matched as slash-separated globs against the path relative
// to the walk root.
type FileDiscovery struct {
	excludeDirs    map[string]struct{}
	ignorePatterns []compiledPattern
}

// NewFileDiscovery compiles the ignore patterns and returns a discovery
// usable across any number of roots.
func NewFileDiscovery(excludeDirs, ignorePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		excludeDirs: make(map[string]struct{}, len(excludeDirs)),
	}
	for _, name := range excludeDirs {
		fd.excludeDirs[name] = struct{}{}
	}
	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("failed to compile ignore pattern %q: %w", pattern, err)
		}
		fd.ignorePatterns = append(fd.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}
	return fd, nil
}

// Collect returns the .rs files under root in walk order. Roots that do not
// exist and entries that cannot be read contribute no files rather than an
// error, so missing dependency trees degrade to an empty scan.
func (fd *FileDiscovery) Collect(root string) []string {
	var files []string
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if _, excluded := fd.excludeDirs[info.Name()]; excluded {
				return filepath.SkipDir
			}
			if relPath != "." && fd.shouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) != ".rs" {
			return nil
		}
		if fd.shouldIgnore(relPath) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files
}

// shouldIgnore checks a relative path against the ignore patterns. The path
// is also probed with a /** suffix so that a directory entry matches a
// pattern like "generated/**" and gets pruned as a whole.
func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	return fd.matchesAny(relPath) || fd.matchesAny(relPath+"/**")
}

func (fd *FileDiscovery) matchesAny(path string) bool {
	for _, cp := range fd.ignorePatterns {
		if cp.glob.Match(path) {
			return true
		}
	}
	return false
}
