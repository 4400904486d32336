package scanner

import (
	"fmt"
	"os"

	"github.com/maypok86/otter"
)

// ParseCache memoizes per-file findings across scans, which keeps watch-mode
// rescans cheap when only a handful of files changed. The key captures the
// file identity and everything that influences its findings: the resolved
// module path, the visibility filter, and the file's size and modification
// time. Edits and dependency layout changes therefore invalidate entries
// without any explicit eviction.
type ParseCache struct {
	cache otter.Cache[string, []Finding]
}

// NewParseCache builds a cache bounded to capacity entries. Capacity must be
// positive.
func NewParseCache(capacity int) (*ParseCache, error) {
	cache, err := otter.MustBuilder[string, []Finding](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build parse cache: %w", err)
	}
	return &ParseCache{cache: cache}, nil
}

// Get returns the cached findings for a file, if the file still matches the
// stat fingerprint recorded when the entry was stored.
func (c *ParseCache) Get(path, modPath string, publicOnly bool) ([]Finding, bool) {
	key := c.key(path, modPath, publicOnly)
	if key == "" {
		return nil, false
	}
	return c.cache.Get(key)
}

// Put stores the findings for a file under its current stat fingerprint.
func (c *ParseCache) Put(path, modPath string, publicOnly bool, findings []Finding) {
	key := c.key(path, modPath, publicOnly)
	if key == "" {
		return
	}
	c.cache.Set(key, findings)
}

// Close releases the cache's internal goroutines.
func (c *ParseCache) Close() {
	c.cache.Close()
}

// key derives the cache key for one file, or "" when the file cannot be
// stat'ed.
func (c *ParseCache) key(path, modPath string, publicOnly bool) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s|%s|%t|%d|%d", path, modPath, publicOnly, info.ModTime().UnixNano(), info.Size())
}
