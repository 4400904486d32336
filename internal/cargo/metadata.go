// Package cargo invokes `cargo metadata` and models the slice of its JSON
// output that the checker needs: the set of packages in the dependency graph
// and where each package's sources live on disk.
package cargo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Metadata is the decoded output of `cargo metadata --format-version 1`,
// reduced to the fields the checker consumes. It is fetched once per scan
// and never mutated afterwards.
type Metadata struct {
	Packages      []Package `json:"packages"`
	WorkspaceRoot string    `json:"workspace_root"`
}

// Package describes one crate in the resolved dependency graph.
type Package struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	ID           string `json:"id"`
	ManifestPath string `json:"manifest_path"`
}

// RootDir returns the directory containing the package's Cargo.toml, which
// is the root of its source tree.
func (p Package) RootDir() string {
	return filepath.Dir(p.ManifestPath)
}

// PackagesWithPrefix returns the packages whose name starts with prefix, in
// metadata order. An empty prefix matches every package.
func (m *Metadata) PackagesWithPrefix(prefix string) []Package {
	var matched []Package
	for _, pkg := range m.Packages {
		if strings.HasPrefix(pkg.Name, prefix) {
			matched = append(matched, pkg)
		}
	}
	return matched
}

// MetadataCommand runs the cargo binary to obtain project metadata, the same
// way cargo's own tooling does. The zero value runs in the current directory.
type MetadataCommand struct {
	// Dir is the directory to run cargo in. Empty means the process's
	// working directory.
	Dir string
}

// Exec runs `cargo metadata --format-version 1` and decodes its output.
// Failure here is fatal for a scan: without metadata there is no crate
// graph to resolve module paths against.
func (c *MetadataCommand) Exec(ctx context.Context) (*Metadata, error) {
	cmd := exec.CommandContext(ctx, "cargo", "metadata", "--format-version", "1")
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("cargo metadata: %w: %s", err, firstLine(msg))
		}
		return nil, fmt.Errorf("cargo metadata: %w", err)
	}

	return parseMetadata(stdout.Bytes())
}

// parseMetadata decodes raw `cargo metadata` JSON. Split out from Exec so the
// decoding can be exercised without a cargo binary on PATH.
func parseMetadata(data []byte) (*Metadata, error) {
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode cargo metadata: %w", err)
	}
	return &meta, nil
}

// firstLine trims a multi-line cargo error down to its leading line, which
// carries the actual diagnostic.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
