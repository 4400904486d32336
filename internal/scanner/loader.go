package scanner

import (
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

// SourceFile is one parsed Rust source file. Close releases the tree-sitter
// tree once the file has been walked.
type SourceFile struct {
	Path   string
	Source []byte

	tree *sitter.Tree
}

// Root returns the source_file node at the top of the syntax tree.
func (f *SourceFile) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Close releases the parse tree. The SourceFile must not be used afterwards.
func (f *SourceFile) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// Loader reads and parses Rust sources. A Loader owns a single tree-sitter
// parser, so it is not safe for concurrent use.
type Loader struct {
	parser *sitter.Parser
}

// NewLoader creates a loader with the Rust grammar installed.
func NewLoader() *Loader {
	parser := sitter.NewParser()
	_ = parser.SetLanguage(sitter.NewLanguage(tree_sitter_rust.Language()))
	return &Loader{parser: parser}
}

// Close releases the underlying parser.
func (l *Loader) Close() {
	l.parser.Close()
}

// Load reads and parses one source file. Unreadable sources and sources the
// grammar cannot parse cleanly return an error; the scanner skips those
// files instead of aborting the run.
func (l *Loader) Load(path string) (*SourceFile, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return l.parse(path, source)
}

func (l *Loader) parse(path string, source []byte) (*SourceFile, error) {
	tree := l.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree for %s", path)
	}
	if tree.RootNode().HasError() {
		tree.Close()
		return nil, fmt.Errorf("syntax errors in %s", path)
	}
	return &SourceFile{Path: path, Source: source, tree: tree}, nil
}
