// Package tsast wraps the third-party tree-sitter TypeScript grammar behind
// a span-bearing Node view and a tagged NodeKind enum, per the sum-types-
// over-inheritance design used throughout this analyzer: callers dispatch
// on NodeKind rather than on concrete parser types.
package tsast

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"purets/internal/source"
)

// Tree owns a parsed tree-sitter AST and the source bytes it was parsed
// from. Close must be called once the tree is no longer needed to release
// the underlying C parser state.
type Tree struct {
	raw     *sitter.Tree
	content []byte
	file    source.FileID
}

// Root returns the file-level program node.
func (t *Tree) Root() Node {
	if t == nil || t.raw == nil {
		return Node{}
	}
	return newNode(t.raw.RootNode(), t.content, t.file)
}

// HasError reports whether the parser had to recover from a syntax error
// anywhere in the file.
func (t *Tree) HasError() bool {
	return t.Root().HasError()
}

// Close releases the tree-sitter tree. Safe to call on a nil Tree.
func (t *Tree) Close() {
	if t == nil || t.raw == nil {
		return
	}
	t.raw.Close()
}

// Parse parses TypeScript (or TSX, selected by the .tsx extension) source
// into a Tree. The caller owns the returned Tree and must Close it.
func Parse(ctx context.Context, path string, content []byte, file source.FileID) (*Tree, error) {
	parser := sitter.NewParser()
	if isTSX(path) {
		parser.SetLanguage(tsx.GetLanguage())
	} else {
		parser.SetLanguage(typescript.GetLanguage())
	}

	raw, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tsast: parse %s: %w", path, err)
	}
	return &Tree{raw: raw, content: content, file: file}, nil
}

func isTSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tsx")
}
