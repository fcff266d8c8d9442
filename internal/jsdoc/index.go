package jsdoc

import (
	"strings"

	"purets/internal/source"
	"purets/internal/tsast"
)

// bindableKinds lists the node kinds a JSDoc block can bind to. export_statement
// is included so a block preceding "export function f() {}" binds to the
// export wrapper, not the inner declaration it wraps.
var bindableKinds = map[tsast.NodeKind]bool{
	tsast.KindFunctionDeclaration:           true,
	tsast.KindGeneratorFunctionDeclaration:  true,
	tsast.KindClassDeclaration:              true,
	tsast.KindAbstractClassDeclaration:      true,
	tsast.KindInterfaceDeclaration:          true,
	tsast.KindEnumDeclaration:               true,
	tsast.KindTypeAliasDeclaration:          true,
	tsast.KindLexicalDeclaration:            true,
	tsast.KindVariableDeclaration:           true,
	tsast.KindExportStatement:               true,
	tsast.KindMethodDefinition:              true,
}

// Index maps declaration spans to the JSDoc block that immediately
// precedes them, built once per file and frozen.
type Index struct {
	byDecl    map[spanKey]*Block
	fileAllow []string
	file      source.FileID
}

type spanKey struct {
	start uint32
	end   uint32
}

func keyOf(s source.Span) spanKey {
	return spanKey{start: s.Start, end: s.End}
}

// Build walks the whole tree once and associates every eligible JSDoc
// comment with its following declaration.
func Build(tree *tsast.Tree, content []byte) *Index {
	root := tree.Root()
	idx := &Index{byDecl: make(map[spanKey]*Block), file: root.Span().File}
	bindSiblings(root, content, idx)

	var walk func(n tsast.Node)
	walk = func(n tsast.Node) {
		bindSiblings(n, content, idx)
		for i := 0; i < n.NamedChildCount(); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)

	idx.fileAllow = fileTopAllow(root, content)
	return idx
}

// bindSiblings scans n's direct named children for comment/declaration
// adjacency and records any matches into idx.
func bindSiblings(n tsast.Node, content []byte, idx *Index) {
	count := n.NamedChildCount()
	for i := 1; i < count; i++ {
		child := n.NamedChild(i)
		if !bindableKinds[child.Kind()] {
			continue
		}
		prev := n.NamedChild(i - 1)
		if prev.Kind() != tsast.KindComment || !isJSDocComment(prev.Text()) {
			continue
		}
		if !onlyWhitespaceBetween(content, prev.Span().End, child.Span().Start) {
			continue
		}
		block := parseComment(prev.Text(), prev.Span())
		block.Span = child.Span()
		idx.byDecl[keyOf(child.Span())] = block
	}
}

// fileTopAllow returns the @allow tags of a leading file-scoped comment: a
// JSDoc block that is the first named child of the program and is
// separated from the next statement by more than a single blank line is
// still file-scoped per spec -- this analyzer treats any JSDoc block that
// is program's first child as file-scoped, regardless of what follows it.
func fileTopAllow(root tsast.Node, content []byte) []string {
	if root.NamedChildCount() == 0 {
		return nil
	}
	first := root.NamedChild(0)
	if first.Kind() != tsast.KindComment || !isJSDocComment(first.Text()) {
		return nil
	}
	block := parseComment(first.Text(), first.Span())
	return block.Allow
}

func isJSDocComment(text string) bool {
	return strings.HasPrefix(text, "/**")
}

func onlyWhitespaceBetween(content []byte, start, end uint32) bool {
	if start > end || int(end) > len(content) {
		return false
	}
	gap := content[start:end]
	return len(strings.TrimSpace(string(gap))) == 0
}

// Lookup returns the JSDoc block bound to the declaration at span, if any.
func (idx *Index) Lookup(span source.Span) (*Block, bool) {
	b, ok := idx.byDecl[keyOf(span)]
	return b, ok
}

// FileAllow returns the capabilities granted by a leading file-top JSDoc
// block, applying everywhere in the file.
func (idx *Index) FileAllow() []string {
	return idx.fileAllow
}

// All returns every bound block, for diagnostics that need to scan the
// whole file's documentation (export-requires-jsdoc, jsdoc-param-*).
func (idx *Index) All() map[source.Span]*Block {
	out := make(map[source.Span]*Block, len(idx.byDecl))
	for k, v := range idx.byDecl {
		out[source.Span{File: idx.file, Start: k.start, End: k.end}] = v
	}
	return out
}
