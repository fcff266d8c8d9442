package jsdoc

import (
	"context"
	"testing"

	"purets/internal/source"
	"purets/internal/tsast"
)

func parse(t *testing.T, src string) (*tsast.Tree, []byte) {
	t.Helper()
	content := []byte(src)
	tree, err := tsast.Parse(context.Background(), "test.ts", content, source.FileID(0))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(tree.Close)
	return tree, content
}

func TestBindsPrecedingBlockToExport(t *testing.T) {
	src := "/**\n * adds two numbers\n * @param {number} a first\n * @param {number} b second\n * @returns the sum\n */\nexport function add(a: number, b: number) { return a + b; }\n"
	tree, content := parse(t, src)
	idx := Build(tree, content)

	root := tree.Root()
	decl := root.NamedChild(root.NamedChildCount() - 1)
	if decl.Kind() != tsast.KindExportStatement {
		t.Fatalf("expected export_statement, got %s", decl.RawType())
	}

	block, ok := idx.Lookup(decl.Span())
	if !ok {
		t.Fatalf("expected a bound JSDoc block")
	}
	if !block.HasReturns {
		t.Fatalf("expected @returns detected")
	}
	if len(block.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(block.Params))
	}
	if block.Params[0].Name != "a" || block.Params[0].Type != "number" {
		t.Fatalf("unexpected first param: %+v", block.Params[0])
	}
}

func TestBlankLineKeepsAssociation(t *testing.T) {
	src := "/** doc */\n\nexport function f() {}\n"
	tree, content := parse(t, src)
	idx := Build(tree, content)

	root := tree.Root()
	decl := root.NamedChild(root.NamedChildCount() - 1)
	_, ok := idx.Lookup(decl.Span())
	if !ok {
		t.Fatalf("blank-line-only gap should still count as whitespace")
	}
}

func TestFileTopAllow(t *testing.T) {
	src := "/**\n * @allow console\n * @allow net\n */\nexport function f() {}\n"
	tree, content := parse(t, src)
	idx := Build(tree, content)

	allow := idx.FileAllow()
	if len(allow) != 2 || allow[0] != "console" || allow[1] != "net" {
		t.Fatalf("unexpected file-scoped allow tags: %v", allow)
	}
}

func TestNonJSDocCommentIgnored(t *testing.T) {
	src := "// not jsdoc\nexport function f() {}\n"
	tree, content := parse(t, src)
	idx := Build(tree, content)

	root := tree.Root()
	decl := root.NamedChild(root.NamedChildCount() - 1)
	if _, ok := idx.Lookup(decl.Span()); ok {
		t.Fatalf("line comment must not bind as JSDoc")
	}
}
