package allow

import (
	"context"
	"testing"

	"purets/internal/jsdoc"
	"purets/internal/source"
	"purets/internal/tsast"
)

func build(t *testing.T, src string) (*tsast.Tree, *Index) {
	t.Helper()
	content := []byte(src)
	tree, err := tsast.Parse(context.Background(), "test.ts", content, source.FileID(0))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(tree.Close)
	docs := jsdoc.Build(tree, content)
	return tree, NewIndex(docs)
}

func TestGrantedOnDirectDeclaration(t *testing.T) {
	src := "/**\n * @allow timers\n */\nexport function f() { setTimeout(() => {}, 10); }\n"
	tree, idx := build(t, src)

	root := tree.Root()
	exportStmt := root.NamedChild(root.NamedChildCount() - 1)
	if !idx.Granted(exportStmt, CapTimers) {
		t.Fatalf("expected timers to be granted at the annotated declaration")
	}
	if idx.Granted(exportStmt, CapNet) {
		t.Fatalf("net must not be granted")
	}
}

func TestGrantedMonotonicOutward(t *testing.T) {
	src := "/**\n * @allow console\n */\nexport function f() {\n  if (true) {\n    console.log('x');\n  }\n}\n"
	tree, idx := build(t, src)

	var deepest tsast.Node
	var find func(n tsast.Node)
	find = func(n tsast.Node) {
		if n.RawType() == "if_statement" {
			deepest = n
		}
		for i := 0; i < n.NamedChildCount(); i++ {
			find(n.NamedChild(i))
		}
	}
	find(tree.Root())

	if !deepest.Valid() {
		t.Fatalf("expected to find an if_statement")
	}
	if !idx.Granted(deepest, CapConsole) {
		t.Fatalf("expected console grant to be visible to a nested scope")
	}
}

func TestUnknownCapabilityNeverGranted(t *testing.T) {
	src := "/**\n * @allow bogus\n */\nexport function f() {}\n"
	tree, idx := build(t, src)
	root := tree.Root()
	decl := root.NamedChild(root.NamedChildCount() - 1)

	if idx.Granted(decl, CapDOM) {
		t.Fatalf("unrelated capability should not be granted")
	}
}

func TestWithProjectGrantsOverridesJSDoc(t *testing.T) {
	src := "export function f() { fetch('/x'); }\n"
	tree, idx := build(t, src)
	root := tree.Root()
	decl := root.NamedChild(root.NamedChildCount() - 1)

	if idx.Granted(decl, CapNet) {
		t.Fatalf("net must not be granted without a directive or project grant")
	}

	granted := idx.WithProjectGrants([]Capability{CapNet})
	if !granted.Granted(decl, CapNet) {
		t.Fatalf("expected net to be granted project-wide")
	}
	if granted.Granted(decl, CapDOM) {
		t.Fatalf("project grant must not leak to unrelated capabilities")
	}
}

func TestIsKnown(t *testing.T) {
	if !IsKnown(CapThrows) {
		t.Fatalf("throws should be a known capability")
	}
	if IsKnown(Capability("made-up")) {
		t.Fatalf("unknown capability must not be reported known")
	}
}
