package visitor

import (
	"context"
	"testing"

	"purets/internal/allow"
	"purets/internal/diag"
	"purets/internal/jsdoc"
	"purets/internal/source"
	"purets/internal/symbols"
	"purets/internal/tsast"
)

const testRuleID diag.RuleID = "test-no-classes"

type fakeRule struct {
	id    diag.RuleID
	kinds []tsast.NodeKind
	check func(n tsast.Node, ancestors []tsast.Node, ctx *Context) []diag.Diagnostic
}

func (r fakeRule) ID() diag.RuleID       { return r.id }
func (r fakeRule) Kinds() []tsast.NodeKind { return r.kinds }
func (r fakeRule) Check(n tsast.Node, ancestors []tsast.Node, ctx *Context) []diag.Diagnostic {
	return r.check(n, ancestors, ctx)
}

func buildContext(t *testing.T, src string) *Context {
	t.Helper()
	content := []byte(src)
	tree, err := tsast.Parse(context.Background(), "test.ts", content, source.FileID(0))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(tree.Close)
	docs := jsdoc.Build(tree, content)
	return &Context{
		Path:    "test.ts",
		Role:    source.RolePure,
		Content: content,
		Tree:    tree,
		Docs:    docs,
		Allow:   allow.NewIndex(docs),
		Symbols: symbols.Build(tree, source.FileID(0)),
	}
}

func TestDispatchesOnlyToSubscribedKind(t *testing.T) {
	ctx := buildContext(t, "class User {}\n")

	var hits int
	rule := fakeRule{
		id:    testRuleID,
		kinds: []tsast.NodeKind{tsast.KindClassDeclaration},
		check: func(n tsast.Node, ancestors []tsast.Node, ctx *Context) []diag.Diagnostic {
			hits++
			d := diag.NewError(testRuleID, n.Span(), "no classes")
			return []diag.Diagnostic{d}
		},
	}

	bag := New([]Rule{rule}).Run(ctx)
	if hits != 1 {
		t.Fatalf("expected exactly 1 dispatch, got %d", hits)
	}
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
}

func TestDuplicateSpanDegradesToInternalError(t *testing.T) {
	ctx := buildContext(t, "class User {}\n")

	rule := fakeRule{
		id:    testRuleID,
		kinds: []tsast.NodeKind{tsast.KindClassDeclaration},
		check: func(n tsast.Node, ancestors []tsast.Node, ctx *Context) []diag.Diagnostic {
			d := diag.NewError(testRuleID, n.Span(), "no classes")
			return []diag.Diagnostic{d, d}
		},
	}

	bag := New([]Rule{rule}).Run(ctx)
	if bag.Len() != 2 {
		t.Fatalf("expected original plus one degraded diagnostic, got %d", bag.Len())
	}

	var sawInternal bool
	for _, d := range bag.Items() {
		if d.RuleID == diag.RuleInternalError {
			sawInternal = true
		}
	}
	if !sawInternal {
		t.Fatalf("expected an internal-error diagnostic for the duplicate span")
	}
}

func TestPanicRecoveredAsInternalError(t *testing.T) {
	ctx := buildContext(t, "class User {}\n")

	rule := fakeRule{
		id:    testRuleID,
		kinds: []tsast.NodeKind{tsast.KindClassDeclaration},
		check: func(n tsast.Node, ancestors []tsast.Node, ctx *Context) []diag.Diagnostic {
			panic("boom")
		},
	}

	bag := New([]Rule{rule}).Run(ctx)
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	if bag.Items()[0].RuleID != diag.RuleInternalError {
		t.Fatalf("expected internal-error, got %s", bag.Items()[0].RuleID)
	}
}

func TestAncestorChainIncludesParents(t *testing.T) {
	ctx := buildContext(t, "export function f() { return 1; }\n")

	var gotAncestors []tsast.NodeKind
	rule := fakeRule{
		id:    testRuleID,
		kinds: []tsast.NodeKind{tsast.KindReturnStatement},
		check: func(n tsast.Node, ancestors []tsast.Node, ctx *Context) []diag.Diagnostic {
			for _, a := range ancestors {
				gotAncestors = append(gotAncestors, a.Kind())
			}
			return nil
		},
	}

	New([]Rule{rule}).Run(ctx)
	if len(gotAncestors) == 0 {
		t.Fatalf("expected a non-empty ancestor chain for a nested return statement")
	}
	if gotAncestors[0] != tsast.KindProgram {
		t.Fatalf("expected program as the outermost ancestor, got %v", gotAncestors[0])
	}
}
