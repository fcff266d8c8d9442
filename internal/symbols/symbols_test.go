package symbols

import (
	"context"
	"testing"

	"purets/internal/source"
	"purets/internal/tsast"
)

func buildTracker(t *testing.T, src string) *Tracker {
	t.Helper()
	content := []byte(src)
	tree, err := tsast.Parse(context.Background(), "test.ts", content, source.FileID(0))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(tree.Close)
	return Build(tree, source.FileID(0))
}

func TestUnusedConstHasNoUses(t *testing.T) {
	tr := buildTracker(t, "const a = 1;\nconst b = a + 1;\n")

	a, ok := tr.FileScope().lookup("a")
	if !ok {
		t.Fatalf("expected binding a")
	}
	if !a.Used() {
		t.Fatalf("expected a to be used by b's initializer")
	}

	b, ok := tr.FileScope().lookup("b")
	if !ok {
		t.Fatalf("expected binding b")
	}
	if b.Used() {
		t.Fatalf("b is never referenced, so it should show no use-sites")
	}
}

func TestImportLocalNameTracked(t *testing.T) {
	tr := buildTracker(t, "import { foo } from './utils.ts';\nexport function test() { return foo(); }\n")

	foo, ok := tr.FileScope().lookup("foo")
	if !ok {
		t.Fatalf("expected import binding foo")
	}
	if foo.Kind != DeclImport {
		t.Fatalf("expected DeclImport, got %v", foo.Kind)
	}
	if !foo.Used() {
		t.Fatalf("expected foo to be used inside test()")
	}
}

func TestArrayPushIsMutation(t *testing.T) {
	tr := buildTracker(t, "const a: number[] = [1, 2];\na.push(3);\n")

	a, ok := tr.FileScope().lookup("a")
	if !ok {
		t.Fatalf("expected binding a")
	}
	if !a.Mutated() {
		t.Fatalf("expected push() to register a mutation")
	}
}

func TestNoMutationWithoutCall(t *testing.T) {
	tr := buildTracker(t, "const a: number[] = [1, 2];\nconst b = a.map(x => x * 2);\nexport default b;\n")

	a, ok := tr.FileScope().lookup("a")
	if !ok {
		t.Fatalf("expected binding a")
	}
	if a.Mutated() {
		t.Fatalf("map() must not register as a mutation")
	}
}

func TestMemberAssignmentIsMutation(t *testing.T) {
	tr := buildTracker(t, "const obj = { x: 1 };\nobj.x = 2;\n")

	obj, ok := tr.FileScope().lookup("obj")
	if !ok {
		t.Fatalf("expected binding obj")
	}
	if !obj.Mutated() {
		t.Fatalf("expected obj.x = 2 to register a mutation")
	}
}

func TestNestedFunctionScope(t *testing.T) {
	tr := buildTracker(t, "export function outer() {\n  const inner = 1;\n  return inner;\n}\n")

	if _, ok := tr.FileScope().lookup("inner"); ok {
		t.Fatalf("inner should not be visible from the file scope")
	}
}

func TestUnderscorePrefixIsExempt(t *testing.T) {
	tr := buildTracker(t, "const _unused = 1;\n")
	b, ok := tr.FileScope().lookup("_unused")
	if !ok {
		t.Fatalf("expected binding _unused")
	}
	if !b.Exempt() {
		t.Fatalf("expected _unused to be exempt from unused checks")
	}
}
