package symbols

import (
	"purets/internal/source"
	"purets/internal/tsast"
)

type spanKey struct{ start, end uint32 }

func keyOf(s source.Span) spanKey { return spanKey{s.Start, s.End} }

// Tracker is the frozen, read-only result of the two-pass scope builder:
// every binding's declaration, use-sites, and mutation-sites for one file.
type Tracker struct {
	file      source.FileID
	fileScope *Scope
	nodeScope map[spanKey]*Scope
}

// Build runs the declare pass followed by the use-site pass over tree and
// returns the frozen tracker. Neither pass mutates the AST.
func Build(tree *tsast.Tree, file source.FileID) *Tracker {
	root := tree.Root()
	fileScope := newScope(ScopeFile, root, nil)
	t := &Tracker{file: file, fileScope: fileScope, nodeScope: map[spanKey]*Scope{keyOf(root.Span()): fileScope}}

	t.declare(root, fileScope)
	t.resolveUses(root, fileScope)
	return t
}

// ScopeFor returns the scope a query node's identifiers resolve through,
// walking up to the nearest enclosing scope boundary.
func (t *Tracker) ScopeFor(n tsast.Node) *Scope {
	for cur := n; cur.Valid(); cur = cur.Parent() {
		if s, ok := t.nodeScope[keyOf(cur.Span())]; ok {
			return s
		}
	}
	return t.fileScope
}

// Lookup resolves name starting from the scope enclosing n.
func (t *Tracker) Lookup(n tsast.Node, name string) (*Binding, bool) {
	return t.ScopeFor(n).lookup(name)
}

// FileScope returns the file-level (outermost) scope.
func (t *Tracker) FileScope() *Scope {
	return t.fileScope
}

// AllBindings returns every binding declared anywhere in the file, for
// rules that need a flat sweep (no-unused-variables, no-unused-imports).
func (t *Tracker) AllBindings() []*Binding {
	var out []*Binding
	var walk func(s *Scope)
	walk = func(s *Scope) {
		for _, b := range s.Bindings {
			out = append(out, b)
		}
	}
	var visit func(s *Scope)
	seen := make(map[*Scope]bool)
	visit = func(s *Scope) {
		if seen[s] {
			return
		}
		seen[s] = true
		walk(s)
	}
	for _, s := range t.nodeScope {
		visit(s)
	}
	return out
}
