package symbols

import "purets/internal/tsast"

// ScopeKind distinguishes the lexical scopes this analyzer tracks. block
// covers both bare blocks and the bodies of control-flow statements.
type ScopeKind uint8

const (
	ScopeFile ScopeKind = iota
	ScopeModule
	ScopeFunction
	ScopeBlock
)

// Scope is one lexical scope's bindings, chained to its lexical parent.
type Scope struct {
	Kind     ScopeKind
	Parent   *Scope
	Node     tsast.Node
	Bindings map[string]*Binding
}

func newScope(kind ScopeKind, node tsast.Node, parent *Scope) *Scope {
	return &Scope{Kind: kind, Node: node, Parent: parent, Bindings: make(map[string]*Binding)}
}

// lookup resolves name in this scope or any ancestor, innermost first.
func (s *Scope) lookup(name string) (*Binding, bool) {
	for scope := s; scope != nil; scope = scope.Parent {
		if b, ok := scope.Bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// declare records a new binding in this scope, overwriting a same-named
// binding already declared here (re-declaration; later JS/TS semantics are
// not modeled, the last declaration wins for lookup purposes).
func (s *Scope) declare(b *Binding) {
	s.Bindings[b.Name] = b
}
