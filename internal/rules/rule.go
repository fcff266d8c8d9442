// Package rules implements the 54-entry catalog: independent, pure
// functions of (node, ancestors, context) -> diagnostics. Every rule is
// grounded on the node kinds it subscribes to; the combined visitor in
// internal/visitor owns traversal order and dispatch.
package rules

import (
	"purets/internal/diag"
	"purets/internal/tsast"
	"purets/internal/visitor"
)

type checkFunc func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic

// funcRule adapts a plain function to visitor.Rule so each catalog entry
// below can be a short literal rather than its own named type.
type funcRule struct {
	id    diag.RuleID
	kinds []tsast.NodeKind
	fn    checkFunc
}

func (r funcRule) ID() diag.RuleID         { return r.id }
func (r funcRule) Kinds() []tsast.NodeKind { return r.kinds }
func (r funcRule) Check(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
	return r.fn(n, ancestors, ctx)
}

func rule(id diag.RuleID, kinds []tsast.NodeKind, fn checkFunc) visitor.Rule {
	return funcRule{id: id, kinds: kinds, fn: fn}
}

func one(d diag.Diagnostic) []diag.Diagnostic {
	return []diag.Diagnostic{d}
}
