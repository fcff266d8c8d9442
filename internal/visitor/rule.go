package visitor

import (
	"purets/internal/diag"
	"purets/internal/tsast"
)

// Rule is a pure function of (node, ancestor chain, context) to zero or
// more diagnostics. Rules never mutate the AST, the context, or each
// other's state; ordering between rules never affects the result.
type Rule interface {
	ID() diag.RuleID
	// Kinds lists every NodeKind this rule wants dispatched to it. The
	// combined visitor reads this once to build its dispatch table.
	Kinds() []tsast.NodeKind
	Check(node tsast.Node, ancestors []tsast.Node, ctx *Context) []diag.Diagnostic
}
