package rules

import (
	"purets/internal/allow"
	"purets/internal/diag"
	"purets/internal/symbols"
	"purets/internal/tsast"
	"purets/internal/visitor"
)

var noUnusedVariables = rule(diag.RuleNoUnusedVariables,
	[]tsast.NodeKind{tsast.KindProgram},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		var diags []diag.Diagnostic
		for _, b := range ctx.Symbols.AllBindings() {
			if b.Kind == symbols.DeclImport {
				continue
			}
			if b.Exempt() || b.Used() {
				continue
			}
			diags = append(diags, diag.NewError(diag.RuleNoUnusedVariables, b.DeclSpan, "'"+b.Name+"' is never used"))
		}
		return diags
	})

var noUnusedImports = rule(diag.RuleNoUnusedImports,
	[]tsast.NodeKind{tsast.KindProgram},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		var diags []diag.Diagnostic
		for _, b := range ctx.Symbols.AllBindings() {
			if b.Kind != symbols.DeclImport {
				continue
			}
			if b.Exempt() || b.Used() {
				continue
			}
			diags = append(diags, diag.NewError(diag.RuleNoUnusedImports, b.DeclSpan, "imported name '"+b.Name+"' is never referenced"))
		}
		return diags
	})

var tryMustReturnOk = rule(diag.RuleTryMustReturnOk,
	[]tsast.NodeKind{tsast.KindTryStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if !ctx.Allow.Granted(n, allow.CapThrows) {
			return nil
		}
		body := n.ChildByFieldName("body")
		if !body.Valid() {
			return nil
		}
		last, ok := lastStatement(body)
		if !ok {
			return one(diag.NewError(diag.RuleTryMustReturnOk, n.Span(), "try branch must end in return ok(...)"))
		}
		if name, ok := returnCallName(last); !ok || name != "ok" {
			return one(diag.NewError(diag.RuleTryMustReturnOk, last.Span(), "try branch must end in return ok(...)"))
		}
		return nil
	})

var catchMustReturnErr = rule(diag.RuleCatchMustReturnErr,
	[]tsast.NodeKind{tsast.KindTryStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if !ctx.Allow.Granted(n, allow.CapThrows) {
			return nil
		}
		catch := findCatchClause(n)
		if !catch.Valid() {
			return nil
		}
		body := catch.ChildByFieldName("body")
		if !body.Valid() {
			return nil
		}
		last, ok := lastStatement(body)
		if !ok {
			return one(diag.NewError(diag.RuleCatchMustReturnErr, catch.Span(), "catch branch must end in return err(...)"))
		}
		if name, ok := returnCallName(last); !ok || name != "err" {
			return one(diag.NewError(diag.RuleCatchMustReturnErr, last.Span(), "catch branch must end in return err(...)"))
		}
		return nil
	})

func findCatchClause(tryStmt tsast.Node) tsast.Node {
	for i := 0; i < tryStmt.ChildCount(); i++ {
		if c := tryStmt.Child(i); c.Kind() == tsast.KindCatchClause {
			return c
		}
	}
	return tsast.Node{}
}

// assignmentObjectRoot walks down a chain of member/subscript expressions
// to the leftmost identifier an assignment target is rooted on.
func assignmentObjectRoot(n tsast.Node) tsast.Node {
	for {
		switch n.Kind() {
		case tsast.KindMemberExpression, tsast.KindSubscriptExpression:
			n = n.ChildByFieldName("object")
		default:
			return n
		}
	}
}

var noMemberAssignments = rule(diag.RuleNoMemberAssignments,
	[]tsast.NodeKind{tsast.KindAssignmentExpression},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		left := n.ChildByFieldName("left")
		if left.Kind() != tsast.KindMemberExpression && left.Kind() != tsast.KindSubscriptExpression {
			return nil
		}
		root := assignmentObjectRoot(left)
		if root.Kind() != tsast.KindIdentifier {
			return nil
		}
		b, ok := ctx.Symbols.Lookup(n, root.Text())
		if !ok || b.Kind != symbols.DeclConst {
			return nil
		}
		return one(diag.NewError(diag.RuleNoMemberAssignments, n.Span(), "assignment into const-bound '"+root.Text()+"' is forbidden"))
	})
