package rules

import (
	"strconv"
	"strings"

	"purets/internal/tsast"
)

// exportedAncestor returns the export_statement wrapping n, if n is
// directly exported, and ok=true.
func exportedAncestor(ancestors []tsast.Node) (tsast.Node, bool) {
	if len(ancestors) == 0 {
		return tsast.Node{}, false
	}
	last := ancestors[len(ancestors)-1]
	if last.Kind() == tsast.KindExportStatement {
		return last, true
	}
	return tsast.Node{}, false
}

// isExported reports whether n is the direct declaration child of an
// export_statement.
func isExported(ancestors []tsast.Node) bool {
	_, ok := exportedAncestor(ancestors)
	return ok
}

// enclosingFunction returns the nearest function-like ancestor (function
// declaration/expression, method, arrow function), innermost first.
func enclosingFunction(ancestors []tsast.Node) (tsast.Node, bool) {
	for i := len(ancestors) - 1; i >= 0; i-- {
		switch ancestors[i].Kind() {
		case tsast.KindFunctionDeclaration, tsast.KindGeneratorFunctionDeclaration,
			tsast.KindMethodDefinition, tsast.KindArrowFunction, tsast.KindFunctionExpression:
			return ancestors[i], true
		}
	}
	return tsast.Node{}, false
}

// insideFunction reports whether the current node is nested in any
// function-like body, i.e. not at module top level.
func insideFunction(ancestors []tsast.Node) bool {
	_, ok := enclosingFunction(ancestors)
	return ok
}

// calleeName returns the flattened dotted name of a call's callee, e.g.
// "Object.assign" or "eval", or "" if the callee isn't a simple
// identifier/member chain.
func calleeName(call tsast.Node) string {
	fn := call.ChildByFieldName("function")
	return flattenMemberChain(fn)
}

func flattenMemberChain(n tsast.Node) string {
	switch n.Kind() {
	case tsast.KindIdentifier:
		return n.Text()
	case tsast.KindMemberExpression:
		obj := n.ChildByFieldName("object")
		prop := n.ChildByFieldName("property")
		objName := flattenMemberChain(obj)
		if objName == "" || !prop.Valid() {
			return ""
		}
		return objName + "." + prop.Text()
	default:
		return ""
	}
}

// parametersOf returns the formal parameter nodes of a function-like node,
// tolerating an unparenthesized single-identifier arrow parameter.
func parametersOf(fn tsast.Node) []tsast.Node {
	params := fn.ChildByFieldName("parameters")
	if !params.Valid() {
		return nil
	}
	if params.Kind() == tsast.KindIdentifier {
		return []tsast.Node{params}
	}
	return params.NamedChildren()
}

// paramTypeAnnotation returns the type_annotation child of a parameter
// node, if present.
func paramTypeAnnotation(p tsast.Node) (tsast.Node, bool) {
	t := p.ChildByFieldName("type")
	return t, t.Valid()
}

// paramIdentifierName mirrors symbols.paramName without importing that
// package (rules stays independent of the scope builder's internals).
func paramIdentifierName(p tsast.Node) string {
	pattern := p.ChildByFieldName("pattern")
	if pattern.Valid() && pattern.Kind() == tsast.KindIdentifier {
		return pattern.Text()
	}
	if p.Kind() == tsast.KindIdentifier {
		return p.Text()
	}
	var last string
	for i := 0; i < p.NamedChildCount(); i++ {
		c := p.NamedChild(i)
		if c.Kind() == tsast.KindIdentifier {
			last = c.Text()
		}
	}
	return last
}

// isIntegerLiteralKey reports whether a subscript index is a numeric
// literal or a string literal that parses cleanly as a non-negative
// integer ("0", "12"), the two shapes no-dynamic-access exempts.
func isIntegerLiteralKey(index tsast.Node) bool {
	if index.Kind() == tsast.KindNumber {
		return true
	}
	if index.Kind() == tsast.KindString {
		text := strings.Trim(index.Text(), `"'`)
		if _, err := strconv.ParseUint(text, 10, 64); err == nil {
			return true
		}
	}
	return false
}

// isLiteralConstant reports whether a condition expression is a literal
// that makes the branch trivially constant: true/false/number literals,
// and string literals. Enclosing parentheses (and the statement wrapper a
// for-loop condition carries) are looked through first.
func isLiteralConstant(n tsast.Node) bool {
	for (n.RawType() == "parenthesized_expression" || n.Kind() == tsast.KindExpressionStatement) && n.NamedChildCount() == 1 {
		n = n.NamedChild(0)
	}
	switch n.Kind() {
	case tsast.KindNumber, tsast.KindString:
		return true
	default:
		return n.RawType() == "true" || n.RawType() == "false"
	}
}

// lastStatement returns the last named statement inside a statement_block.
func lastStatement(block tsast.Node) (tsast.Node, bool) {
	n := block.NamedChildCount()
	if n == 0 {
		return tsast.Node{}, false
	}
	return block.NamedChild(n - 1), true
}

// returnCallName reports the callee name (e.g. "ok" or "err") when a
// return_statement's argument is a call, and false otherwise.
func returnCallName(ret tsast.Node) (string, bool) {
	if ret.NamedChildCount() == 0 {
		return "", false
	}
	arg := ret.NamedChild(0)
	if arg.Kind() != tsast.KindCallExpression {
		return "", false
	}
	return calleeName(arg), true
}
