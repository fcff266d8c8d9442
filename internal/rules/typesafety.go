package rules

import (
	"purets/internal/diag"
	"purets/internal/source"
	"purets/internal/tsast"
	"purets/internal/visitor"
)

var noAsCast = rule(diag.RuleNoAsCast,
	[]tsast.NodeKind{tsast.KindAsExpression},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		t := n.ChildByFieldName("type")
		if t.Valid() && t.Text() == "const" {
			return nil
		}
		return one(diag.NewError(diag.RuleNoAsCast, n.Span(), "'as T' assertions are forbidden (except as const)"))
	})

var noAsUpcast = rule(diag.RuleNoAsUpcast,
	[]tsast.NodeKind{tsast.KindAsExpression},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		inner := n.ChildByFieldName("expression")
		if inner.Kind() == tsast.KindAsExpression {
			t := n.ChildByFieldName("type")
			if t.Valid() && t.Text() == "unknown" {
				return one(diag.NewError(diag.RuleNoAsUpcast, n.Span(), "double 'as unknown as T' assertions are forbidden"))
			}
		}
		return nil
	})

var noTypeAssertion = rule(diag.RuleNoTypeAssertion,
	[]tsast.NodeKind{tsast.KindTypeAssertion},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		return one(diag.NewError(diag.RuleNoTypeAssertion, n.Span(), "angle-bracket type assertions are forbidden"))
	})

var letRequiresType = rule(diag.RuleLetRequiresType,
	[]tsast.NodeKind{tsast.KindLexicalDeclaration},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if n.ChildCount() == 0 || n.Child(0).Text() != "let" {
			return nil
		}
		var diags []diag.Diagnostic
		for i := 0; i < n.NamedChildCount(); i++ {
			d := n.NamedChild(i)
			if d.Kind() != tsast.KindVariableDeclarator {
				continue
			}
			if !d.ChildByFieldName("type").Valid() {
				diags = append(diags, diag.NewWarning(diag.RuleLetRequiresType, d.Span(), "let binding requires an explicit type annotation"))
			}
		}
		return diags
	})

var emptyArrayRequiresType = rule(diag.RuleEmptyArrayRequiresType,
	[]tsast.NodeKind{tsast.KindVariableDeclarator},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if n.ChildByFieldName("type").Valid() {
			return nil
		}
		value := n.ChildByFieldName("value")
		if value.Valid() && value.RawType() == "array" && value.NamedChildCount() == 0 {
			return one(diag.NewWarning(diag.RuleEmptyArrayRequiresType, n.Span(), "empty array literal requires an explicit type annotation"))
		}
		return nil
	})

var noMutableRecord = rule(diag.RuleNoMutableRecord,
	[]tsast.NodeKind{tsast.KindGenericType},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		name := n.ChildByFieldName("name")
		if !name.Valid() || name.Text() != "Record" {
			return nil
		}
		for _, a := range ancestors {
			if a.Kind() == tsast.KindGenericType {
				if n2 := a.ChildByFieldName("name"); n2.Valid() && n2.Text() == "Readonly" {
					return nil
				}
			}
		}
		if len(ancestors) > 0 {
			parent := ancestors[len(ancestors)-1]
			if parent.RawType() == "readonly_type" {
				return nil
			}
		}
		if hasReadonlyModifier(ancestors) {
			return nil
		}
		return one(diag.NewError(diag.RuleNoMutableRecord, n.Span(), "Record<K,V> must be wrapped in Readonly<...> or bound readonly"))
	})

// isArrayShape reports whether a type annotation node (the "type" field of
// a variable declarator or parameter) denotes an array: T[] or Array<T>.
func isArrayShape(t tsast.Node) bool {
	if !t.Valid() {
		return false
	}
	typeNode := t
	if t.NamedChildCount() > 0 {
		typeNode = t.NamedChild(0)
	}
	if typeNode.Kind() == tsast.KindArrayType {
		return true
	}
	if typeNode.Kind() == tsast.KindGenericType {
		if name := typeNode.ChildByFieldName("name"); name.Valid() && name.Text() == "Array" {
			return true
		}
	}
	return false
}

// hasReadonlyModifier reports whether the nearest enclosing property
// signature, parameter, or field declaration carries a readonly keyword,
// the other way (besides Readonly<...>) a Record<K,V> type is exempted.
func hasReadonlyModifier(ancestors []tsast.Node) bool {
	for i := len(ancestors) - 1; i >= 0; i-- {
		a := ancestors[i]
		switch a.RawType() {
		case "property_signature", "parameter", "public_field_definition":
			for j := 0; j < a.ChildCount(); j++ {
				if a.Child(j).Text() == "readonly" {
					return true
				}
			}
			return false
		}
	}
	return false
}

var preferReadonlyArray = rule(diag.RulePreferReadonlyArray,
	[]tsast.NodeKind{tsast.KindVariableDeclarator},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		t := n.ChildByFieldName("type")
		if !t.Valid() || !isArrayShape(t) {
			return nil
		}
		name := n.ChildByFieldName("name")
		if !name.Valid() || name.Kind() != tsast.KindIdentifier {
			return nil
		}
		b, ok := ctx.Symbols.Lookup(n, name.Text())
		if !ok || b.Mutated() {
			return nil
		}
		return one(diag.NewWarning(diag.RulePreferReadonlyArray, n.Span(), "array-typed binding is never mutated; prefer ReadonlyArray<T>"))
	})

var interfaceExtendsOnly = rule(diag.RuleInterfaceExtendsOnly,
	[]tsast.NodeKind{tsast.KindInterfaceDeclaration},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		for i := 0; i < n.ChildCount(); i++ {
			if n.Child(i).RawType() == "extends_type_clause" {
				return nil
			}
		}
		return one(diag.NewError(diag.RuleInterfaceExtendsOnly, n.Span(), "interface must extend another interface rather than stand alone"))
	})

// declaredTypeAnnotation returns the "type" field of the AST node that
// declared span (a variable declarator or parameter), if that node can be
// found by walking the file from its root. Binding carries only the span
// of its declaration, not the node itself, so resolving its type means
// walking the tree once to find the node at that span.
func declaredTypeAnnotation(root tsast.Node, span source.Span) (tsast.Node, bool) {
	var found tsast.Node
	tsast.Walk(root, func(node tsast.Node) bool {
		if found.Valid() {
			return false
		}
		if node.Span() == span {
			found = node
			return false
		}
		return true
	})
	if !found.Valid() {
		return tsast.Node{}, false
	}
	t := found.ChildByFieldName("type")
	return t, t.Valid()
}

var noDynamicAccess = rule(diag.RuleNoDynamicAccess,
	[]tsast.NodeKind{tsast.KindSubscriptExpression},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		index := n.ChildByFieldName("index")
		if !index.Valid() || isIntegerLiteralKey(index) {
			return nil
		}
		obj := n.ChildByFieldName("object")
		if obj.Valid() && obj.Kind() == tsast.KindIdentifier {
			if b, ok := ctx.Symbols.Lookup(obj, obj.Text()); ok {
				if t, ok := declaredTypeAnnotation(ctx.Tree.Root(), b.DeclSpan); ok && isArrayShape(t) {
					return nil
				}
			}
		}
		return one(diag.NewError(diag.RuleNoDynamicAccess, n.Span(), "bracket access requires a numeric or literal-integer key"))
	})
