package symbols

import "purets/internal/tsast"

// resolveUses is the tracker's second pass: it walks node's named children
// in source order against the scope tree built by declare, recording every
// identifier reference as a use-site and every recognized mutation shape
// (member/subscript assignment, mutating array-method call) as a
// mutation-site on the binding it resolves to.
func (t *Tracker) resolveUses(node tsast.Node, scope *Scope) {
	for i := 0; i < node.NamedChildCount(); i++ {
		c := node.NamedChild(i)
		switch {
		case c.Kind() == tsast.KindFunctionDeclaration || c.Kind() == tsast.KindGeneratorFunctionDeclaration ||
			c.Kind() == tsast.KindMethodDefinition || c.Kind() == tsast.KindArrowFunction || c.Kind() == tsast.KindFunctionExpression:
			fnScope, ok := t.nodeScope[keyOf(c.Span())]
			if !ok {
				fnScope = scope
			}
			body := c.ChildByFieldName("body")
			if body.Valid() {
				t.resolveUses(body, fnScope)
			}

		case c.Kind() == tsast.KindClassDeclaration || c.Kind() == tsast.KindAbstractClassDeclaration:
			body := c.ChildByFieldName("body")
			if body.Valid() {
				t.resolveUses(body, scope)
			}

		case c.RawType() == "import_statement" || c.Kind() == tsast.KindTypeAliasDeclaration ||
			c.Kind() == tsast.KindInterfaceDeclaration || c.Kind() == tsast.KindEnumDeclaration:
			// declarations only; no runtime use-sites to record here.

		case c.Kind() == tsast.KindLexicalDeclaration || c.Kind() == tsast.KindVariableDeclaration:
			for j := 0; j < c.NamedChildCount(); j++ {
				vd := c.NamedChild(j)
				if vd.Kind() != tsast.KindVariableDeclarator {
					continue
				}
				value := vd.ChildByFieldName("value")
				if value.Valid() {
					t.resolveExpr(value, scope)
				}
			}

		case c.RawType() == "statement_block":
			blockScope, ok := t.nodeScope[keyOf(c.Span())]
			if !ok {
				blockScope = scope
			}
			t.resolveUses(c, blockScope)

		case c.RawType() == "catch_clause":
			clauseScope, ok := t.nodeScope[keyOf(c.Span())]
			if !ok {
				clauseScope = scope
			}
			body := c.ChildByFieldName("body")
			if body.Valid() {
				t.resolveUses(body, clauseScope)
			}

		default:
			t.resolveExpr(c, scope)
		}
	}
}

// resolveExpr handles a single expression/statement subtree: it records the
// node itself if it is a reference-bearing shape (identifier, assignment,
// mutating call), then always continues into its own named children using
// resolveUses so nested declarations still open their own scopes correctly.
func (t *Tracker) resolveExpr(n tsast.Node, scope *Scope) {
	if !n.Valid() {
		return
	}

	switch n.Kind() {
	case tsast.KindIdentifier:
		t.recordUse(n, scope)
		return

	case tsast.KindAssignmentExpression:
		t.recordAssignmentMutation(n, scope)

	case tsast.KindCallExpression:
		t.recordMutatingCall(n, scope)
	}

	t.resolveUses(n, scope)
}

func (t *Tracker) recordUse(id tsast.Node, scope *Scope) {
	b, ok := scope.lookup(id.Text())
	if !ok {
		return
	}
	b.Uses = append(b.Uses, id.Span())
}

// recordAssignmentMutation flags the binding of a member/subscript
// assignment's root object as mutated: `target.prop = x` or `target[k] = x`.
func (t *Tracker) recordAssignmentMutation(assign tsast.Node, scope *Scope) {
	left := assign.ChildByFieldName("left")
	if left.Kind() != tsast.KindMemberExpression && left.Kind() != tsast.KindSubscriptExpression {
		return
	}
	root := objectRoot(left)
	if root.Kind() != tsast.KindIdentifier {
		return
	}
	b, ok := scope.lookup(root.Text())
	if !ok {
		return
	}
	b.Mutations = append(b.Mutations, assign.Span())
}

// recordMutatingCall flags the binding of a mutating array-method call's
// receiver: `arr.push(x)` and friends from the closed method set.
func (t *Tracker) recordMutatingCall(call tsast.Node, scope *Scope) {
	callee := call.ChildByFieldName("function")
	if callee.Kind() != tsast.KindMemberExpression {
		return
	}
	prop := callee.ChildByFieldName("property")
	if !prop.Valid() || !IsMutatingMethod(prop.Text()) {
		return
	}
	obj := callee.ChildByFieldName("object")
	if obj.Kind() != tsast.KindIdentifier {
		return
	}
	b, ok := scope.lookup(obj.Text())
	if !ok {
		return
	}
	b.Mutations = append(b.Mutations, call.Span())
}

// objectRoot walks a chain of member/subscript expressions down to the
// leftmost object, e.g. `a.b[0].c` resolves to identifier `a`.
func objectRoot(n tsast.Node) tsast.Node {
	for {
		switch n.Kind() {
		case tsast.KindMemberExpression, tsast.KindSubscriptExpression:
			obj := n.ChildByFieldName("object")
			if !obj.Valid() {
				return n
			}
			n = obj
		default:
			return n
		}
	}
}
