package symbols

import "purets/internal/tsast"

// declare performs the tracker's first pass: it walks node's named children,
// registering hoistable bindings into scope and descending into nested
// scope boundaries (functions, blocks) with a fresh Scope of their own.
func (t *Tracker) declare(node tsast.Node, scope *Scope) {
	for i := 0; i < node.NamedChildCount(); i++ {
		c := node.NamedChild(i)
		switch {
		case c.Kind() == tsast.KindFunctionDeclaration || c.Kind() == tsast.KindGeneratorFunctionDeclaration:
			name := c.ChildByFieldName("name")
			if name.Valid() {
				scope.declare(&Binding{Name: name.Text(), Kind: DeclFunction, DeclSpan: c.Span()})
			}
			t.declareFunctionScope(c, scope)

		case c.Kind() == tsast.KindMethodDefinition || c.Kind() == tsast.KindArrowFunction || c.Kind() == tsast.KindFunctionExpression:
			t.declareFunctionScope(c, scope)

		case c.Kind() == tsast.KindClassDeclaration || c.Kind() == tsast.KindAbstractClassDeclaration:
			name := c.ChildByFieldName("name")
			if name.Valid() {
				scope.declare(&Binding{Name: name.Text(), Kind: DeclClass, DeclSpan: c.Span()})
			}
			t.declare(c, scope)

		case c.RawType() == "import_statement":
			t.declareImport(c, scope)

		case c.Kind() == tsast.KindLexicalDeclaration || c.Kind() == tsast.KindVariableDeclaration:
			t.declareVariable(c, scope)
			t.declare(c, scope)

		case c.Kind() == tsast.KindTypeAliasDeclaration || c.Kind() == tsast.KindInterfaceDeclaration || c.Kind() == tsast.KindEnumDeclaration:
			name := c.ChildByFieldName("name")
			if name.Valid() {
				scope.declare(&Binding{Name: name.Text(), Kind: DeclType, DeclSpan: c.Span()})
			}
			t.declare(c, scope)

		case c.RawType() == "statement_block":
			blockScope := t.newChildScope(ScopeBlock, c, scope)
			t.declare(c, blockScope)

		case c.RawType() == "catch_clause":
			clauseScope := t.newChildScope(ScopeBlock, c, scope)
			param := c.ChildByFieldName("parameter")
			if param.Valid() {
				clauseScope.declare(&Binding{Name: param.Text(), Kind: DeclParam, DeclSpan: param.Span()})
			}
			t.declare(c, clauseScope)

		default:
			t.declare(c, scope)
		}
	}
}

func (t *Tracker) newChildScope(kind ScopeKind, node tsast.Node, parent *Scope) *Scope {
	s := newScope(kind, node, parent)
	t.nodeScope[keyOf(node.Span())] = s
	return s
}

// declareFunctionScope creates the Function scope for a function-like node,
// declares its parameters, and recurses into its body under that scope.
func (t *Tracker) declareFunctionScope(fn tsast.Node, parent *Scope) {
	fnScope := t.newChildScope(ScopeFunction, fn, parent)
	t.declareParams(fn, fnScope)

	body := fn.ChildByFieldName("body")
	if body.Valid() {
		t.declare(body, fnScope)
	}
}

func (t *Tracker) declareParams(fn tsast.Node, fnScope *Scope) {
	params := fn.ChildByFieldName("parameters")
	if !params.Valid() {
		return
	}
	if params.Kind() == tsast.KindIdentifier {
		fnScope.declare(&Binding{Name: params.Text(), Kind: DeclParam, DeclSpan: params.Span()})
		return
	}
	for i := 0; i < params.NamedChildCount(); i++ {
		p := params.NamedChild(i)
		name := paramName(p)
		if name == "" {
			continue
		}
		fnScope.declare(&Binding{Name: name, Kind: DeclParam, DeclSpan: p.Span()})
	}
}

// paramName extracts the bound identifier from a required/optional/rest
// parameter node, tolerating destructuring patterns by falling back to the
// last identifier-shaped child.
func paramName(p tsast.Node) string {
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

func (t *Tracker) declareVariable(decl tsast.Node, scope *Scope) {
	kind := DeclConst
	if decl.ChildCount() > 0 {
		switch decl.Child(0).Text() {
		case "let":
			kind = DeclLet
		case "var":
			kind = DeclVar
		}
	}
	for i := 0; i < decl.NamedChildCount(); i++ {
		c := decl.NamedChild(i)
		if c.Kind() != tsast.KindVariableDeclarator {
			continue
		}
		name := c.ChildByFieldName("name")
		if !name.Valid() || name.Kind() != tsast.KindIdentifier {
			continue
		}
		scope.declare(&Binding{Name: name.Text(), Kind: kind, DeclSpan: c.Span()})
	}
}

// declareImport registers every local binding an import statement
// introduces: default, namespace, and named specifiers (honoring "as"
// aliases by picking the last identifier in the specifier).
func (t *Tracker) declareImport(imp tsast.Node, scope *Scope) {
	var source string
	src := imp.ChildByFieldName("source")
	if src.Valid() {
		source = src.Text()
	}

	tsast.Walk(imp, func(n tsast.Node) bool {
		switch n.RawType() {
		case "namespace_import":
			if id := lastIdentifier(n); id != "" {
				scope.declare(&Binding{Name: id, Kind: DeclImport, DeclSpan: n.Span(), ImportSpecifier: source})
			}
			return false
		case "import_specifier":
			if id := lastIdentifier(n); id != "" {
				scope.declare(&Binding{Name: id, Kind: DeclImport, DeclSpan: n.Span(), ImportSpecifier: source})
			}
			return false
		case "import_clause":
			if n.NamedChildCount() > 0 && n.NamedChild(0).Kind() == tsast.KindIdentifier {
				id := n.NamedChild(0)
				scope.declare(&Binding{Name: id.Text(), Kind: DeclImport, DeclSpan: id.Span(), ImportSpecifier: source})
			}
			return true
		}
		return true
	})
}

func lastIdentifier(n tsast.Node) string {
	var last string
	tsast.Walk(n, func(c tsast.Node) bool {
		if c.Kind() == tsast.KindIdentifier {
			last = c.Text()
		}
		return true
	})
	return last
}
