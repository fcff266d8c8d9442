package rules

import (
	"fmt"
	"path/filepath"
	"strings"

	"purets/internal/allow"
	"purets/internal/diag"
	"purets/internal/jsdoc"
	"purets/internal/source"
	"purets/internal/tsast"
	"purets/internal/visitor"
)

var functionLikeKinds = []tsast.NodeKind{
	tsast.KindFunctionDeclaration, tsast.KindGeneratorFunctionDeclaration,
	tsast.KindMethodDefinition, tsast.KindArrowFunction, tsast.KindFunctionExpression,
}

// fileStem returns a path's basename with its extension and any trailing
// .test/_test marker removed, the name filename-function-match compares
// against an exported function's identifier.
func fileStem(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.TrimSuffix(stem, ".test")
	stem = strings.TrimSuffix(stem, "_test")
	return stem
}

// docsForFunction resolves the JSDoc block bound to a function-like
// declaration, following the export wrapper when the function is the
// direct child of an export_statement (the block binds to the wrapper,
// not the inner declaration).
func docsForFunction(fn tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) (*jsdoc.Block, bool) {
	if exp, ok := exportedAncestor(ancestors); ok {
		if b, ok := ctx.Docs.Lookup(exp.Span()); ok {
			return b, true
		}
	}
	return ctx.Docs.Lookup(fn.Span())
}

var filenameFunctionMatch = rule(diag.RuleFilenameFunctionMatch,
	[]tsast.NodeKind{tsast.KindExportStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		switch ctx.Role {
		case source.RolePure, source.RoleIO, source.RoleMain, source.RoleIndex:
		default:
			return nil
		}
		decl := exportedDeclaration(n)
		if decl.Kind() != tsast.KindFunctionDeclaration && decl.Kind() != tsast.KindGeneratorFunctionDeclaration {
			return nil
		}
		name := decl.ChildByFieldName("name")
		if !name.Valid() {
			return nil
		}
		want := fileStem(ctx.Path)
		if name.Text() == want {
			return nil
		}
		return one(diag.NewError(diag.RuleFilenameFunctionMatch, name.Span(),
			fmt.Sprintf("exported function '%s' must be named '%s' to match the filename", name.Text(), want)))
	})

var exportRequiresJSDoc = rule(diag.RuleExportRequiresJSDoc,
	[]tsast.NodeKind{tsast.KindExportStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if _, ok := ctx.Docs.Lookup(n.Span()); ok {
			return nil
		}
		return one(diag.NewError(diag.RuleExportRequiresJSDoc, n.Span(), "exported declaration requires a preceding JSDoc block"))
	})

var jsdocParamMissing = rule(diag.RuleJSDocParamMissing, functionLikeKinds,
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		block, ok := docsForFunction(n, ancestors, ctx)
		if !ok {
			return nil
		}
		var diags []diag.Diagnostic
		for _, p := range parametersOf(n) {
			name := paramIdentifierName(p)
			if name == "" {
				continue
			}
			if _, found := block.Param(name); !found {
				diags = append(diags, diag.NewError(diag.RuleJSDocParamMissing, p.Span(), "parameter '"+name+"' has no matching @param tag"))
			}
		}
		return diags
	})

var jsdocParamUnknown = rule(diag.RuleJSDocParamUnknown, functionLikeKinds,
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		block, ok := docsForFunction(n, ancestors, ctx)
		if !ok {
			return nil
		}
		names := make(map[string]bool)
		for _, p := range parametersOf(n) {
			names[paramIdentifierName(p)] = true
		}
		var diags []diag.Diagnostic
		for _, tag := range block.Params {
			if !names[tag.Name] {
				diags = append(diags, diag.NewError(diag.RuleJSDocParamUnknown, block.Span, "@param '"+tag.Name+"' does not match any parameter"))
			}
		}
		return diags
	})

var jsdocParamCount = rule(diag.RuleJSDocParamCount, functionLikeKinds,
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		block, ok := docsForFunction(n, ancestors, ctx)
		if !ok {
			return nil
		}
		params := parametersOf(n)
		if len(params) != len(block.Params) {
			return one(diag.NewError(diag.RuleJSDocParamCount, n.Span(),
				fmt.Sprintf("function declares %d parameter(s) but JSDoc documents %d", len(params), len(block.Params))))
		}
		return nil
	})

var paramMissingType = rule(diag.RuleParamMissingType, functionLikeKinds,
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		var diags []diag.Diagnostic
		for _, p := range parametersOf(n) {
			if _, ok := paramTypeAnnotation(p); ok {
				continue
			}
			name := paramIdentifierName(p)
			if name == "" {
				continue
			}
			diags = append(diags, diag.NewWarning(diag.RuleParamMissingType, p.Span(), "parameter '"+name+"' is missing an explicit type annotation"))
		}
		return diags
	})

var mutationClockCallees = map[string]bool{"Math.random": true, "Date.now": true}
var timerIdentifiers = map[string]bool{"setTimeout": true, "setInterval": true, "clearTimeout": true, "clearInterval": true}

var noSideEffectFunctions = rule(diag.RuleNoSideEffectFunctions,
	[]tsast.NodeKind{tsast.KindCallExpression, tsast.KindNewExpression},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if !insideFunction(ancestors) {
			return nil
		}
		switch n.Kind() {
		case tsast.KindNewExpression:
			ctor := n.ChildByFieldName("constructor")
			if flattenMemberChain(ctor) != "Date" {
				return nil
			}
			if ctx.Allow.Granted(n, allow.CapMutations) {
				return nil
			}
			return one(diag.NewError(diag.RuleNoSideEffectFunctions, n.Span(), "new Date() requires @allow mutations"))
		case tsast.KindCallExpression:
			name := calleeName(n)
			fn := n.ChildByFieldName("function")
			if timerIdentifiers[name] || (fn.Kind() == tsast.KindIdentifier && timerIdentifiers[fn.Text()]) {
				if ctx.Allow.Granted(n, allow.CapTimers) {
					return nil
				}
				return one(diag.NewError(diag.RuleNoSideEffectFunctions, n.Span(), name+" requires @allow timers"))
			}
			if mutationClockCallees[name] {
				if ctx.Allow.Granted(n, allow.CapMutations) {
					return nil
				}
				return one(diag.NewError(diag.RuleNoSideEffectFunctions, n.Span(), name+"() requires @allow mutations"))
			}
			return nil
		default:
			return nil
		}
	})

var voidSinkCallees = map[string]bool{
	"console.log": true, "console.error": true, "console.warn": true, "console.info": true, "console.debug": true,
	"process.exit": true, "process.stdout.write": true,
}

func isVoidSink(name string) bool {
	if voidSinkCallees[name] {
		return true
	}
	return strings.HasPrefix(name, "assert.")
}

func isIIFE(call tsast.Node) bool {
	fn := call.ChildByFieldName("function")
	return fn.Kind() == tsast.KindArrowFunction || fn.Kind() == tsast.KindFunctionExpression
}

// voidReturningFunctions scans every function declaration in the file,
// nested ones included, for an explicit ": void" return annotation, the lexical signal
// must-use-return-value exempts a call from when its callee matches.
func voidReturningFunctions(ctx *visitor.Context) map[string]bool {
	out := make(map[string]bool)
	root := ctx.Tree.Root()
	tsast.Walk(root, func(n tsast.Node) bool {
		if n.Kind() != tsast.KindFunctionDeclaration {
			return true
		}
		name := n.ChildByFieldName("name")
		ret := n.ChildByFieldName("return_type")
		if name.Valid() && ret.Valid() && strings.TrimSpace(ret.Text()) == ": void" {
			out[name.Text()] = true
		}
		return true
	})
	return out
}

var mustUseReturnValue = rule(diag.RuleMustUseReturnValue,
	[]tsast.NodeKind{tsast.KindExpressionStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if n.NamedChildCount() == 0 {
			return nil
		}
		call := n.NamedChild(0)
		if call.Kind() != tsast.KindCallExpression {
			return nil
		}
		if isIIFE(call) {
			return nil
		}
		name := calleeName(call)
		if isVoidSink(name) {
			return nil
		}
		if name != "" && voidReturningFunctions(ctx)[name] {
			return nil
		}
		return one(diag.NewError(diag.RuleMustUseReturnValue, call.Span(), "call result is discarded"))
	})

var topLevelStatementKinds = []tsast.NodeKind{
	tsast.KindExpressionStatement, tsast.KindIfStatement, tsast.KindForStatement, tsast.KindForInStatement,
	tsast.KindWhileStatement, tsast.KindDoStatement, tsast.KindSwitchStatement, tsast.KindTryStatement, tsast.KindThrowStatement,
}

func isDirectChildOfProgram(ancestors []tsast.Node) bool {
	return len(ancestors) > 0 && ancestors[len(ancestors)-1].Kind() == tsast.KindProgram
}

func isFirstTopLevelExpressionStatement(n tsast.Node, program tsast.Node) bool {
	for i := 0; i < program.NamedChildCount(); i++ {
		c := program.NamedChild(i)
		if c.Kind() == tsast.KindExpressionStatement {
			return c.Span() == n.Span()
		}
	}
	return false
}

var noTopLevelSideEffects = rule(diag.RuleNoTopLevelSideEffects, topLevelStatementKinds,
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if !isDirectChildOfProgram(ancestors) {
			return nil
		}
		if ctx.Role == source.RoleMain && n.Kind() == tsast.KindExpressionStatement &&
			isFirstTopLevelExpressionStatement(n, ancestors[len(ancestors)-1]) {
			return nil
		}
		return one(diag.NewError(diag.RuleNoTopLevelSideEffects, n.Span(), "module top level may only contain declarations"))
	})

var ioIdentifiers = map[string]bool{"fs": true, "path": true, "http": true, "https": true, "net": true, "child_process": true, "dgram": true, "dns": true}

var pathBasedRestrictions = rule(diag.RulePathBasedRestrictions,
	[]tsast.NodeKind{
		tsast.KindFunctionDeclaration, tsast.KindArrowFunction, tsast.KindFunctionExpression, tsast.KindGeneratorFunctionDeclaration,
		tsast.KindAwaitExpression, tsast.KindIdentifier, tsast.KindGenericType,
		tsast.KindLexicalDeclaration, tsast.KindVariableDeclaration, tsast.KindClassDeclaration,
		tsast.KindExportStatement,
	},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		switch ctx.Role {
		case source.RolePure:
			return pathRestrictionsPure(n)
		case source.RoleTypes:
			return pathRestrictionsTypes(n)
		case source.RoleIndex:
			return pathRestrictionsIndex(n, ancestors)
		default:
			return nil
		}
	})

func pathRestrictionsPure(n tsast.Node) []diag.Diagnostic {
	switch n.Kind() {
	case tsast.KindFunctionDeclaration, tsast.KindArrowFunction, tsast.KindFunctionExpression, tsast.KindGeneratorFunctionDeclaration:
		for i := 0; i < n.ChildCount(); i++ {
			if n.Child(i).Text() == "async" {
				return one(diag.NewError(diag.RulePathBasedRestrictions, n.Span(), "async functions are forbidden in pure files"))
			}
		}
		return nil
	case tsast.KindAwaitExpression:
		return one(diag.NewError(diag.RulePathBasedRestrictions, n.Span(), "await is forbidden in pure files"))
	case tsast.KindIdentifier:
		text := n.Text()
		if text == "fetch" || ioIdentifiers[text] {
			return one(diag.NewError(diag.RulePathBasedRestrictions, n.Span(), text+" is forbidden in pure files"))
		}
		return nil
	case tsast.KindGenericType:
		name := n.ChildByFieldName("name")
		if name.Valid() && name.Text() == "Promise" {
			return one(diag.NewError(diag.RulePathBasedRestrictions, n.Span(), "Promise types are forbidden in pure files"))
		}
		return nil
	default:
		return nil
	}
}

func pathRestrictionsTypes(n tsast.Node) []diag.Diagnostic {
	switch n.Kind() {
	case tsast.KindLexicalDeclaration, tsast.KindVariableDeclaration, tsast.KindFunctionDeclaration, tsast.KindClassDeclaration:
		return one(diag.NewError(diag.RulePathBasedRestrictions, n.Span(), "types files may only declare types and interfaces"))
	default:
		return nil
	}
}

func pathRestrictionsIndex(n tsast.Node, ancestors []tsast.Node) []diag.Diagnostic {
	if n.Kind() != tsast.KindExportStatement || !isDirectChildOfProgram(ancestors) {
		return nil
	}
	if n.ChildByFieldName("source").Valid() {
		return nil
	}
	return one(diag.NewError(diag.RulePathBasedRestrictions, n.Span(), "index files may only re-export"))
}

var domIdentifiers = map[string]bool{"document": true, "window": true, "navigator": true}

// domTypes and netTypes are the type-level counterparts of domIdentifiers
// and fetch: a parameter or return type naming one of these still reaches
// into DOM or network capability even when no runtime identifier appears,
// e.g. function onClick(e: MouseEvent): void {}.
var domTypes = map[string]bool{"HTMLElement": true, "MouseEvent": true, "Event": true, "Node": true}
var netTypes = map[string]bool{"Response": true, "Request": true, "RequestInit": true}

var allowDirectives = rule(diag.RuleAllowDirectives,
	[]tsast.NodeKind{tsast.KindIdentifier, tsast.KindMemberExpression, tsast.KindTypeIdentifier},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		switch n.Kind() {
		case tsast.KindIdentifier:
			text := n.Text()
			if domIdentifiers[text] {
				if ctx.Allow.Granted(n, allow.CapDOM) {
					return nil
				}
				return one(diag.NewError(diag.RuleAllowDirectives, n.Span(), text+" requires @allow dom"))
			}
			if text == "fetch" {
				if ctx.Allow.Granted(n, allow.CapNet) {
					return nil
				}
				return one(diag.NewError(diag.RuleAllowDirectives, n.Span(), "fetch requires @allow net"))
			}
			return nil
		case tsast.KindTypeIdentifier:
			text := n.Text()
			if domTypes[text] {
				if ctx.Allow.Granted(n, allow.CapDOM) {
					return nil
				}
				return one(diag.NewError(diag.RuleAllowDirectives, n.Span(), text+" requires @allow dom"))
			}
			if netTypes[text] {
				if ctx.Allow.Granted(n, allow.CapNet) {
					return nil
				}
				return one(diag.NewError(diag.RuleAllowDirectives, n.Span(), text+" requires @allow net"))
			}
			return nil
		case tsast.KindMemberExpression:
			obj := n.ChildByFieldName("object")
			if obj.Kind() == tsast.KindIdentifier && obj.Text() == "console" {
				if ctx.Allow.Granted(n, allow.CapConsole) {
					return nil
				}
				return one(diag.NewError(diag.RuleAllowDirectives, n.Span(), "console access requires @allow console"))
			}
			return nil
		default:
			return nil
		}
	})
