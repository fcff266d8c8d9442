package rules

import (
	"fmt"
	"strings"

	"purets/internal/allow"
	"purets/internal/diag"
	"purets/internal/source"
	"purets/internal/tsast"
	"purets/internal/visitor"
)

var noClasses = rule(diag.RuleNoClasses,
	[]tsast.NodeKind{tsast.KindClassDeclaration, tsast.KindAbstractClassDeclaration, tsast.KindClassExpression},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		return one(diag.NewError(diag.RuleNoClasses, n.Span(), "class declarations are forbidden"))
	})

var noEnums = rule(diag.RuleNoEnums,
	[]tsast.NodeKind{tsast.KindEnumDeclaration},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		return one(diag.NewError(diag.RuleNoEnums, n.Span(), "enum declarations are forbidden"))
	})

var noThrow = rule(diag.RuleNoThrow,
	[]tsast.NodeKind{tsast.KindThrowStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if ctx.Allow.Granted(n, allow.CapThrows) {
			return nil
		}
		return one(diag.NewError(diag.RuleNoThrow, n.Span(), "throw requires @allow throws"))
	})

var noTryCatch = rule(diag.RuleNoTryCatch,
	[]tsast.NodeKind{tsast.KindTryStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if ctx.Allow.Granted(n, allow.CapThrows) {
			return nil
		}
		return one(diag.NewError(diag.RuleNoTryCatch, n.Span(), "try/catch requires @allow throws"))
	})

var noDelete = rule(diag.RuleNoDelete,
	[]tsast.NodeKind{tsast.KindUnaryExpression},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if n.ChildCount() > 0 && n.Child(0).Text() == "delete" {
			return one(diag.NewError(diag.RuleNoDelete, n.Span(), "delete expressions are forbidden"))
		}
		return nil
	})

var noEval = rule(diag.RuleNoEval,
	[]tsast.NodeKind{tsast.KindCallExpression},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if calleeName(n) == "eval" {
			return one(diag.NewError(diag.RuleNoEval, n.Span(), "calls to eval are forbidden"))
		}
		return nil
	})

var noNewFunction = rule(diag.RuleNoNewFunction,
	[]tsast.NodeKind{tsast.KindNewExpression},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		callee := n.ChildByFieldName("constructor")
		if flattenMemberChain(callee) == "Function" {
			return one(diag.NewError(diag.RuleNoNewFunction, n.Span(), "new Function(...) is forbidden"))
		}
		return nil
	})

var noForEach = rule(diag.RuleNoForEach,
	[]tsast.NodeKind{tsast.KindCallExpression},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		name := calleeName(n)
		if name != "" && strings.HasSuffix(name, ".forEach") {
			return one(diag.NewError(diag.RuleNoForEach, n.Span(), "Array#forEach is forbidden"))
		}
		return nil
	})

var noDoWhile = rule(diag.RuleNoDoWhile,
	[]tsast.NodeKind{tsast.KindDoStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		return one(diag.NewError(diag.RuleNoDoWhile, n.Span(), "do/while loops are forbidden"))
	})

var noGetters = rule(diag.RuleNoGetters,
	[]tsast.NodeKind{tsast.KindMethodDefinition},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if accessorKeyword(n) == "get" {
			return one(diag.NewError(diag.RuleNoGetters, n.Span(), "getter accessors are forbidden"))
		}
		return nil
	})

var noSetters = rule(diag.RuleNoSetters,
	[]tsast.NodeKind{tsast.KindMethodDefinition},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if accessorKeyword(n) == "set" {
			return one(diag.NewError(diag.RuleNoSetters, n.Span(), "setter accessors are forbidden"))
		}
		return nil
	})

var noThisInFunctions = rule(diag.RuleNoThisInFunctions,
	[]tsast.NodeKind{tsast.KindThisExpression},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if insideFunction(ancestors) {
			return one(diag.NewError(diag.RuleNoThisInFunctions, n.Span(), "this is forbidden inside function and arrow bodies"))
		}
		return nil
	})

var noNamespaceImports = rule(diag.RuleNoNamespaceImports,
	[]tsast.NodeKind{tsast.KindImportStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		var found tsast.Node
		tsast.Walk(n, func(c tsast.Node) bool {
			if c.RawType() == "namespace_import" {
				found = c
				return false
			}
			return true
		})
		if found.Valid() {
			return one(diag.NewError(diag.RuleNoNamespaceImports, n.Span(), "import * as X namespace imports are forbidden"))
		}
		return nil
	})

var noReexports = rule(diag.RuleNoReexports,
	[]tsast.NodeKind{tsast.KindExportStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if ctx.Role == source.RoleIndex {
			return nil
		}
		if n.ChildByFieldName("source").Valid() {
			return one(diag.NewError(diag.RuleNoReexports, n.Span(), "re-exports are only allowed in index files"))
		}
		return nil
	})

var noHTTPImports = rule(diag.RuleNoHTTPImports,
	[]tsast.NodeKind{tsast.KindImportStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		src := n.ChildByFieldName("source")
		if !src.Valid() {
			return nil
		}
		specifier := strings.Trim(src.Text(), `"'`)
		if strings.HasPrefix(specifier, "http://") || strings.HasPrefix(specifier, "https://") {
			return one(diag.NewError(diag.RuleNoHTTPImports, src.Span(), "http(s):// import specifiers are forbidden"))
		}
		return nil
	})

var noRequire = rule(diag.RuleNoRequire,
	[]tsast.NodeKind{tsast.KindCallExpression},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if calleeName(n) == "require" {
			return one(diag.NewError(diag.RuleNoRequire, n.Span(), "require(...) is forbidden"))
		}
		return nil
	})

var noFilename = rule(diag.RuleNoFilename,
	[]tsast.NodeKind{tsast.KindIdentifier},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if n.Text() == "__filename" {
			return one(diag.NewError(diag.RuleNoFilename, n.Span(), "__filename is forbidden"))
		}
		return nil
	})

var noDirname = rule(diag.RuleNoDirname,
	[]tsast.NodeKind{tsast.KindIdentifier},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if n.Text() == "__dirname" {
			return one(diag.NewError(diag.RuleNoDirname, n.Span(), "__dirname is forbidden"))
		}
		return nil
	})

var noGlobalProcess = rule(diag.RuleNoGlobalProcess,
	[]tsast.NodeKind{tsast.KindIdentifier},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if n.Text() != "process" {
			return nil
		}
		if b, ok := ctx.Symbols.Lookup(n, "process"); ok && b.ImportSpecifier != "" {
			return nil
		}
		if ctx.Allow.Granted(n, allow.CapProcess) {
			return nil
		}
		return one(diag.NewError(diag.RuleNoGlobalProcess, n.Span(), "process used without an import or @allow process"))
	})

var noObjectAssign = rule(diag.RuleNoObjectAssign,
	[]tsast.NodeKind{tsast.KindCallExpression},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if calleeName(n) == "Object.assign" {
			return one(diag.NewError(diag.RuleNoObjectAssign, n.Span(), "Object.assign is forbidden"))
		}
		return nil
	})

var noDefineProperty = rule(diag.RuleNoDefineProperty,
	[]tsast.NodeKind{tsast.KindCallExpression},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		name := calleeName(n)
		if name == "Object.defineProperty" || name == "Object.defineProperties" {
			return one(diag.NewError(diag.RuleNoDefineProperty, n.Span(), fmt.Sprintf("%s is forbidden", name)))
		}
		return nil
	})

var noConstantCondition = rule(diag.RuleNoConstantCondition,
	[]tsast.NodeKind{tsast.KindIfStatement, tsast.KindWhileStatement, tsast.KindForStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		cond := n.ChildByFieldName("condition")
		if !cond.Valid() {
			return nil
		}
		if isLiteralConstant(cond) {
			return one(diag.NewError(diag.RuleNoConstantCondition, cond.Span(), "condition is trivially constant"))
		}
		return nil
	})

var switchCaseBlock = rule(diag.RuleSwitchCaseBlock,
	[]tsast.NodeKind{tsast.KindSwitchCase, tsast.KindSwitchDefault},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		var bodyCount int
		var hasBlock bool
		for i := 0; i < n.NamedChildCount(); i++ {
			c := n.NamedChild(i)
			if c.RawType() == "statement_block" {
				hasBlock = true
			}
			bodyCount++
		}
		if bodyCount > 0 && !hasBlock {
			return one(diag.NewError(diag.RuleSwitchCaseBlock, n.Span(), "case body must be wrapped in a block"))
		}
		return nil
	})

// accessorKeyword returns "get"/"set" if the method_definition node
// declares an accessor, or "" otherwise. The accessor keyword is an
// anonymous token preceding the method name in the grammar.
func accessorKeyword(m tsast.Node) string {
	for i := 0; i < m.ChildCount(); i++ {
		c := m.Child(i)
		if c.IsNamed() {
			break
		}
		if c.Text() == "get" || c.Text() == "set" {
			return c.Text()
		}
	}
	return ""
}
