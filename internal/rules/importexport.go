package rules

import (
	"strings"

	"purets/internal/diag"
	"purets/internal/source"
	"purets/internal/tsast"
	"purets/internal/visitor"
)

var relativeExtensions = map[string]bool{".ts": true, ".tsx": true, ".js": true, ".mjs": true}

var forbiddenLibraryNames = map[string]bool{
	"jquery": true, "lodash": true, "underscore": true, "rxjs": true, "minimist": true, "yargs": true,
}

func isForbiddenLibrary(specifier string) bool {
	if forbiddenLibraryNames[specifier] {
		return true
	}
	return strings.HasPrefix(specifier, "lodash/")
}

var missingTSExtension = rule(diag.RuleMissingTSExtension,
	[]tsast.NodeKind{tsast.KindImportStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		src := n.ChildByFieldName("source")
		if !src.Valid() {
			return nil
		}
		specifier := strings.Trim(src.Text(), `"'`)
		if !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../") {
			return nil
		}
		for ext := range relativeExtensions {
			if strings.HasSuffix(specifier, ext) {
				return nil
			}
		}
		return one(diag.NewError(diag.RuleMissingTSExtension, src.Span(), "relative import must end in .ts/.tsx/.js/.mjs"))
	})

var forbiddenLibraries = rule(diag.RuleForbiddenLibraries,
	[]tsast.NodeKind{tsast.KindImportStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		src := n.ChildByFieldName("source")
		if !src.Valid() {
			return nil
		}
		specifier := strings.Trim(src.Text(), `"'`)
		if isForbiddenLibrary(specifier) {
			return one(diag.NewError(diag.RuleForbiddenLibraries, src.Span(), "import of '"+specifier+"' is forbidden"))
		}
		return nil
	})

var noNamedExports = rule(diag.RuleNoNamedExports,
	[]tsast.NodeKind{tsast.KindExportStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		if ctx.Role == source.RoleTypes || ctx.Role == source.RoleIndex {
			return nil
		}
		for i := 0; i < n.ChildCount(); i++ {
			if n.Child(i).Text() == "default" {
				return nil
			}
		}
		if n.ChildByFieldName("source").Valid() {
			return nil
		}
		return one(diag.NewError(diag.RuleNoNamedExports, n.Span(), "only export default (or a permitted re-export) is allowed"))
	})

var exportConstNeedsType = rule(diag.RuleExportConstNeedsType,
	[]tsast.NodeKind{tsast.KindExportStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		decl := exportedDeclaration(n)
		if decl.Kind() != tsast.KindLexicalDeclaration || decl.ChildCount() == 0 || decl.Child(0).Text() != "const" {
			return nil
		}
		var diags []diag.Diagnostic
		for i := 0; i < decl.NamedChildCount(); i++ {
			d := decl.NamedChild(i)
			if d.Kind() != tsast.KindVariableDeclarator {
				continue
			}
			if !d.ChildByFieldName("type").Valid() {
				diags = append(diags, diag.NewWarning(diag.RuleExportConstNeedsType, d.Span(), "exported const requires an explicit type annotation"))
			}
		}
		return diags
	})

var noExportLet = rule(diag.RuleNoExportLet,
	[]tsast.NodeKind{tsast.KindExportStatement},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		decl := exportedDeclaration(n)
		if decl.Kind() == tsast.KindLexicalDeclaration && decl.ChildCount() > 0 && decl.Child(0).Text() == "let" {
			return one(diag.NewError(diag.RuleNoExportLet, n.Span(), "export let is forbidden"))
		}
		return nil
	})

var maxFunctionParams = rule(diag.RuleMaxFunctionParams,
	[]tsast.NodeKind{tsast.KindFunctionDeclaration, tsast.KindMethodDefinition, tsast.KindArrowFunction, tsast.KindFunctionExpression},
	func(n tsast.Node, ancestors []tsast.Node, ctx *visitor.Context) []diag.Diagnostic {
		params := parametersOf(n)
		if len(params) > 3 {
			return one(diag.NewError(diag.RuleMaxFunctionParams, n.Span(), "function declares more than 3 parameters"))
		}
		return nil
	})

// exportedDeclaration returns the single declaration an export_statement
// wraps (its first non-keyword named child), or the zero Node.
func exportedDeclaration(exportStmt tsast.Node) tsast.Node {
	if exportStmt.NamedChildCount() == 0 {
		return tsast.Node{}
	}
	return exportStmt.NamedChild(0)
}

