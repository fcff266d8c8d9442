package rules

import (
	"context"
	"testing"

	"purets/internal/allow"
	"purets/internal/diag"
	"purets/internal/jsdoc"
	"purets/internal/source"
	"purets/internal/symbols"
	"purets/internal/tsast"
	"purets/internal/visitor"
)

func runRule(t *testing.T, r visitor.Rule, path string, role source.Role, src string) *diag.Bag {
	t.Helper()
	content := []byte(src)
	tree, err := tsast.Parse(context.Background(), path, content, source.FileID(0))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(tree.Close)
	docs := jsdoc.Build(tree, content)
	ctx := &visitor.Context{
		Path:    path,
		Role:    role,
		Content: content,
		Tree:    tree,
		Docs:    docs,
		Allow:   allow.NewIndex(docs),
		Symbols: symbols.Build(tree, source.FileID(0)),
	}
	return visitor.New([]visitor.Rule{r}).Run(ctx)
}

func hasRule(bag *diag.Bag, id diag.RuleID) bool {
	for _, d := range bag.Items() {
		if d.RuleID == id {
			return true
		}
	}
	return false
}

func TestNoClassesOnClassDeclaration(t *testing.T) {
	bag := runRule(t, noClasses, "src/pure/User.ts", source.RolePure,
		"class User { constructor(public n: string) {} }\n")
	if !hasRule(bag, diag.RuleNoClasses) {
		t.Fatalf("expected no-classes")
	}
}

func TestMissingTSExtensionOnBareRelativeImport(t *testing.T) {
	bag := runRule(t, missingTSExtension, "src/pure/test.ts", source.RolePure,
		"import { foo } from './utils';\nexport function test(){ return foo(); }\n")
	if !hasRule(bag, diag.RuleMissingTSExtension) {
		t.Fatalf("expected missing-ts-extension")
	}
}

func TestPreferReadonlyArrayOnUnmutatedArray(t *testing.T) {
	bag := runRule(t, preferReadonlyArray, "src/pure/nums.ts", source.RolePure,
		"const a: number[] = [1,2,3]; const b = a.map(x=>x*2); export default b;\n")
	if !hasRule(bag, diag.RulePreferReadonlyArray) {
		t.Fatalf("expected prefer-readonly-array")
	}
}

func TestNoAsCastFlagsPlainAssertionNotConst(t *testing.T) {
	bag := runRule(t, noAsCast, "src/pure/x.ts", source.RolePure, `const x = "123" as any;`+"\n")
	if !hasRule(bag, diag.RuleNoAsCast) {
		t.Fatalf("expected no-as-cast")
	}
	bag = runRule(t, noAsCast, "src/pure/x.ts", source.RolePure, "const x = [1,2,3] as const;\n")
	if hasRule(bag, diag.RuleNoAsCast) {
		t.Fatalf("as const must not be flagged")
	}
}

func TestFilenameFunctionMatchOnMismatch(t *testing.T) {
	bag := runRule(t, filenameFunctionMatch, "src/pure/add.ts", source.RolePure,
		"/** add */\nexport function wrongName(a:number,b:number){ return a+b; }\n")
	if !hasRule(bag, diag.RuleFilenameFunctionMatch) {
		t.Fatalf("expected filename-function-match")
	}
}

func TestExportRequiresJSDocOnBareExport(t *testing.T) {
	bag := runRule(t, exportRequiresJSDoc, "src/pure/add.ts", source.RolePure,
		"export function add(a: number, b: number): number { return a + b; }\n")
	if !hasRule(bag, diag.RuleExportRequiresJSDoc) {
		t.Fatalf("expected export-requires-jsdoc")
	}
}

func TestJSDocParamMissingAndUnknown(t *testing.T) {
	src := "/**\n * @param {number} a\n * @param {number} extra\n */\nexport function add(a: number, b: number): number { return a + b; }\n"
	missing := runRule(t, jsdocParamMissing, "src/pure/add.ts", source.RolePure, src)
	if !hasRule(missing, diag.RuleJSDocParamMissing) {
		t.Fatalf("expected jsdoc-param-missing for 'b'")
	}
	unknown := runRule(t, jsdocParamUnknown, "src/pure/add.ts", source.RolePure, src)
	if !hasRule(unknown, diag.RuleJSDocParamUnknown) {
		t.Fatalf("expected jsdoc-param-unknown for 'extra'")
	}
}

func TestParamMissingTypeOnUntypedParam(t *testing.T) {
	bag := runRule(t, paramMissingType, "src/pure/add.ts", source.RolePure,
		"export function add(a, b: number): number { return a + b; }\n")
	if !hasRule(bag, diag.RuleParamMissingType) {
		t.Fatalf("expected param-missing-type")
	}
}

func TestNoSideEffectFunctionsInsideFunctionBody(t *testing.T) {
	bag := runRule(t, noSideEffectFunctions, "src/pure/rand.ts", source.RolePure,
		"export function roll(): number { return Math.random(); }\n")
	if !hasRule(bag, diag.RuleNoSideEffectFunctions) {
		t.Fatalf("expected no-side-effect-functions")
	}
}

func TestNoSideEffectFunctionsAllowedAtTopLevel(t *testing.T) {
	bag := runRule(t, noSideEffectFunctions, "src/pure/rand.ts", source.RolePure,
		"const seed = Math.random();\nexport default seed;\n")
	if hasRule(bag, diag.RuleNoSideEffectFunctions) {
		t.Fatalf("top-level clock call must not be flagged")
	}
}

func TestNoSideEffectFunctionsGrantedByAllow(t *testing.T) {
	bag := runRule(t, noSideEffectFunctions, "src/pure/rand.ts", source.RolePure,
		"/**\n * @allow mutations\n */\nexport function roll(): number { return Math.random(); }\n")
	if hasRule(bag, diag.RuleNoSideEffectFunctions) {
		t.Fatalf("@allow mutations must suppress the diagnostic")
	}
}

func TestMustUseReturnValueOnDiscardedCall(t *testing.T) {
	bag := runRule(t, mustUseReturnValue, "src/pure/x.ts", source.RolePure,
		"export function run(): void { compute(); }\n")
	if !hasRule(bag, diag.RuleMustUseReturnValue) {
		t.Fatalf("expected must-use-return-value")
	}
}

func TestMustUseReturnValueAllowsVoidSink(t *testing.T) {
	bag := runRule(t, mustUseReturnValue, "src/pure/x.ts", source.RolePure,
		"export function run(): void { console.log('hi'); }\n")
	if hasRule(bag, diag.RuleMustUseReturnValue) {
		t.Fatalf("console.log must not be flagged")
	}
}

func TestNoTopLevelSideEffectsFlagsBareCall(t *testing.T) {
	bag := runRule(t, noTopLevelSideEffects, "src/pure/x.ts", source.RolePure,
		"doSomething();\n")
	if !hasRule(bag, diag.RuleNoTopLevelSideEffects) {
		t.Fatalf("expected no-top-level-side-effects")
	}
}

func TestNoTopLevelSideEffectsAllowsSingleBootstrapInMain(t *testing.T) {
	bag := runRule(t, noTopLevelSideEffects, "src/main.ts", source.RoleMain,
		"run();\n")
	if hasRule(bag, diag.RuleNoTopLevelSideEffects) {
		t.Fatalf("a single bootstrap call in a main file must not be flagged")
	}
}

func TestAllowDirectivesFlagsUnguardedConsole(t *testing.T) {
	bag := runRule(t, allowDirectives, "src/pure/x.ts", source.RolePure,
		"export function log(): void { console.log('hi'); }\n")
	if !hasRule(bag, diag.RuleAllowDirectives) {
		t.Fatalf("expected allow-directives for unguarded console access")
	}
}

func TestAllowDirectivesGrantedByFileTopAllow(t *testing.T) {
	bag := runRule(t, allowDirectives, "src/pure/x.ts", source.RolePure,
		"/**\n * @allow console\n */\nexport function log(): void { console.log('hi'); }\n")
	if hasRule(bag, diag.RuleAllowDirectives) {
		t.Fatalf("file-top @allow console must suppress the diagnostic")
	}
}

func TestNoUnusedVariablesFlagsUnusedConst(t *testing.T) {
	bag := runRule(t, noUnusedVariables, "src/pure/x.ts", source.RolePure,
		"const unused = 1;\nconst _ignored = 2;\nexport default _ignored;\n")
	if !hasRule(bag, diag.RuleNoUnusedVariables) {
		t.Fatalf("expected no-unused-variables for 'unused'")
	}
}

func TestTryMustReturnOkRequiresTrailingReturnOk(t *testing.T) {
	src := "/**\n * @allow throws\n */\nexport function run(): void {\n  try {\n    doWork();\n  } catch (e) {\n    return err(e);\n  }\n}\n"
	bag := runRule(t, tryMustReturnOk, "src/io/x.ts", source.RoleIO, src)
	if !hasRule(bag, diag.RuleTryMustReturnOk) {
		t.Fatalf("expected try-must-return-ok")
	}
}

func TestNoMemberAssignmentsOnConstBinding(t *testing.T) {
	bag := runRule(t, noMemberAssignments, "src/pure/x.ts", source.RolePure,
		"const config = { ready: false };\nconfig.ready = true;\n")
	if !hasRule(bag, diag.RuleNoMemberAssignments) {
		t.Fatalf("expected no-member-assignments")
	}
}

func TestNoDynamicAccessFlagsNonArrayVariableKey(t *testing.T) {
	bag := runRule(t, noDynamicAccess, "src/pure/x.ts", source.RolePure,
		"export function get(o: Record<string, number>, k: string): number { return o[k]; }\n")
	if !hasRule(bag, diag.RuleNoDynamicAccess) {
		t.Fatalf("expected no-dynamic-access for a non-array bracket access with a variable key")
	}
}

func TestNoDynamicAccessAllowsArrayVariableKey(t *testing.T) {
	bag := runRule(t, noDynamicAccess, "src/pure/x.ts", source.RolePure,
		"export function get(arr: number[], i: number): number { return arr[i]; }\n")
	if hasRule(bag, diag.RuleNoDynamicAccess) {
		t.Fatalf("array access with a variable index must not be flagged")
	}
}

func TestNoMutableRecordFlagsBareRecordType(t *testing.T) {
	bag := runRule(t, noMutableRecord, "src/pure/x.ts", source.RolePure,
		"const config: Record<string, number> = {};\n")
	if !hasRule(bag, diag.RuleNoMutableRecord) {
		t.Fatalf("expected no-mutable-record for an unwrapped, non-readonly Record")
	}
}

func TestNoMutableRecordAllowsReadonlyBinding(t *testing.T) {
	bag := runRule(t, noMutableRecord, "src/types/config.ts", source.RoleTypes,
		"interface Config { readonly settings: Record<string, string>; }\n")
	if hasRule(bag, diag.RuleNoMutableRecord) {
		t.Fatalf("a readonly-bound property must not be flagged even without Readonly<...>")
	}
}

func TestAllowDirectivesFlagsUnguardedDomType(t *testing.T) {
	bag := runRule(t, allowDirectives, "src/pure/x.ts", source.RolePure,
		"export function onClick(e: MouseEvent): void {}\n")
	if !hasRule(bag, diag.RuleAllowDirectives) {
		t.Fatalf("expected allow-directives for a MouseEvent parameter without @allow dom")
	}
}

func TestAllowDirectivesGrantsDomType(t *testing.T) {
	bag := runRule(t, allowDirectives, "src/pure/x.ts", source.RolePure,
		"/**\n * @allow dom\n */\nexport function onClick(e: MouseEvent): void {}\n")
	if hasRule(bag, diag.RuleAllowDirectives) {
		t.Fatalf("@allow dom must suppress a MouseEvent parameter type")
	}
}

func TestAllowDirectivesFlagsUnguardedNetType(t *testing.T) {
	bag := runRule(t, allowDirectives, "src/pure/x.ts", source.RolePure,
		"export function handle(r: Response): void {}\n")
	if !hasRule(bag, diag.RuleAllowDirectives) {
		t.Fatalf("expected allow-directives for a Response parameter without @allow net")
	}
}

func TestInterfaceExtendsOnlyFlagsStandaloneInterface(t *testing.T) {
	bag := runRule(t, interfaceExtendsOnly, "src/types/x.ts", source.RoleTypes,
		"interface Foo { bar: string; }\n")
	if !hasRule(bag, diag.RuleInterfaceExtendsOnly) {
		t.Fatalf("expected interface-extends-only for a standalone interface")
	}
}

func TestInterfaceExtendsOnlyAllowsExtendsClause(t *testing.T) {
	bag := runRule(t, interfaceExtendsOnly, "src/types/x.ts", source.RoleTypes,
		"interface Foo extends Bar { baz: number; }\n")
	if hasRule(bag, diag.RuleInterfaceExtendsOnly) {
		t.Fatalf("an interface that extends another must not be flagged")
	}
}

func TestNoGlobalProcessFlagsUnimportedProcess(t *testing.T) {
	bag := runRule(t, noGlobalProcess, "src/io/x.ts", source.RoleIO,
		"export function exit(): void { process.exit(1); }\n")
	if !hasRule(bag, diag.RuleNoGlobalProcess) {
		t.Fatalf("expected no-global-process for a bare global reference")
	}
}

func TestNoGlobalProcessAllowsImportedProcess(t *testing.T) {
	bag := runRule(t, noGlobalProcess, "src/io/x.ts", source.RoleIO,
		"import process from 'node:process';\nexport function exit(): void { process.exit(1); }\n")
	if hasRule(bag, diag.RuleNoGlobalProcess) {
		t.Fatalf("an imported process binding must not be flagged")
	}
}

func TestPathBasedRestrictionsFlagsAsyncInPureFile(t *testing.T) {
	bag := runRule(t, pathBasedRestrictions, "src/pure/x.ts", source.RolePure,
		"export async function run(): Promise<void> {}\n")
	if !hasRule(bag, diag.RulePathBasedRestrictions) {
		t.Fatalf("expected path-based-restrictions for an async function in a pure file")
	}
}

func TestPathBasedRestrictionsAllowsAsyncOutsidePureFile(t *testing.T) {
	bag := runRule(t, pathBasedRestrictions, "src/io/x.ts", source.RoleIO,
		"export async function run(): Promise<void> {}\n")
	if hasRule(bag, diag.RulePathBasedRestrictions) {
		t.Fatalf("an async function outside a pure file must not be flagged")
	}
}

func TestForbiddenLibrariesFlagsBlocklistedImport(t *testing.T) {
	bag := runRule(t, forbiddenLibraries, "src/pure/x.ts", source.RolePure,
		"import _ from 'lodash';\n")
	if !hasRule(bag, diag.RuleForbiddenLibraries) {
		t.Fatalf("expected forbidden-libraries for an import of lodash")
	}
}

func TestForbiddenLibrariesAllowsOrdinaryImport(t *testing.T) {
	bag := runRule(t, forbiddenLibraries, "src/pure/x.ts", source.RolePure,
		"import x from 'some-lib';\n")
	if hasRule(bag, diag.RuleForbiddenLibraries) {
		t.Fatalf("an import outside the blocklist must not be flagged")
	}
}

func TestNoUnusedImportsFlagsUnreferencedImport(t *testing.T) {
	bag := runRule(t, noUnusedImports, "src/pure/x.ts", source.RolePure,
		"import { foo } from './utils.ts';\nexport const x: number = 1;\n")
	if !hasRule(bag, diag.RuleNoUnusedImports) {
		t.Fatalf("expected no-unused-imports for an unreferenced named import")
	}
}

func TestNoUnusedImportsAllowsReferencedImport(t *testing.T) {
	bag := runRule(t, noUnusedImports, "src/pure/x.ts", source.RolePure,
		"import { foo } from './utils.ts';\nexport const x: number = foo;\n")
	if hasRule(bag, diag.RuleNoUnusedImports) {
		t.Fatalf("a referenced import must not be flagged")
	}
}

func TestCatchMustReturnErrRequiresTrailingReturnErr(t *testing.T) {
	src := "/**\n * @allow throws\n */\nexport function run(): void {\n  try {\n    return ok(doWork());\n  } catch (e) {\n    doSomething();\n  }\n}\n"
	bag := runRule(t, catchMustReturnErr, "src/io/x.ts", source.RoleIO, src)
	if !hasRule(bag, diag.RuleCatchMustReturnErr) {
		t.Fatalf("expected catch-must-return-err for a catch branch not ending in return err(...)")
	}
}

func TestCatchMustReturnErrAllowsTrailingReturnErr(t *testing.T) {
	src := "/**\n * @allow throws\n */\nexport function run(): void {\n  try {\n    doWork();\n  } catch (e) {\n    return err(e);\n  }\n}\n"
	bag := runRule(t, catchMustReturnErr, "src/io/x.ts", source.RoleIO, src)
	if hasRule(bag, diag.RuleCatchMustReturnErr) {
		t.Fatalf("a catch branch ending in return err(...) must not be flagged")
	}
}

func TestCatalogHasNoDuplicateRuleIDs(t *testing.T) {
	seen := make(map[diag.RuleID]bool)
	for _, r := range All {
		if seen[r.ID()] {
			t.Fatalf("duplicate rule id in catalog: %s", r.ID())
		}
		seen[r.ID()] = true
	}
}
