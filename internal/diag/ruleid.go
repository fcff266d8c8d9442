package diag

// RuleID identifies the rule that produced a Diagnostic. Rule IDs are
// stable strings so they can appear verbatim in purets.toml overrides,
// expect-error markers, and JSON/sarif output.
type RuleID string

const (
	RuleUnknown RuleID = "unknown"

	// Side-effect isolation.
	RuleNoClasses             RuleID = "no-classes"
	RuleNoEnums               RuleID = "no-enums"
	RuleNoThrow               RuleID = "no-throw"
	RuleNoTryCatch            RuleID = "no-try-catch"
	RuleNoDelete              RuleID = "no-delete"
	RuleNoEval                RuleID = "no-eval"
	RuleNoNewFunction         RuleID = "no-new-function"
	RuleNoForEach             RuleID = "no-foreach"
	RuleNoDoWhile             RuleID = "no-do-while"
	RuleNoGetters             RuleID = "no-getters"
	RuleNoSetters             RuleID = "no-setters"
	RuleNoThisInFunctions     RuleID = "no-this-in-functions"
	RuleNoNamespaceImports    RuleID = "no-namespace-imports"
	RuleNoReexports           RuleID = "no-reexports"
	RuleNoHTTPImports         RuleID = "no-http-imports"
	RuleNoRequire             RuleID = "no-require"
	RuleNoFilename            RuleID = "no-filename"
	RuleNoDirname             RuleID = "no-dirname"
	RuleNoGlobalProcess       RuleID = "no-global-process"
	RuleNoObjectAssign        RuleID = "no-object-assign"
	RuleNoDefineProperty      RuleID = "no-define-property"
	RuleNoConstantCondition   RuleID = "no-constant-condition"
	RuleSwitchCaseBlock       RuleID = "switch-case-block"

	// Type and mutation discipline.
	RuleNoAsCast                RuleID = "no-as-cast"
	RuleNoAsUpcast              RuleID = "no-as-upcast"
	RuleNoTypeAssertion         RuleID = "no-type-assertion"
	RuleLetRequiresType         RuleID = "let-requires-type"
	RuleEmptyArrayRequiresType  RuleID = "empty-array-requires-type"
	RuleNoMutableRecord         RuleID = "no-mutable-record"
	RulePreferReadonlyArray     RuleID = "prefer-readonly-array"
	RuleInterfaceExtendsOnly    RuleID = "interface-extends-only"
	RuleNoDynamicAccess         RuleID = "no-dynamic-access"

	// Module / export shape.
	RuleMissingTSExtension    RuleID = "missing-ts-extension"
	RuleNoNamedExports        RuleID = "no-named-exports"
	RuleExportConstNeedsType  RuleID = "export-const-needs-type"
	RuleNoExportLet           RuleID = "no-export-let"
	RuleForbiddenLibraries    RuleID = "forbidden-libraries"
	RuleMaxFunctionParams     RuleID = "max-function-params"

	// Directory/file organization.
	RuleFilenameFunctionMatch RuleID = "filename-function-match"
	RuleExportRequiresJSDoc   RuleID = "export-requires-jsdoc"
	RuleJSDocParamMissing     RuleID = "jsdoc-param-missing"
	RuleJSDocParamUnknown     RuleID = "jsdoc-param-unknown"
	RuleJSDocParamCount       RuleID = "jsdoc-param-count"
	RuleParamMissingType      RuleID = "param-missing-type"
	RuleNoSideEffectFunctions RuleID = "no-side-effect-functions"
	RuleMustUseReturnValue    RuleID = "must-use-return-value"
	RuleNoTopLevelSideEffects RuleID = "no-top-level-side-effects"
	RulePathBasedRestrictions RuleID = "path-based-restrictions"
	RuleAllowDirectives       RuleID = "allow-directives"

	// Symbol usage and error handling idiom.
	RuleNoUnusedVariables  RuleID = "no-unused-variables"
	RuleNoUnusedImports    RuleID = "no-unused-imports"
	RuleTryMustReturnOk    RuleID = "try-must-return-ok"
	RuleCatchMustReturnErr RuleID = "catch-must-return-err"
	RuleNoMemberAssignments RuleID = "no-member-assignments"

	// Synthetic rule IDs for infrastructure-level diagnostics. These never
	// appear in the rule catalog and cannot be disabled via config.
	RuleParseError        RuleID = "parse-error"
	RuleInternalError     RuleID = "internal-error"
	RuleReadError         RuleID = "read-error"
	RuleUnusedExpectError RuleID = "unused-expect-error"
)

// catalogDescriptions documents every catalog rule id in one place so that
// diagfmt and the CLI's "list rules" output stay in sync with the rule set.
var catalogDescriptions = map[RuleID]string{
	RuleNoClasses:              "no class declarations or expressions",
	RuleNoEnums:                "no enum declarations",
	RuleNoThrow:                "no throw statement outside @allow throws",
	RuleNoTryCatch:             "no try/catch outside @allow throws",
	RuleNoDelete:               "no delete expression",
	RuleNoEval:                 "no calls to eval",
	RuleNoNewFunction:          "no new Function(...)",
	RuleNoForEach:              "no Array#forEach calls",
	RuleNoDoWhile:              "no do/while loops",
	RuleNoGetters:              "no accessor getters",
	RuleNoSetters:              "no accessor setters",
	RuleNoThisInFunctions:      "no this inside function or arrow bodies",
	RuleNoNamespaceImports:     "no import * as X namespace imports",
	RuleNoReexports:            "no wildcard/named re-exports outside index files",
	RuleNoHTTPImports:          "no http(s):// import specifiers",
	RuleNoRequire:              "no require(...) calls",
	RuleNoFilename:             "no __filename identifier",
	RuleNoDirname:              "no __dirname identifier",
	RuleNoGlobalProcess:        "process used without import and without @allow process",
	RuleNoObjectAssign:         "no Object.assign calls",
	RuleNoDefineProperty:       "no Object.defineProperty/defineProperties",
	RuleNoConstantCondition:    "no literal/trivially-constant conditions",
	RuleSwitchCaseBlock:        "non-empty case clauses must be blocks",
	RuleNoAsCast:               "no 'as T' assertions except as const",
	RuleNoAsUpcast:             "no double 'as unknown as T' assertions",
	RuleNoTypeAssertion:        "no angle-bracket type assertions",
	RuleLetRequiresType:        "let bindings require an explicit type annotation",
	RuleEmptyArrayRequiresType: "empty array literal const requires a type annotation",
	RuleNoMutableRecord:        "Record<K,V> type requires Readonly<...> or a readonly binding",
	RulePreferReadonlyArray:    "array-typed binding never mutated should use ReadonlyArray<T>",
	RuleInterfaceExtendsOnly:   "interface bodies may only extend, not declare members",
	RuleNoDynamicAccess:        "bracket access requires a numeric or literal-integer key",
	RuleMissingTSExtension:     "relative import specifier missing .ts/.tsx/.js/.mjs",
	RuleNoNamedExports:         "only a single export default or permitted re-export allowed",
	RuleExportConstNeedsType:   "export const requires an explicit type annotation",
	RuleNoExportLet:            "export let is forbidden",
	RuleForbiddenLibraries:     "import specifier is in the forbidden library blocklist",
	RuleMaxFunctionParams:      "function exceeds the maximum parameter count",
	RuleFilenameFunctionMatch:  "exported function name must match the filename stem",
	RuleExportRequiresJSDoc:    "exported declaration requires a preceding JSDoc block",
	RuleJSDocParamMissing:      "parameter has no matching @param tag",
	RuleJSDocParamUnknown:      "@param tag does not match any parameter",
	RuleJSDocParamCount:        "@param tag count does not match parameter count",
	RuleParamMissingType:       "parameter is missing an explicit type annotation",
	RuleNoSideEffectFunctions:  "nondeterministic call inside a function body without a matching @allow",
	RuleMustUseReturnValue:     "call result is discarded",
	RuleNoTopLevelSideEffects:  "module top level contains a non-declaration statement",
	RulePathBasedRestrictions:  "file role does not permit this construct",
	RuleAllowDirectives:        "capability used without a matching @allow directive in scope",
	RuleNoUnusedVariables:      "binding is never used",
	RuleNoUnusedImports:        "imported name is never referenced",
	RuleTryMustReturnOk:        "try branch must end in return ok(...)",
	RuleCatchMustReturnErr:     "catch branch must end in return err(...)",
	RuleNoMemberAssignments:    "assignment into a const-bound object or array",
	RuleParseError:             "the parser could not produce a usable tree for this file",
	RuleInternalError:          "a rule violated its own emission invariants",
	RuleReadError:              "the file could not be read from disk",
	RuleUnusedExpectError:      "purets-expect-error marker matched no diagnostic",
}

// Description returns the catalog's human-readable summary of a rule, or
// empty string for unknown or synthetic rule ids not worth documenting.
func (r RuleID) Description() string {
	return catalogDescriptions[r]
}

func (r RuleID) String() string {
	return string(r)
}
