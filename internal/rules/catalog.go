package rules

import "purets/internal/visitor"

// All is the fixed 54-entry rule catalog. Order is irrelevant: rules
// commute on the diagnostic set modulo stable sort, per the combined
// visitor's contract.
var All = []visitor.Rule{
	noClasses,
	noEnums,
	noThrow,
	noTryCatch,
	noDelete,
	noEval,
	noNewFunction,
	noForEach,
	noDoWhile,
	noGetters,
	noSetters,
	noThisInFunctions,
	noNamespaceImports,
	noReexports,
	noHTTPImports,
	noRequire,
	noFilename,
	noDirname,
	noGlobalProcess,
	noObjectAssign,
	noDefineProperty,
	noConstantCondition,
	switchCaseBlock,

	noAsCast,
	noAsUpcast,
	noTypeAssertion,
	letRequiresType,
	emptyArrayRequiresType,
	noMutableRecord,
	preferReadonlyArray,
	interfaceExtendsOnly,
	noDynamicAccess,

	missingTSExtension,
	noNamedExports,
	exportConstNeedsType,
	noExportLet,
	forbiddenLibraries,
	maxFunctionParams,

	filenameFunctionMatch,
	exportRequiresJSDoc,
	jsdocParamMissing,
	jsdocParamUnknown,
	jsdocParamCount,
	paramMissingType,
	noSideEffectFunctions,
	mustUseReturnValue,
	noTopLevelSideEffects,
	pathBasedRestrictions,
	allowDirectives,

	noUnusedVariables,
	noUnusedImports,
	tryMustReturnOk,
	catchMustReturnErr,
	noMemberAssignments,
}
