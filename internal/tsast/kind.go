package tsast

// NodeKind is a coarse tag over the subset of the TypeScript grammar the
// rule catalog cares about. Rules declare their dispatch interest as a set
// of NodeKind values rather than raw grammar symbol strings, per the
// sum-types-over-inheritance design: the combined visitor reads each rule's
// declared kinds once to build its table.
//
// RawType always carries the underlying tree-sitter symbol name; a rule
// that needs grammar detail finer than NodeKind distinguishes (accessor
// keyword, operator text, declaration keyword) reads it from the node
// directly rather than growing the enum without bound.
type NodeKind uint8

const (
	KindUnknown NodeKind = iota
	KindProgram

	KindClassDeclaration
	KindAbstractClassDeclaration
	KindClassExpression
	KindInterfaceDeclaration
	KindEnumDeclaration
	KindTypeAliasDeclaration

	KindFunctionDeclaration
	KindGeneratorFunctionDeclaration
	KindMethodDefinition
	KindArrowFunction
	KindFunctionExpression

	KindLexicalDeclaration
	KindVariableDeclaration
	KindVariableDeclarator

	KindImportStatement
	KindNamespaceImport
	KindExportStatement

	KindThrowStatement
	KindTryStatement
	KindCatchClause

	KindDoStatement
	KindWhileStatement
	KindForStatement
	KindForInStatement
	KindIfStatement

	KindSwitchStatement
	KindSwitchCase
	KindSwitchDefault

	KindCallExpression
	KindNewExpression
	KindMemberExpression
	KindSubscriptExpression
	KindUnaryExpression
	KindBinaryExpression
	KindAssignmentExpression
	KindAugmentedAssignmentExpression
	KindTernaryExpression

	KindAsExpression
	KindTypeAssertion
	KindNonNullExpression
	KindSatisfiesExpression

	KindArrayType
	KindGenericType
	KindObjectType
	KindPredefinedType
	KindTypeAnnotation

	KindThisExpression
	KindIdentifier
	KindPropertyIdentifier
	KindTypeIdentifier
	KindExpressionStatement
	KindReturnStatement
	KindAwaitExpression
	KindTemplateString
	KindString
	KindNumber

	KindComment

	// KindOther is every grammar symbol not otherwise distinguished. The
	// combined visitor dispatches it like any other kind, so a rule
	// subscribing to KindOther would receive every such node; no rule in
	// the catalog subscribes to it.
	KindOther
)

// rawKindTable maps tree-sitter-typescript symbol names to a NodeKind.
// Symbols absent from this table classify as KindOther; RawType still
// carries the original string so rules can match on it directly.
var rawKindTable = map[string]NodeKind{
	"program": KindProgram,

	"class_declaration":          KindClassDeclaration,
	"abstract_class_declaration": KindAbstractClassDeclaration,
	"class":                      KindClassExpression,
	"interface_declaration":      KindInterfaceDeclaration,
	"enum_declaration":           KindEnumDeclaration,
	"type_alias_declaration":     KindTypeAliasDeclaration,

	"function_declaration":           KindFunctionDeclaration,
	"generator_function_declaration": KindGeneratorFunctionDeclaration,
	"method_definition":              KindMethodDefinition,
	"arrow_function":                 KindArrowFunction,
	"function_expression":            KindFunctionExpression,
	"generator_function":             KindFunctionExpression,

	"lexical_declaration":  KindLexicalDeclaration,
	"variable_declaration": KindVariableDeclaration,
	"variable_declarator":  KindVariableDeclarator,

	"import_statement":  KindImportStatement,
	"namespace_import":  KindNamespaceImport,
	"export_statement":  KindExportStatement,

	"throw_statement": KindThrowStatement,
	"try_statement":   KindTryStatement,
	"catch_clause":    KindCatchClause,

	"do_statement":    KindDoStatement,
	"while_statement":  KindWhileStatement,
	"for_statement":    KindForStatement,
	"for_in_statement": KindForInStatement,
	"if_statement":     KindIfStatement,

	"switch_statement": KindSwitchStatement,
	"switch_case":      KindSwitchCase,
	"switch_default":   KindSwitchDefault,

	"call_expression":                   KindCallExpression,
	"new_expression":                    KindNewExpression,
	"member_expression":                 KindMemberExpression,
	"subscript_expression":              KindSubscriptExpression,
	"unary_expression":                  KindUnaryExpression,
	"binary_expression":                 KindBinaryExpression,
	"assignment_expression":             KindAssignmentExpression,
	"augmented_assignment_expression":   KindAugmentedAssignmentExpression,
	"ternary_expression":                KindTernaryExpression,

	"as_expression":          KindAsExpression,
	"type_assertion":         KindTypeAssertion,
	"non_null_expression":    KindNonNullExpression,
	"satisfies_expression":   KindSatisfiesExpression,

	"array_type":      KindArrayType,
	"generic_type":     KindGenericType,
	"object_type":      KindObjectType,
	"predefined_type":  KindPredefinedType,
	"type_annotation":  KindTypeAnnotation,

	"this":                KindThisExpression,
	"identifier":          KindIdentifier,
	"property_identifier": KindPropertyIdentifier,
	"type_identifier":      KindTypeIdentifier,
	"expression_statement": KindExpressionStatement,
	"return_statement":    KindReturnStatement,
	"await_expression":    KindAwaitExpression,
	"template_string":     KindTemplateString,
	"string":              KindString,
	"number":              KindNumber,

	"comment": KindComment,
}

// kindFromRaw resolves a tree-sitter type string to a NodeKind, defaulting
// to KindOther for symbols this package does not distinguish.
func kindFromRaw(raw string) NodeKind {
	if k, ok := rawKindTable[raw]; ok {
		return k
	}
	return KindOther
}

func (k NodeKind) String() string {
	switch k {
	case KindProgram:
		return "program"
	case KindClassDeclaration:
		return "class_declaration"
	case KindAbstractClassDeclaration:
		return "abstract_class_declaration"
	case KindClassExpression:
		return "class_expression"
	case KindInterfaceDeclaration:
		return "interface_declaration"
	case KindEnumDeclaration:
		return "enum_declaration"
	case KindTypeAliasDeclaration:
		return "type_alias_declaration"
	case KindFunctionDeclaration:
		return "function_declaration"
	case KindGeneratorFunctionDeclaration:
		return "generator_function_declaration"
	case KindMethodDefinition:
		return "method_definition"
	case KindArrowFunction:
		return "arrow_function"
	case KindFunctionExpression:
		return "function_expression"
	case KindLexicalDeclaration:
		return "lexical_declaration"
	case KindVariableDeclaration:
		return "variable_declaration"
	case KindVariableDeclarator:
		return "variable_declarator"
	case KindImportStatement:
		return "import_statement"
	case KindNamespaceImport:
		return "namespace_import"
	case KindExportStatement:
		return "export_statement"
	case KindThrowStatement:
		return "throw_statement"
	case KindTryStatement:
		return "try_statement"
	case KindCatchClause:
		return "catch_clause"
	case KindDoStatement:
		return "do_statement"
	case KindWhileStatement:
		return "while_statement"
	case KindForStatement:
		return "for_statement"
	case KindForInStatement:
		return "for_in_statement"
	case KindIfStatement:
		return "if_statement"
	case KindSwitchStatement:
		return "switch_statement"
	case KindSwitchCase:
		return "switch_case"
	case KindSwitchDefault:
		return "switch_default"
	case KindCallExpression:
		return "call_expression"
	case KindNewExpression:
		return "new_expression"
	case KindMemberExpression:
		return "member_expression"
	case KindSubscriptExpression:
		return "subscript_expression"
	case KindUnaryExpression:
		return "unary_expression"
	case KindBinaryExpression:
		return "binary_expression"
	case KindAssignmentExpression:
		return "assignment_expression"
	case KindAugmentedAssignmentExpression:
		return "augmented_assignment_expression"
	case KindTernaryExpression:
		return "ternary_expression"
	case KindAsExpression:
		return "as_expression"
	case KindTypeAssertion:
		return "type_assertion"
	case KindNonNullExpression:
		return "non_null_expression"
	case KindSatisfiesExpression:
		return "satisfies_expression"
	case KindArrayType:
		return "array_type"
	case KindGenericType:
		return "generic_type"
	case KindObjectType:
		return "object_type"
	case KindPredefinedType:
		return "predefined_type"
	case KindTypeAnnotation:
		return "type_annotation"
	case KindThisExpression:
		return "this"
	case KindIdentifier:
		return "identifier"
	case KindPropertyIdentifier:
		return "property_identifier"
	case KindTypeIdentifier:
		return "type_identifier"
	case KindExpressionStatement:
		return "expression_statement"
	case KindReturnStatement:
		return "return_statement"
	case KindAwaitExpression:
		return "await_expression"
	case KindTemplateString:
		return "template_string"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindComment:
		return "comment"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}
