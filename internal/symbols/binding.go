package symbols

import "purets/internal/source"

// DeclKind is how a binding entered scope.
type DeclKind uint8

const (
	DeclConst DeclKind = iota
	DeclLet
	DeclVar
	DeclParam
	DeclFunction
	DeclClass
	DeclImport
	DeclType
)

// mutatingArrayMethods is the closed set of calls that count as a mutation
// of their receiver array, per §4.D.
var mutatingArrayMethods = map[string]bool{
	"push": true, "pop": true, "shift": true, "unshift": true,
	"splice": true, "sort": true, "reverse": true, "fill": true, "copyWithin": true,
}

// IsMutatingMethod reports whether name is one of the array-mutating call
// names the symbol tracker watches for.
func IsMutatingMethod(name string) bool {
	return mutatingArrayMethods[name]
}

// Binding is one declared identifier: its kind, declaration site, and every
// use/mutation site recorded against it during the tracker's second pass.
type Binding struct {
	Name            string
	Kind            DeclKind
	DeclSpan        source.Span
	ImportSpecifier string // import kind only: the module specifier string
	Uses            []source.Span
	Mutations       []source.Span
}

// Used reports whether the binding has any recorded use-site.
func (b *Binding) Used() bool {
	return len(b.Uses) > 0
}

// Mutated reports whether the binding has any recorded mutation-site.
func (b *Binding) Mutated() bool {
	return len(b.Mutations) > 0
}

// Exempt reports whether identifiers named like b are exempt from
// unused-binding checks (leading underscore).
func (b *Binding) Exempt() bool {
	return len(b.Name) > 0 && b.Name[0] == '_'
}
