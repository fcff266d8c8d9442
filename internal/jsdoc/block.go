package jsdoc

import "purets/internal/source"

// ParamTag is one parsed @param entry. Type is the bracketed type phrase
// verbatim, or "" if the tag carried none.
type ParamTag struct {
	Name string
	Type string
}

// Block is a parsed JSDoc comment bound to exactly one declaration.
type Block struct {
	Span        source.Span
	Raw         string
	Description string
	Params      []ParamTag
	HasReturns  bool
	Allow       []string
}

// Param returns the tag named name, if present.
func (b *Block) Param(name string) (ParamTag, bool) {
	for _, p := range b.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamTag{}, false
}

// HasAllow reports whether the block grants the given capability word.
func (b *Block) HasAllow(capability string) bool {
	for _, a := range b.Allow {
		if a == capability {
			return true
		}
	}
	return false
}
