package allow

import (
	"purets/internal/jsdoc"
	"purets/internal/tsast"
)

// Index answers capability grant queries for one file. It owns no mutable
// state beyond the JSDoc index it was built from; lookups are read-only.
type Index struct {
	docs       *jsdoc.Index
	projectCap map[Capability]bool
}

// NewIndex builds an allow-directive index over a file's JSDoc associations.
func NewIndex(docs *jsdoc.Index) *Index {
	return &Index{docs: docs}
}

// WithProjectGrants returns a copy of idx that also treats every capability
// in grants as always-on, regardless of any JSDoc directive. This backs
// purets.toml's project-wide allow table for packages that are net-heavy
// or DOM-heavy everywhere (e.g. a frontend workspace), so every file in
// that package doesn't need a repeated per-function @allow tag.
func (idx *Index) WithProjectGrants(grants []Capability) *Index {
	projectCap := make(map[Capability]bool, len(grants))
	for _, cap := range grants {
		projectCap[cap] = true
	}
	return &Index{docs: idx.docs, projectCap: projectCap}
}

// Granted reports whether capability is visible at node: granted by a
// project-wide table, a file-scoped leading comment, or a JSDoc block
// bound to node or any of its ancestors. Lookup is monotonic outward,
// matching §4.C: a grant at an outer scope is always visible to nodes
// nested within it.
func (idx *Index) Granted(node tsast.Node, capability Capability) bool {
	if idx.projectCap[capability] {
		return true
	}

	for _, cap := range idx.docs.FileAllow() {
		if Capability(cap) == capability {
			return true
		}
	}

	for n := node; n.Valid(); n = n.Parent() {
		block, ok := idx.docs.Lookup(n.Span())
		if ok && block.HasAllow(string(capability)) {
			return true
		}
	}
	return false
}
