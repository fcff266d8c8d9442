// Package visitor implements the combined single-pass AST walker: one
// traversal broadcasts every node to every rule subscribed to its kind,
// carrying a read-only ancestor chain and the frozen per-file context each
// rule consults.
package visitor

import (
	"purets/internal/allow"
	"purets/internal/jsdoc"
	"purets/internal/source"
	"purets/internal/symbols"
	"purets/internal/tsast"
)

// Context is the frozen, read-only per-file state every rule reads. It is
// built once by the orchestrator before visitation starts and never
// mutated during the walk.
type Context struct {
	Path    string
	Role    source.Role
	Content []byte
	Tree    *tsast.Tree
	Docs    *jsdoc.Index
	Allow   *allow.Index
	Symbols *symbols.Tracker
}
