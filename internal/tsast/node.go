package tsast

import (
	sitter "github.com/smacker/go-tree-sitter"

	"fortio.org/safecast"

	"purets/internal/source"
)

// Node is a read-only view over one tree-sitter node plus the source bytes
// and FileID needed to resolve spans and text without threading extra
// arguments through every rule.
type Node struct {
	raw     *sitter.Node
	content []byte
	file    source.FileID
}

// newNode wraps a tree-sitter node. Returns the zero Node if raw is nil, so
// callers can check Valid() rather than nil-check a pointer.
func newNode(raw *sitter.Node, content []byte, file source.FileID) Node {
	return Node{raw: raw, content: content, file: file}
}

// Valid reports whether this view wraps an actual tree-sitter node.
func (n Node) Valid() bool {
	return n.raw != nil
}

// Kind returns the coarse dispatch category for this node.
func (n Node) Kind() NodeKind {
	if n.raw == nil {
		return KindUnknown
	}
	return kindFromRaw(n.raw.Type())
}

// RawType returns the underlying tree-sitter grammar symbol name.
func (n Node) RawType() string {
	if n.raw == nil {
		return ""
	}
	return n.raw.Type()
}

// Span returns this node's byte range within its file.
func (n Node) Span() source.Span {
	if n.raw == nil {
		return source.Span{File: n.file}
	}
	start, err := safecast.Conv[uint32](n.raw.StartByte())
	if err != nil {
		panic(err)
	}
	end, err := safecast.Conv[uint32](n.raw.EndByte())
	if err != nil {
		panic(err)
	}
	return source.Span{File: n.file, Start: start, End: end}
}

// Text returns the exact source slice covered by this node.
func (n Node) Text() string {
	if n.raw == nil {
		return ""
	}
	return string(n.content[n.raw.StartByte():n.raw.EndByte()])
}

// Parent returns the immediate syntactic parent, or the zero Node at the
// tree root. Rules that need more than one level up receive the ancestor
// stack from the combined visitor instead of walking Parent repeatedly.
func (n Node) Parent() Node {
	if n.raw == nil {
		return Node{}
	}
	return newNode(n.raw.Parent(), n.content, n.file)
}

// NamedChildCount returns the number of named (non-anonymous-token) children.
func (n Node) NamedChildCount() int {
	if n.raw == nil {
		return 0
	}
	return int(n.raw.NamedChildCount())
}

// NamedChild returns the i-th named child, or the zero Node if out of range.
func (n Node) NamedChild(i int) Node {
	if n.raw == nil || i < 0 || i >= n.NamedChildCount() {
		return Node{}
	}
	return newNode(n.raw.NamedChild(i), n.content, n.file)
}

// NamedChildren materializes every named child in order.
func (n Node) NamedChildren() []Node {
	count := n.NamedChildCount()
	out := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

// ChildCount returns the number of children including anonymous tokens.
func (n Node) ChildCount() int {
	if n.raw == nil {
		return 0
	}
	return int(n.raw.ChildCount())
}

// Child returns the i-th child including anonymous tokens.
func (n Node) Child(i int) Node {
	if n.raw == nil || i < 0 || i >= n.ChildCount() {
		return Node{}
	}
	return newNode(n.raw.Child(i), n.content, n.file)
}

// ChildByFieldName returns the child bound to the given grammar field, or
// the zero Node if the field is absent on this node.
func (n Node) ChildByFieldName(name string) Node {
	if n.raw == nil {
		return Node{}
	}
	return newNode(n.raw.ChildByFieldName(name), n.content, n.file)
}

// HasError reports whether tree-sitter's error recovery touched this subtree.
func (n Node) HasError() bool {
	if n.raw == nil {
		return false
	}
	return n.raw.HasError()
}

// IsNamed reports whether this node is a named grammar production rather
// than an anonymous token (punctuation, keyword).
func (n Node) IsNamed() bool {
	if n.raw == nil {
		return false
	}
	return n.raw.IsNamed()
}
