package tsast

// Walk visits n and every named descendant in stable pre-order, calling fn
// for each. fn returns false to skip descending into that node's children;
// it does not stop the walk entirely.
//
// This is a plain recursive helper for packages that need a one-off
// traversal (JSDoc association, the symbol pre-pass) and do not need the
// combined visitor's per-rule dispatch table or ancestor stack.
func Walk(n Node, fn func(Node) bool) {
	if !n.Valid() {
		return
	}
	if !fn(n) {
		return
	}
	for i := 0; i < n.NamedChildCount(); i++ {
		Walk(n.NamedChild(i), fn)
	}
}
