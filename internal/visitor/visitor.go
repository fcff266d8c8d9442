package visitor

import (
	"fmt"

	"purets/internal/diag"
	"purets/internal/source"
	"purets/internal/tsast"
)

// Visitor holds a fixed rule set's dispatch table: each NodeKind maps to
// the rules that subscribed to it. Building the table is the only work
// done up front; Run performs the single pre-order walk.
type Visitor struct {
	dispatch map[tsast.NodeKind][]Rule
}

// New builds a dispatch table from rules, read once.
func New(rules []Rule) *Visitor {
	v := &Visitor{dispatch: make(map[tsast.NodeKind][]Rule)}
	for _, r := range rules {
		for _, k := range r.Kinds() {
			v.dispatch[k] = append(v.dispatch[k], r)
		}
	}
	return v
}

type seenKey struct {
	rule  diag.RuleID
	start uint32
	end   uint32
}

// Run walks ctx.Tree once in stable pre-order, broadcasting each node to
// every rule subscribed to its kind. A panicking rule, an out-of-range
// span, or a duplicate (rule_id, span) pair degrades to a single
// internal-error diagnostic instead of propagating or duplicating.
func (v *Visitor) Run(ctx *Context) *diag.Bag {
	bag := diag.NewBag(65535)
	seen := make(map[seenKey]bool)

	var ancestors []tsast.Node
	contentLen := uint32(len(ctx.Content))

	var walk func(n tsast.Node)
	walk = func(n tsast.Node) {
		if !n.Valid() {
			return
		}

		for _, r := range v.dispatch[n.Kind()] {
			results := v.invoke(r, n, ancestors, ctx)
			for _, d := range results {
				dd := d
				if dd.Primary.Start > dd.Primary.End || dd.Primary.End > contentLen {
					bag.Add(internalErrorDiagnostic(ctx, dd))
					continue
				}
				key := seenKey{rule: dd.RuleID, start: dd.Primary.Start, end: dd.Primary.End}
				if seen[key] {
					bag.Add(internalErrorDiagnostic(ctx, dd))
					continue
				}
				seen[key] = true
				bag.Add(&dd)
			}
		}

		ancestors = append(ancestors, n)
		for i := 0; i < n.NamedChildCount(); i++ {
			walk(n.NamedChild(i))
		}
		ancestors = ancestors[:len(ancestors)-1]
	}

	walk(ctx.Tree.Root())
	return bag
}

// invoke calls a single rule, recovering from any panic so one misbehaving
// rule cannot abort the whole file's analysis.
func (v *Visitor) invoke(r Rule, n tsast.Node, ancestors []tsast.Node, ctx *Context) (results []diag.Diagnostic) {
	defer func() {
		if rec := recover(); rec != nil {
			d := diag.NewError(diag.RuleInternalError, n.Span(), fmt.Sprintf("rule %s panicked: %v", r.ID(), rec))
			results = []diag.Diagnostic{d}
		}
	}()
	// ancestors is handed by reference to the slice backing array that the
	// walk keeps mutating via append/truncate; copy so a rule cannot
	// observe later mutations or retain an aliased view past this call.
	view := make([]tsast.Node, len(ancestors))
	copy(view, ancestors)
	return r.Check(n, view, ctx)
}

func internalErrorDiagnostic(ctx *Context, offending diag.Diagnostic) *diag.Diagnostic {
	d := diag.NewError(diag.RuleInternalError, safeSpan(ctx, offending.Primary), fmt.Sprintf("rule %s violated the diagnostic invariant", offending.RuleID))
	return &d
}

// safeSpan clamps a span that failed the bounds check so the degraded
// diagnostic itself never violates the same invariant it is reporting.
func safeSpan(ctx *Context, s source.Span) source.Span {
	contentLen := uint32(len(ctx.Content))
	start, end := s.Start, s.End
	if start > contentLen {
		start = contentLen
	}
	if end > contentLen {
		end = contentLen
	}
	if start > end {
		start = end
	}
	return source.Span{File: s.File, Start: start, End: end}
}
