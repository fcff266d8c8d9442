package expect

import (
	"fmt"

	"purets/internal/diag"
	"purets/internal/source"
)

// Reconcile consumes every diagnostic in bag matched by a marker and
// replaces the bag's contents with the remainder plus one
// unused-expect-error diagnostic per expectation that matched nothing. A
// diagnostic at line L or L+1 relative to a marker's own line satisfies
// that marker, per §4.G.
func Reconcile(bag *diag.Bag, markers []Marker, fileSet *source.FileSet) {
	if len(markers) == 0 {
		return
	}

	consumed := make(map[*diag.Diagnostic]bool)
	var unused []*diag.Diagnostic

	for _, m := range markers {
		for _, id := range m.RuleIDs {
			if !satisfy(bag, fileSet, m, id, consumed) {
				d := diag.NewError(diag.RuleUnusedExpectError, m.Span, fmt.Sprintf("purets-expect-error %s matched no diagnostic", id))
				unused = append(unused, &d)
			}
		}
	}

	bag.Filter(func(d *diag.Diagnostic) bool { return !consumed[d] })
	for _, d := range unused {
		bag.Add(d)
	}
}

// satisfy looks for the first not-yet-consumed diagnostic matching id whose
// span starts on the marker's line or the following one, marking it
// consumed and reporting success.
func satisfy(bag *diag.Bag, fileSet *source.FileSet, m Marker, id diag.RuleID, consumed map[*diag.Diagnostic]bool) bool {
	for _, d := range bag.Items() {
		if consumed[d] || d.RuleID != id {
			continue
		}
		start, _ := fileSet.Resolve(d.Primary)
		if start.Line == m.Line || start.Line == m.Line+1 {
			consumed[d] = true
			return true
		}
	}
	return false
}
