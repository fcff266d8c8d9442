// Package expect implements the purets-expect-error reconciler: it scans
// line comments and JSDoc blocks for expectation markers and consumes the
// diagnostics they name, emitting unused-expect-error for anything left
// unmatched.
package expect

import (
	"strings"

	"purets/internal/diag"
	"purets/internal/source"
	"purets/internal/tsast"
)

const markerToken = "purets-expect-error"

// Marker is one parsed purets-expect-error directive: the source line it
// sits on and the rule ids it expects a diagnostic for.
type Marker struct {
	Line    uint32
	Span    source.Span
	RuleIDs []diag.RuleID
}

// Scan walks every comment node in tree looking for the marker token and
// returns one Marker per comment that carries it.
func Scan(tree *tsast.Tree, fileSet *source.FileSet) []Marker {
	var markers []Marker
	tsast.Walk(tree.Root(), func(n tsast.Node) bool {
		if n.Kind() != tsast.KindComment {
			return true
		}
		ids := parseMarker(n.Text())
		if len(ids) == 0 {
			return true
		}
		start, _ := fileSet.Resolve(n.Span())
		markers = append(markers, Marker{Line: start.Line, Span: n.Span(), RuleIDs: ids})
		return true
	})
	return markers
}

// parseMarker extracts the comma-separated rule id list following the
// marker token inside one comment's raw text, tolerating both // line
// comments and /* ... */ or /** ... */ block comments.
func parseMarker(raw string) []diag.RuleID {
	idx := strings.Index(raw, markerToken)
	if idx < 0 {
		return nil
	}
	rest := raw[idx+len(markerToken):]
	if nl := strings.IndexAny(rest, "\r\n"); nl >= 0 {
		rest = rest[:nl]
	}
	rest = strings.TrimSuffix(strings.TrimSpace(rest), "*/")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil
	}
	var ids []diag.RuleID
	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ids = append(ids, diag.RuleID(part))
	}
	return ids
}
