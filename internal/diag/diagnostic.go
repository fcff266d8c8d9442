package diag

import "purets/internal/source"

// Diagnostic captures a single rule finding. The suggestion field, when
// present, is a human-readable hint only -- purets never models or applies
// structural patches.
type Diagnostic struct {
	Severity   Severity
	RuleID     RuleID
	Message    string
	Primary    source.Span
	Suggestion string
}
