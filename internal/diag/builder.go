package diag

import "purets/internal/source"

// New constructs a Diagnostic with no suggestion attached.
func New(sev Severity, rule RuleID, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		RuleID:   rule,
		Primary:  primary,
		Message:  msg,
	}
}

// NewError is a shortcut for SevError diagnostics, the default severity for
// every catalog rule unless the rule declares otherwise.
func NewError(rule RuleID, primary source.Span, msg string) Diagnostic {
	return New(SevError, rule, primary, msg)
}

// NewWarning is a shortcut for SevWarning diagnostics.
func NewWarning(rule RuleID, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, rule, primary, msg)
}

// WithSuggestion attaches a human-readable fix hint. It never models a
// structural patch.
func (d Diagnostic) WithSuggestion(s string) Diagnostic {
	d.Suggestion = s
	return d
}
