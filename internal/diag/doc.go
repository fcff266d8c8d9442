// Package diag defines the core diagnostic model shared by every rule and
// by the file orchestrator.
//
// # Purpose
//
//   - Provide a deterministic, serialisable data structure that captures
//     findings produced by the rule catalog.
//   - Offer light-weight utilities (Bag and the New/NewError/NewWarning
//     builders) that let rules emit diagnostics without coupling to
//     concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt; orchestration lives
// in internal/engine.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity -- tri-level enum (Info, Warning, Error) defined in severity.go.
//   - RuleID -- stable string identifier (see ruleid.go), matching the
//     catalog names used in purets.toml and expect-error markers.
//   - Message -- human oriented text; keep it short and actionable.
//   - Primary span -- the canonical source.Span pointing to the issue.
//   - Suggestion -- an optional human-readable hint; never a structural patch.
//
// # Emitting diagnostics
//
// Rules construct Diagnostic values with New, NewError or NewWarning and
// optionally chain WithSuggestion; they return them to the combined
// visitor, which collects them into a Bag. A Bag supports sorting,
// deduplication, filtering, and transformation.
//
// # Consumers
//
//   - internal/diagfmt: renders Diagnostics into pretty/json/sarif formats.
//   - internal/engine: coordinates bag collection per file and reconciles
//     expect-error markers against the produced diagnostics.
package diag
