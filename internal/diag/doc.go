// Package diag defines the diagnostic model shared by all compiler phases.
//
// Diagnostic is the central record: severity, a stable numeric code, a
// human-readable message, a primary source span, and optional notes that add
// secondary context. The package performs no formatting or IO; rendering
// lives in internal/diagfmt.
//
// Phases emit through a Reporter so that emission is decoupled from storage.
// BagReporter aggregates into a Bag, which supports sorting, deduplication,
// and a hard cap on the number of collected diagnostics. DedupReporter can be
// layered in front of any Reporter to suppress exact duplicates at the source.
package diag
