// Package diagfmt renders diagnostics and compiler dumps for humans and
// tools: the pretty caret format for terminals, JSON for integrations,
// plus token and AST dumps behind the inspection subcommands.
package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool
	IncludeNotes     bool
	// Max truncates the output, not the bag. Zero means everything.
	Max int
}
