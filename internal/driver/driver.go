// Package driver sequences the compiler stages over source files. Each
// entry point loads sources into a fresh FileSet, collects diagnostics in
// one Bag and stops at the first stage that produced errors; the bag is
// always returned so callers can render everything found so far.
package driver

// Config is fixed by the CLI before compilation starts and never mutated
// afterwards.
type Config struct {
	// InputPath names the .fl file to compile.
	InputPath string
	// OutputPath names the executable to produce. Empty means the build
	// layer's default.
	OutputPath string
	// MaxDiagnostics bounds how many diagnostics a single bag retains.
	MaxDiagnostics int
	// Timings records per-phase durations as an info diagnostic.
	Timings bool
}

// DefaultMaxDiagnostics bounds diagnostic output when the CLI does not
// override it.
const DefaultMaxDiagnostics = 100

func (c Config) maxDiagnostics() int {
	if c.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return c.MaxDiagnostics
}
