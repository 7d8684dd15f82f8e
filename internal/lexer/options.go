package lexer

import (
	"flint/internal/diag"
	"flint/internal/source"
)

// Options configure a Lexer. Reporter may be nil; errors are then dropped
// but lexing continues.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
