// Package fuzztests houses fuzz harnesses for the early pipeline
// (source -> lexer -> parser). They guard against panics, hangs and span
// bookkeeping bugs on arbitrary inputs; they never assert on diagnostics,
// only that the front end stays well behaved.
package fuzztests
