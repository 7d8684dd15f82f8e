package token

import "flint/internal/source"

// TriviaKind classifies whitespace and comments skipped by the lexer.
type TriviaKind uint8

const (
	// TriviaSpace is a run of spaces or tabs.
	TriviaSpace TriviaKind = iota
	// TriviaNewline is a single '\n'.
	TriviaNewline
	// TriviaLineComment is a '//' comment up to (not including) the newline.
	TriviaLineComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaLineComment:
		return "line_comment"
	}
	return "unknown"
}

// Trivia is a piece of non-semantic source text attached to the following
// token. Concatenating Leading texts and token texts in stream order
// reproduces the original source.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
