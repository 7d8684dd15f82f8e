package lexer

import (
	"flint/internal/diag"
	"flint/internal/token"
)

// scanString handles "..." literals with the escapes \n \t \r \\ \" \0.
// An unknown escape reports LexInvalidEscape but the literal is still
// produced so downstream phases can continue. A newline or EOF before the
// closing quote reports LexUnterminatedString and yields an Invalid token.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		if b == '\\' {
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			switch lx.cursor.Bump() {
			case 'n', 't', 'r', '\\', '"', '0':
			default:
				sp := lx.cursor.SpanFrom(escStart)
				lx.errLex(diag.LexInvalidEscape, sp, "invalid escape sequence "+string(lx.file.Content[sp.Start:sp.End]))
			}
			continue
		}
		if b == '\n' {
			// do not consume the newline; it stays trivia for the next token
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}
	// EOF without a closing quote
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
