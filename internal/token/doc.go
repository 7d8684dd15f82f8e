// Package token defines lexical token kinds and trivia for the Flint compiler.
// Invariants:
//   - Token.Text holds exactly the source text of the token.
//   - Token.Span matches Text (half-open byte range).
//   - Comments and whitespace never appear in the main token stream; they are
//     attached as leading Trivia so the original source can be reconstructed
//     from the token stream.
//   - Built-in type names (int, float, bool, string, void) are identifiers.
//     They are recognized by the semantic layer, not the lexer.
package token
