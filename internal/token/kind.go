package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token produced during recovery.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwExtern represents the 'extern' keyword.
	KwExtern // extern
	// KwVar represents the 'var' keyword.
	KwVar // var
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a float literal token.
	FloatLit
	// StringLit represents a string literal token.
	StringLit

	// Plus represents the '+' operator.
	Plus // +
	// Minus represents the '-' operator.
	Minus // -
	// Star represents the '*' operator.
	Star // *
	// Slash represents the '/' operator.
	Slash // /
	// Percent represents the '%' operator.
	Percent // %
	// Assign represents the '=' operator.
	Assign // =
	// EqEq represents the '==' operator.
	EqEq // ==
	// Bang represents the '!' operator.
	Bang // !
	// BangEq represents the '!=' operator.
	BangEq // !=
	// Lt represents the '<' operator.
	Lt // <
	// LtEq represents the '<=' operator.
	LtEq // <=
	// Gt represents the '>' operator.
	Gt // >
	// GtEq represents the '>=' operator.
	GtEq // >=
	// AndAnd represents the '&&' operator.
	AndAnd // &&
	// OrOr represents the '||' operator.
	OrOr // ||
	// Arrow represents the '->' punctuation.
	Arrow // ->
	// Colon represents the ':' punctuation.
	Colon // :
	// Semicolon represents the ';' punctuation.
	Semicolon // ;
	// Comma represents the ',' punctuation.
	Comma // ,
	// LParen represents '('.
	LParen // (
	// RParen represents ')'.
	RParen // )
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
)

var kindNames = [...]string{
	Invalid:    "invalid",
	EOF:        "eof",
	Ident:      "identifier",
	KwFn:       "fn",
	KwExtern:   "extern",
	KwVar:      "var",
	KwLet:      "let",
	KwIf:       "if",
	KwElse:     "else",
	KwWhile:    "while",
	KwReturn:   "return",
	KwBreak:    "break",
	KwContinue: "continue",
	KwTrue:     "true",
	KwFalse:    "false",
	IntLit:     "int literal",
	FloatLit:   "float literal",
	StringLit:  "string literal",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Assign:     "=",
	EqEq:       "==",
	Bang:       "!",
	BangEq:     "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	AndAnd:     "&&",
	OrOr:       "||",
	Arrow:      "->",
	Colon:      ":",
	Semicolon:  ";",
	Comma:      ",",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
