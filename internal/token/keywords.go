package token

var keywords = map[string]Kind{
	"fn":       KwFn,
	"extern":   KwExtern,
	"var":      KwVar,
	"let":      KwLet,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword reports whether ident is a reserved word and which kind it
// maps to. Keywords are case-sensitive; only the lowercase forms count.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
