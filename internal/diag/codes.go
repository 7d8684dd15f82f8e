package diag

import "fmt"

// Code is a compact, stable identifier for a diagnostic kind. Codes are
// grouped into numeric bands per phase so the band alone tells which stage
// produced the finding.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical (1000-1999).
	LexInvalidCharacter   Code = 1001
	LexUnterminatedString Code = 1002
	LexInvalidEscape      Code = 1003
	LexBadNumber          Code = 1004

	// Syntax (2000-2999).
	SynUnexpectedToken     Code = 2001
	SynExpectSemicolon     Code = 2002
	SynUnclosedParen       Code = 2003
	SynUnclosedBrace       Code = 2004
	SynExpectIdentifier    Code = 2005
	SynExpectType          Code = 2006
	SynExpectExpression    Code = 2007
	SynInvalidAssignTarget Code = 2008

	// Semantic (3000-3999).
	SemaDuplicateDeclaration Code = 3001
	SemaUndefinedReference   Code = 3002
	SemaTypeMismatch         Code = 3003
	SemaArgumentError        Code = 3004
	SemaNotCallable          Code = 3005
	SemaImmutableAssign      Code = 3006
	SemaInvalidOperator      Code = 3007
	SemaConditionNotBool     Code = 3008
	SemaVoidValue            Code = 3009
	SemaUnknownType          Code = 3010
	SemaBreakOutsideLoop     Code = 3011
	SemaContinueOutsideLoop  Code = 3012

	// Lowering (4000-4999).
	LowerMissingReturn Code = 4001

	// IO (5000-5999).
	IOLoadFileError  Code = 5001
	IOWriteFileError Code = 5002

	// Backend and linking (6000-6999).
	BackendError Code = 6001
	LinkError    Code = 6002

	// Project manifest (7000-7999).
	ProjInvalidManifest Code = 7001
	ProjMissingMain     Code = 7002

	// Observability (8000): informational pipeline reports.
	ObsTimings Code = 8001
)

var codeTitles = map[Code]string{
	UnknownCode: "unknown diagnostic",

	LexInvalidCharacter:   "invalid character",
	LexUnterminatedString: "unterminated string literal",
	LexInvalidEscape:      "invalid escape sequence",
	LexBadNumber:          "malformed numeric literal",

	SynUnexpectedToken:     "unexpected token",
	SynExpectSemicolon:     "expected ';'",
	SynUnclosedParen:       "unclosed '('",
	SynUnclosedBrace:       "unclosed '{'",
	SynExpectIdentifier:    "expected identifier",
	SynExpectType:          "expected type",
	SynExpectExpression:    "expected expression",
	SynInvalidAssignTarget: "invalid assignment target",

	SemaDuplicateDeclaration: "duplicate declaration",
	SemaUndefinedReference:   "undefined reference",
	SemaTypeMismatch:         "type mismatch",
	SemaArgumentError:        "wrong number of arguments",
	SemaNotCallable:          "expression is not callable",
	SemaImmutableAssign:      "assignment to immutable binding",
	SemaInvalidOperator:      "operator not defined for operand types",
	SemaConditionNotBool:     "condition must be bool",
	SemaVoidValue:            "void expression used as a value",
	SemaUnknownType:          "unknown type name",
	SemaBreakOutsideLoop:     "'break' outside of loop",
	SemaContinueOutsideLoop:  "'continue' outside of loop",

	LowerMissingReturn: "missing return in function",

	IOLoadFileError:  "cannot read source file",
	IOWriteFileError: "cannot write output file",

	BackendError: "backend failed",
	LinkError:    "linker failed",

	ProjInvalidManifest: "invalid manifest",
	ProjMissingMain:     "manifest has no main source file",

	ObsTimings: "pipeline timings",
}

// ID renders the banded textual form, e.g. SEM3003.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("LWR%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("BKD%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 8000 && ic < 9000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

// Title returns the short generic description of the code.
func (c Code) Title() string {
	title, ok := codeTitles[c]
	if !ok {
		return codeTitles[UnknownCode]
	}
	return title
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
