package mir

import (
	"flint/internal/source"
	"flint/internal/symbols"
	"flint/internal/types"
)

type FuncID int32
type BlockID int32
type LocalID int32

const (
	NoFuncID  FuncID  = -1
	NoBlockID BlockID = -1
	NoLocalID LocalID = -1
)

// Local is one stack slot of a function: a parameter, a user variable or
// a compiler temporary. Parameters occupy the first ParamCount slots.
type Local struct {
	Sym  symbols.SymbolID // NoSymbolID for temporaries
	Type types.TypeID
	Name string
	Span source.Span
}

// Place is an assignable location. The language has no projections, so a
// place is always a whole local.
type Place struct {
	Local LocalID
}

func (p Place) IsValid() bool { return p.Local != NoLocalID }

// OperandKind distinguishes operand types.
type OperandKind uint8

const (
	// OperandConst is an immediate constant.
	OperandConst OperandKind = iota
	// OperandCopy reads a local.
	OperandCopy
)

// Operand is a value read by an instruction.
type Operand struct {
	Kind OperandKind
	Type types.TypeID

	Const Const
	Place Place
}

// ConstKind distinguishes constant kinds.
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstBool
	ConstString
	// ConstVoid stands in for the absent result of a void call used in
	// statement position; it never reaches an instruction operand.
	ConstVoid
)

// Const is a decoded literal value. Text preserves the raw source
// spelling of numeric constants for the IR dump.
type Const struct {
	Kind ConstKind
	Type types.TypeID

	Text        string
	IntValue    int64
	FloatValue  float64
	BoolValue   bool
	StringValue string
}
