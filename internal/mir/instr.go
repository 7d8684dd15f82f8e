package mir

import (
	"flint/internal/ast"
	"flint/internal/symbols"
)

// InstrKind enumerates instruction kinds in MIR.
type InstrKind uint8

const (
	// InstrAssign stores an RValue into a place.
	InstrAssign InstrKind = iota
	// InstrCall invokes a function, optionally storing its result.
	InstrCall
)

// Instr is one non-terminator instruction.
type Instr struct {
	Kind InstrKind

	Assign AssignInstr
	Call   CallInstr
}

// AssignInstr stores Src into Dst.
type AssignInstr struct {
	Dst Place
	Src RValue
}

// Callee identifies a call target. Every call site is direct; the
// language has no function values. Builtin marks prelude functions the
// backend maps onto runtime entry points.
type Callee struct {
	Sym     symbols.SymbolID
	Name    string
	Builtin symbols.Builtin
}

// CallInstr invokes Callee with Args. HasDst is false for void calls.
type CallInstr struct {
	HasDst bool
	Dst    Place
	Callee Callee
	Args   []Operand
}

// RValueKind distinguishes right-hand value kinds.
type RValueKind uint8

const (
	// RValueUse passes an operand through unchanged.
	RValueUse RValueKind = iota
	// RValueUnaryOp applies a unary operator.
	RValueUnaryOp
	// RValueBinaryOp applies a binary operator.
	RValueBinaryOp
)

// RValue is the right-hand side of an assignment.
type RValue struct {
	Kind RValueKind

	Use    Operand
	Unary  UnaryOp
	Binary BinaryOp
}

// UnaryOp applies Op to Operand.
type UnaryOp struct {
	Op      ast.ExprUnaryOp
	Operand Operand
}

// BinaryOp applies Op to Left and Right. Logical operators never appear
// here; lowering turns them into control flow for short-circuiting.
type BinaryOp struct {
	Op    ast.ExprBinaryOp
	Left  Operand
	Right Operand
}
