package types

import "flint/internal/ast"

// BinaryResult returns the result type of applying op to operands of the
// given types, and whether the combination is allowed. An Error operand
// poisons the result without being reported as a second failure.
// Assignment is not handled here; the checker owns its rules.
func (in *Interner) BinaryResult(op ast.ExprBinaryOp, left, right TypeID) (TypeID, bool) {
	b := in.builtins
	if left == b.Error || right == b.Error {
		return b.Error, true
	}

	lk := in.Kind(left)
	rk := in.Kind(right)

	switch {
	case op.IsArithmetic():
		if left != right || !lk.IsNumeric() {
			return NoTypeID, false
		}
		// modulo is integral only
		if op == ast.ExprBinaryMod && lk != KindInt {
			return NoTypeID, false
		}
		return left, true

	case op.IsLogical():
		if lk != KindBool || rk != KindBool {
			return NoTypeID, false
		}
		return b.Bool, true

	case op == ast.ExprBinaryEq || op == ast.ExprBinaryNotEq:
		if left != right || !lk.IsEquatable() {
			return NoTypeID, false
		}
		return b.Bool, true

	case op.IsComparison():
		if left != right || !lk.IsOrdered() {
			return NoTypeID, false
		}
		return b.Bool, true
	}

	return NoTypeID, false
}

// UnaryResult returns the result type of applying op to an operand of the
// given type, and whether the combination is allowed.
func (in *Interner) UnaryResult(op ast.ExprUnaryOp, operand TypeID) (TypeID, bool) {
	b := in.builtins
	if operand == b.Error {
		return b.Error, true
	}

	switch op {
	case ast.ExprUnaryNeg:
		if !in.Kind(operand).IsNumeric() {
			return NoTypeID, false
		}
		return operand, true
	case ast.ExprUnaryNot:
		if in.Kind(operand) != KindBool {
			return NoTypeID, false
		}
		return b.Bool, true
	}
	return NoTypeID, false
}
