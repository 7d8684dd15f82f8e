package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindVoid is the type of functions that return nothing and of
	// statements used in expression position.
	KindVoid
	KindBool
	KindInt
	KindFloat
	KindString
	// KindFn is a function signature; metadata lives in FnInfo.
	KindFn
	// KindError poisons expressions whose type could not be determined.
	// It is compatible with everything so one mistake reports once.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindFn:
		return "fn"
	case KindError:
		return "<error>"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type. Payload indexes
// kind-specific metadata (FnInfo for KindFn).
type Type struct {
	Kind    Kind
	Payload uint32
}

// IsNumeric reports whether the kind supports arithmetic.
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindFloat
}

// IsOrdered reports whether the kind supports < <= > >=.
func (k Kind) IsOrdered() bool {
	return k == KindInt || k == KindFloat
}

// IsEquatable reports whether the kind supports == and !=.
func (k Kind) IsEquatable() bool {
	switch k {
	case KindBool, KindInt, KindFloat, KindString:
		return true
	default:
		return false
	}
}
