package mir

import (
	"errors"
	"fmt"

	"flint/internal/types"
)

// Validate checks MIR module invariants: every block terminated, branch
// targets in range, operands referencing existing locals, the entry block
// free of predecessors, and return terminators matching the function's
// result type.
func Validate(m *Module, typesIn *types.Interner) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, f := range m.Funcs {
		if f == nil {
			continue
		}
		if err := validateFunc(f, typesIn); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

func validateFunc(f *Func, typesIn *types.Interner) error {
	var errs []error
	if err := validateBlocksTerminated(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateBlockTargets(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateLocals(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateEntry(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateReturns(f, typesIn); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func validateBlocksTerminated(f *Func) error {
	var errs []error
	for i := range f.Blocks {
		if f.Blocks[i].Term.Kind == TermNone {
			errs = append(errs, fmt.Errorf("bb%d: unterminated block", i))
		}
	}
	return errors.Join(errs...)
}

func validateBlockTargets(f *Func) error {
	var errs []error
	exists := func(id BlockID) bool {
		return id >= 0 && int(id) < len(f.Blocks)
	}
	for i := range f.Blocks {
		switch term := &f.Blocks[i].Term; term.Kind {
		case TermGoto:
			if !exists(term.Goto.Target) {
				errs = append(errs, fmt.Errorf("bb%d: goto target bb%d does not exist", i, term.Goto.Target))
			}
		case TermIf:
			if !exists(term.If.Then) {
				errs = append(errs, fmt.Errorf("bb%d: then target bb%d does not exist", i, term.If.Then))
			}
			if !exists(term.If.Else) {
				errs = append(errs, fmt.Errorf("bb%d: else target bb%d does not exist", i, term.If.Else))
			}
		}
	}
	return errors.Join(errs...)
}

func validateLocals(f *Func) error {
	var errs []error
	checkLocal := func(bb int, id LocalID) {
		if id < 0 || int(id) >= len(f.Locals) {
			errs = append(errs, fmt.Errorf("bb%d: local L%d does not exist", bb, id))
		}
	}
	checkOperand := func(bb int, op *Operand) {
		if op.Kind == OperandCopy {
			checkLocal(bb, op.Place.Local)
		}
	}
	for i := range f.Blocks {
		bb := &f.Blocks[i]
		for j := range bb.Instrs {
			ins := &bb.Instrs[j]
			switch ins.Kind {
			case InstrAssign:
				checkLocal(i, ins.Assign.Dst.Local)
				switch src := &ins.Assign.Src; src.Kind {
				case RValueUse:
					checkOperand(i, &src.Use)
				case RValueUnaryOp:
					checkOperand(i, &src.Unary.Operand)
				case RValueBinaryOp:
					checkOperand(i, &src.Binary.Left)
					checkOperand(i, &src.Binary.Right)
				}
			case InstrCall:
				if ins.Call.HasDst {
					checkLocal(i, ins.Call.Dst.Local)
				}
				for k := range ins.Call.Args {
					checkOperand(i, &ins.Call.Args[k])
				}
			}
		}
		switch term := &bb.Term; term.Kind {
		case TermReturn:
			if term.Return.HasValue {
				checkOperand(i, &term.Return.Value)
			}
		case TermIf:
			checkOperand(i, &term.If.Cond)
		}
	}
	return errors.Join(errs...)
}

func validateEntry(f *Func) error {
	var errs []error
	for i := range f.Blocks {
		switch term := &f.Blocks[i].Term; term.Kind {
		case TermGoto:
			if term.Goto.Target == f.Entry {
				errs = append(errs, fmt.Errorf("bb%d: entry block has a predecessor", i))
			}
		case TermIf:
			if term.If.Then == f.Entry || term.If.Else == f.Entry {
				errs = append(errs, fmt.Errorf("bb%d: entry block has a predecessor", i))
			}
		}
	}
	return errors.Join(errs...)
}

func validateReturns(f *Func, typesIn *types.Interner) error {
	if typesIn == nil {
		return nil
	}
	isVoid := typesIn.Kind(f.Result) == types.KindVoid
	var errs []error
	for i := range f.Blocks {
		term := &f.Blocks[i].Term
		if term.Kind != TermReturn {
			continue
		}
		if isVoid && term.Return.HasValue {
			errs = append(errs, fmt.Errorf("bb%d: void function returns a value", i))
		}
		if !isVoid && !term.Return.HasValue {
			errs = append(errs, fmt.Errorf("bb%d: missing return value", i))
		}
	}
	return errors.Join(errs...)
}
