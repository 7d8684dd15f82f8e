package mir

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"flint/internal/types"
)

// DumpModule writes a human-readable representation of a MIR module.
// Output is deterministic: externs and functions keep source order.
func DumpModule(w io.Writer, m *Module, typesIn *types.Interner) error {
	if w == nil || m == nil {
		return nil
	}
	for _, ext := range m.Externs {
		params := make([]string, 0, len(ext.Params))
		for _, p := range ext.Params {
			params = append(params, typeStr(typesIn, p))
		}
		if _, err := fmt.Fprintf(w, "extern fn %s(%s) -> %s\n",
			ext.Name, strings.Join(params, ", "), typeStr(typesIn, ext.Result)); err != nil {
			return err
		}
	}
	for _, f := range m.Funcs {
		if err := dumpFunc(w, f, typesIn); err != nil {
			return err
		}
	}
	return nil
}

func dumpFunc(w io.Writer, f *Func, typesIn *types.Interner) error {
	if w == nil || f == nil {
		return nil
	}
	fmt.Fprintf(w, "\nfn %s -> %s:\n", f.Name, typeStr(typesIn, f.Result))

	fmt.Fprintf(w, "  locals:\n")
	for i := range f.Locals {
		l := f.Locals[i]
		name := l.Name
		if name == "" {
			name = "_"
		}
		role := ""
		if i < f.ParamCount {
			role = " param"
		}
		fmt.Fprintf(w, "    L%d: %s%s name=%s\n", i, typeStr(typesIn, l.Type), role, name)
	}

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		fmt.Fprintf(w, "  bb%d:\n", bb.ID)
		for j := range bb.Instrs {
			fmt.Fprintf(w, "    %s\n", formatInstr(typesIn, &bb.Instrs[j]))
		}
		fmt.Fprintf(w, "    %s\n", formatTerm(typesIn, &bb.Term))
	}
	return nil
}

func formatInstr(typesIn *types.Interner, ins *Instr) string {
	if ins == nil {
		return "<instr?>"
	}
	switch ins.Kind {
	case InstrAssign:
		return fmt.Sprintf("%s = %s", formatPlace(ins.Assign.Dst), formatRValue(typesIn, &ins.Assign.Src))
	case InstrCall:
		dst := ""
		if ins.Call.HasDst {
			dst = formatPlace(ins.Call.Dst) + " = "
		}
		args := make([]string, 0, len(ins.Call.Args))
		for i := range ins.Call.Args {
			args = append(args, formatOperand(typesIn, &ins.Call.Args[i]))
		}
		return fmt.Sprintf("%scall %s(%s)", dst, ins.Call.Callee.Name, strings.Join(args, ", "))
	}
	return "<instr?>"
}

func formatTerm(typesIn *types.Interner, t *Terminator) string {
	if t == nil {
		return "<term?>"
	}
	switch t.Kind {
	case TermReturn:
		if t.Return.HasValue {
			return "return " + formatOperand(typesIn, &t.Return.Value)
		}
		return "return"
	case TermGoto:
		return fmt.Sprintf("goto bb%d", t.Goto.Target)
	case TermIf:
		return fmt.Sprintf("if %s then bb%d else bb%d",
			formatOperand(typesIn, &t.If.Cond), t.If.Then, t.If.Else)
	case TermUnreachable:
		return "unreachable"
	}
	return "<term?>"
}

func formatRValue(typesIn *types.Interner, rv *RValue) string {
	if rv == nil {
		return "<rvalue?>"
	}
	switch rv.Kind {
	case RValueUse:
		return formatOperand(typesIn, &rv.Use)
	case RValueUnaryOp:
		return fmt.Sprintf("%s%s", rv.Unary.Op, formatOperand(typesIn, &rv.Unary.Operand))
	case RValueBinaryOp:
		return fmt.Sprintf("%s %s %s",
			formatOperand(typesIn, &rv.Binary.Left), rv.Binary.Op, formatOperand(typesIn, &rv.Binary.Right))
	}
	return "<rvalue?>"
}

func formatOperand(typesIn *types.Interner, op *Operand) string {
	if op == nil {
		return "<operand?>"
	}
	switch op.Kind {
	case OperandConst:
		return fmt.Sprintf("const %s: %s", formatConst(&op.Const), typeStr(typesIn, op.Type))
	case OperandCopy:
		return fmt.Sprintf("copy %s: %s", formatPlace(op.Place), typeStr(typesIn, op.Type))
	}
	return "<operand?>"
}

func formatConst(c *Const) string {
	switch c.Kind {
	case ConstInt, ConstFloat:
		if c.Text != "" {
			return c.Text
		}
		if c.Kind == ConstInt {
			return strconv.FormatInt(c.IntValue, 10)
		}
		return strconv.FormatFloat(c.FloatValue, 'g', -1, 64)
	case ConstBool:
		return strconv.FormatBool(c.BoolValue)
	case ConstString:
		return strconv.Quote(c.StringValue)
	case ConstVoid:
		return "void"
	}
	return "<const?>"
}

func formatPlace(p Place) string {
	return fmt.Sprintf("L%d", p.Local)
}

func typeStr(typesIn *types.Interner, id types.TypeID) string {
	if typesIn == nil {
		return fmt.Sprintf("T%d", id)
	}
	return typesIn.String(id)
}
