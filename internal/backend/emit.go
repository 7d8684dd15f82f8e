// Package backend turns a validated MIR module into an executable. It
// emits portable C11 from the IR and drives the system C compiler for
// code generation and linking; the native runtime providing print and
// input ships embedded in the binary.
package backend

import (
	"fmt"
	"strings"

	"flint/internal/mir"
	"flint/internal/symbols"
	"flint/internal/types"
)

// EmitModule renders a MIR module as one C translation unit. Every user
// function gets an fl_ prefix so names never collide with the C library;
// extern declarations keep their source names, which is the linker
// contract with the runtime.
func EmitModule(mod *mir.Module, typesIn *types.Interner) (string, error) {
	if mod == nil || typesIn == nil {
		return "", fmt.Errorf("backend: missing module or type information")
	}
	e := &emitter{mod: mod, types: typesIn}
	return e.emit()
}

type emitter struct {
	mod   *mir.Module
	types *types.Interner
	buf   strings.Builder
}

func (e *emitter) emit() (string, error) {
	e.printf("#include \"flint_runtime.h\"\n\n")

	for _, ext := range e.mod.Externs {
		sig, err := e.externSig(&ext)
		if err != nil {
			return "", err
		}
		e.printf("extern %s;\n", sig)
	}
	if len(e.mod.Externs) > 0 {
		e.printf("\n")
	}

	// Forward declarations so definition order never matters.
	for _, f := range e.mod.Funcs {
		sig, err := e.funcSig(f)
		if err != nil {
			return "", err
		}
		e.printf("static %s;\n", sig)
	}
	e.printf("\n")

	hasMain := false
	for _, f := range e.mod.Funcs {
		if f.Name == "main" {
			hasMain = true
		}
		if err := e.emitFunc(f); err != nil {
			return "", err
		}
	}
	if !hasMain {
		return "", fmt.Errorf("backend: module has no 'main' function")
	}

	e.printf("int main(void) {\n\tfl_main();\n\treturn 0;\n}\n")
	return e.buf.String(), nil
}

func (e *emitter) printf(format string, args ...any) {
	fmt.Fprintf(&e.buf, format, args...)
}

func (e *emitter) cType(id types.TypeID) (string, error) {
	switch e.types.Kind(id) {
	case types.KindVoid:
		return "void", nil
	case types.KindInt:
		return "int64_t", nil
	case types.KindFloat:
		return "double", nil
	case types.KindBool:
		return "bool", nil
	case types.KindString:
		return "const char*", nil
	}
	return "", fmt.Errorf("backend: type %s cannot be emitted", e.types.String(id))
}

func (e *emitter) funcSig(f *mir.Func) (string, error) {
	ret, err := e.cType(f.Result)
	if err != nil {
		return "", fmt.Errorf("function %s: %w", f.Name, err)
	}
	params := make([]string, 0, f.ParamCount)
	for i := 0; i < f.ParamCount && i < len(f.Locals); i++ {
		ct, err := e.cType(f.Locals[i].Type)
		if err != nil {
			return "", fmt.Errorf("function %s: %w", f.Name, err)
		}
		params = append(params, fmt.Sprintf("%s L%d", ct, i))
	}
	if len(params) == 0 {
		return fmt.Sprintf("%s fl_%s(void)", ret, f.Name), nil
	}
	return fmt.Sprintf("%s fl_%s(%s)", ret, f.Name, strings.Join(params, ", ")), nil
}

func (e *emitter) externSig(ext *mir.Extern) (string, error) {
	ret, err := e.cType(ext.Result)
	if err != nil {
		return "", fmt.Errorf("extern %s: %w", ext.Name, err)
	}
	params := make([]string, 0, len(ext.Params))
	for _, p := range ext.Params {
		ct, err := e.cType(p)
		if err != nil {
			return "", fmt.Errorf("extern %s: %w", ext.Name, err)
		}
		params = append(params, ct)
	}
	if len(params) == 0 {
		return fmt.Sprintf("%s %s(void)", ret, ext.Name), nil
	}
	return fmt.Sprintf("%s %s(%s)", ret, ext.Name, strings.Join(params, ", ")), nil
}

func (e *emitter) emitFunc(f *mir.Func) error {
	sig, err := e.funcSig(f)
	if err != nil {
		return err
	}
	e.printf("static %s {\n", sig)

	for i := f.ParamCount; i < len(f.Locals); i++ {
		ct, err := e.cType(f.Locals[i].Type)
		if err != nil {
			return fmt.Errorf("function %s: %w", f.Name, err)
		}
		e.printf("\t%s L%d;\n", ct, i)
	}

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		e.printf("bb%d:;\n", bb.ID)
		for j := range bb.Instrs {
			line, err := e.emitInstr(&bb.Instrs[j])
			if err != nil {
				return fmt.Errorf("function %s bb%d: %w", f.Name, bb.ID, err)
			}
			e.printf("\t%s\n", line)
		}
		line, err := e.emitTerm(&bb.Term)
		if err != nil {
			return fmt.Errorf("function %s bb%d: %w", f.Name, bb.ID, err)
		}
		e.printf("\t%s\n", line)
	}
	e.printf("}\n\n")
	return nil
}

func (e *emitter) emitInstr(ins *mir.Instr) (string, error) {
	switch ins.Kind {
	case mir.InstrAssign:
		src, err := e.emitRValue(&ins.Assign.Src)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("L%d = %s;", ins.Assign.Dst.Local, src), nil
	case mir.InstrCall:
		return e.emitCall(&ins.Call)
	}
	return "", fmt.Errorf("unknown instruction kind %d", ins.Kind)
}

func (e *emitter) emitCall(call *mir.CallInstr) (string, error) {
	name, err := e.calleeName(call)
	if err != nil {
		return "", err
	}
	args := make([]string, 0, len(call.Args))
	for i := range call.Args {
		arg, err := e.emitOperand(&call.Args[i])
		if err != nil {
			return "", err
		}
		args = append(args, arg)
	}
	expr := fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
	if call.HasDst {
		return fmt.Sprintf("L%d = %s;", call.Dst.Local, expr), nil
	}
	return expr + ";", nil
}

func (e *emitter) calleeName(call *mir.CallInstr) (string, error) {
	switch call.Callee.Builtin {
	case symbols.BuiltinPrint:
		if len(call.Args) != 1 {
			return "", fmt.Errorf("print call with %d arguments", len(call.Args))
		}
		switch e.types.Kind(call.Args[0].Type) {
		case types.KindInt:
			return "flint_print_int", nil
		case types.KindFloat:
			return "flint_print_float", nil
		case types.KindBool:
			return "flint_print_bool", nil
		case types.KindString:
			return "flint_print_str", nil
		}
		return "", fmt.Errorf("print argument of type %s", e.types.String(call.Args[0].Type))
	case symbols.BuiltinInput:
		return "flint_input", nil
	}
	if _, isLocal := e.mod.FuncBySym[call.Callee.Sym]; isLocal {
		return "fl_" + call.Callee.Name, nil
	}
	return call.Callee.Name, nil
}

func (e *emitter) emitTerm(t *mir.Terminator) (string, error) {
	switch t.Kind {
	case mir.TermReturn:
		if !t.Return.HasValue {
			return "return;", nil
		}
		value, err := e.emitOperand(&t.Return.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("return %s;", value), nil
	case mir.TermGoto:
		return fmt.Sprintf("goto bb%d;", t.Goto.Target), nil
	case mir.TermIf:
		cond, err := e.emitOperand(&t.If.Cond)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("if (%s) goto bb%d; else goto bb%d;", cond, t.If.Then, t.If.Else), nil
	case mir.TermUnreachable:
		return "flint_unreachable();", nil
	}
	return "", fmt.Errorf("unknown terminator kind %d", t.Kind)
}

func (e *emitter) emitRValue(rv *mir.RValue) (string, error) {
	switch rv.Kind {
	case mir.RValueUse:
		return e.emitOperand(&rv.Use)
	case mir.RValueUnaryOp:
		operand, err := e.emitOperand(&rv.Unary.Operand)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(%s)", rv.Unary.Op, operand), nil
	case mir.RValueBinaryOp:
		return e.emitBinary(&rv.Binary)
	}
	return "", fmt.Errorf("unknown rvalue kind %d", rv.Kind)
}

func (e *emitter) emitBinary(op *mir.BinaryOp) (string, error) {
	left, err := e.emitOperand(&op.Left)
	if err != nil {
		return "", err
	}
	right, err := e.emitOperand(&op.Right)
	if err != nil {
		return "", err
	}
	// String comparison goes through the runtime; C compares pointers.
	if e.types.Kind(op.Left.Type) == types.KindString {
		switch op.Op.String() {
		case "==":
			return fmt.Sprintf("flint_str_eq(%s, %s)", left, right), nil
		case "!=":
			return fmt.Sprintf("!flint_str_eq(%s, %s)", left, right), nil
		}
		return "", fmt.Errorf("operator %s on strings", op.Op)
	}
	return fmt.Sprintf("(%s %s %s)", left, op.Op, right), nil
}

func (e *emitter) emitOperand(op *mir.Operand) (string, error) {
	switch op.Kind {
	case mir.OperandCopy:
		return fmt.Sprintf("L%d", op.Place.Local), nil
	case mir.OperandConst:
		return e.emitConst(&op.Const)
	}
	return "", fmt.Errorf("unknown operand kind %d", op.Kind)
}

func (e *emitter) emitConst(c *mir.Const) (string, error) {
	switch c.Kind {
	case mir.ConstInt:
		return fmt.Sprintf("INT64_C(%d)", c.IntValue), nil
	case mir.ConstFloat:
		if c.Text != "" {
			return c.Text, nil
		}
		return fmt.Sprintf("%g", c.FloatValue), nil
	case mir.ConstBool:
		if c.BoolValue {
			return "true", nil
		}
		return "false", nil
	case mir.ConstString:
		return cQuote(c.StringValue), nil
	}
	return "", fmt.Errorf("unknown constant kind %d", c.Kind)
}

// cQuote renders a Go string as a C string literal.
func cQuote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		default:
			if ch < 0x20 || ch == 0x7f {
				// Fixed-width octal: C stops an octal escape after three
				// digits, so a following '0'..'9' cannot extend it the way
				// it would extend \0 or a hex escape.
				fmt.Fprintf(&sb, `\%03o`, ch)
			} else {
				sb.WriteByte(ch)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
