package mir

import (
	"strconv"
	"strings"

	"flint/internal/ast"
	"flint/internal/types"
)

func (l *funcLowerer) exprType(exprID ast.ExprID) types.TypeID {
	if ty, ok := l.sema.ExprTypes[exprID]; ok {
		return ty
	}
	return l.types.Builtins().Error
}

// lowerExpr emits the instructions computing one expression and returns
// the operand holding its value. Void expressions return a ConstVoid
// operand that no caller stores.
func (l *funcLowerer) lowerExpr(exprID ast.ExprID) Operand {
	expr := l.builder.Exprs.Get(exprID)
	if expr == nil {
		return l.voidOperand()
	}
	switch expr.Kind {
	case ast.ExprIdent:
		return l.lowerIdent(exprID)
	case ast.ExprLit:
		return l.lowerLiteral(exprID)
	case ast.ExprBinary:
		bin, _ := l.builder.Exprs.Binary(exprID)
		switch {
		case bin.Op == ast.ExprBinaryAssign:
			return l.lowerAssign(exprID, bin)
		case bin.Op.IsLogical():
			return l.lowerShortCircuit(exprID, bin)
		}
		return l.lowerBinary(exprID, bin)
	case ast.ExprUnary:
		return l.lowerUnary(exprID)
	case ast.ExprCall:
		return l.lowerCall(exprID)
	case ast.ExprGroup:
		group, _ := l.builder.Exprs.Group(exprID)
		return l.lowerExpr(group.Inner)
	}
	return l.voidOperand()
}

func (l *funcLowerer) lowerIdent(exprID ast.ExprID) Operand {
	sym := l.symbols.Bindings[exprID]
	local, ok := l.symToLocal[sym]
	if !ok {
		return l.voidOperand()
	}
	return Operand{
		Kind:  OperandCopy,
		Type:  l.exprType(exprID),
		Place: Place{Local: local},
	}
}

func (l *funcLowerer) lowerLiteral(exprID ast.ExprID) Operand {
	lit, _ := l.builder.Exprs.Literal(exprID)
	ty := l.exprType(exprID)
	text, _ := l.symbols.Table.Strings.Lookup(lit.Value)
	c := Const{Type: ty, Text: text}
	switch lit.Kind {
	case ast.LitInt:
		c.Kind = ConstInt
		c.IntValue, _ = strconv.ParseInt(text, 10, 64)
	case ast.LitFloat:
		c.Kind = ConstFloat
		c.FloatValue, _ = strconv.ParseFloat(text, 64)
	case ast.LitBool:
		c.Kind = ConstBool
		c.BoolValue = text == "true"
	case ast.LitString:
		c.Kind = ConstString
		c.StringValue = decodeString(text)
	}
	return Operand{Kind: OperandConst, Type: ty, Const: c}
}

func (l *funcLowerer) lowerAssign(exprID ast.ExprID, bin *ast.ExprBinaryData) Operand {
	value := l.lowerExpr(bin.Right)
	sym := l.symbols.Bindings[bin.Left]
	local, ok := l.symToLocal[sym]
	if !ok {
		return l.voidOperand()
	}
	l.emit(&Instr{Kind: InstrAssign, Assign: AssignInstr{
		Dst: Place{Local: local},
		Src: RValue{Kind: RValueUse, Use: value},
	}})
	return Operand{Kind: OperandCopy, Type: l.exprType(exprID), Place: Place{Local: local}}
}

func (l *funcLowerer) lowerBinary(exprID ast.ExprID, bin *ast.ExprBinaryData) Operand {
	left := l.lowerExpr(bin.Left)
	right := l.lowerExpr(bin.Right)
	ty := l.exprType(exprID)
	span := l.builder.Exprs.Get(exprID).Span
	tmp := l.newTemp(ty, "bin", span)
	l.emit(&Instr{Kind: InstrAssign, Assign: AssignInstr{
		Dst: Place{Local: tmp},
		Src: RValue{Kind: RValueBinaryOp, Binary: BinaryOp{Op: bin.Op, Left: left, Right: right}},
	}})
	return Operand{Kind: OperandCopy, Type: ty, Place: Place{Local: tmp}}
}

// lowerShortCircuit turns && and || into control flow so the right
// operand only evaluates when it must.
func (l *funcLowerer) lowerShortCircuit(exprID ast.ExprID, bin *ast.ExprBinaryData) Operand {
	boolTy := l.types.Builtins().Bool
	span := l.builder.Exprs.Get(exprID).Span
	tmp := l.newTemp(boolTy, "sc", span)

	left := l.lowerExpr(bin.Left)
	rhsBB := l.newBlock()
	shortBB := l.newBlock()
	mergeBB := l.newBlock()

	term := IfTerm{Cond: left, Then: rhsBB, Else: shortBB}
	shortValue := false
	if bin.Op == ast.ExprBinaryLogicalOr {
		term = IfTerm{Cond: left, Then: shortBB, Else: rhsBB}
		shortValue = true
	}
	l.setTerm(&Terminator{Kind: TermIf, If: term})

	l.startBlock(rhsBB)
	right := l.lowerExpr(bin.Right)
	l.emit(&Instr{Kind: InstrAssign, Assign: AssignInstr{
		Dst: Place{Local: tmp},
		Src: RValue{Kind: RValueUse, Use: right},
	}})
	l.setTerm(&Terminator{Kind: TermGoto, Goto: GotoTerm{Target: mergeBB}})

	l.startBlock(shortBB)
	l.emit(&Instr{Kind: InstrAssign, Assign: AssignInstr{
		Dst: Place{Local: tmp},
		Src: RValue{Kind: RValueUse, Use: Operand{
			Kind:  OperandConst,
			Type:  boolTy,
			Const: Const{Kind: ConstBool, Type: boolTy, BoolValue: shortValue, Text: strconv.FormatBool(shortValue)},
		}},
	}})
	l.setTerm(&Terminator{Kind: TermGoto, Goto: GotoTerm{Target: mergeBB}})

	l.startBlock(mergeBB)
	return Operand{Kind: OperandCopy, Type: boolTy, Place: Place{Local: tmp}}
}

func (l *funcLowerer) lowerUnary(exprID ast.ExprID) Operand {
	un, _ := l.builder.Exprs.Unary(exprID)
	operand := l.lowerExpr(un.Operand)
	ty := l.exprType(exprID)
	span := l.builder.Exprs.Get(exprID).Span
	tmp := l.newTemp(ty, "un", span)
	l.emit(&Instr{Kind: InstrAssign, Assign: AssignInstr{
		Dst: Place{Local: tmp},
		Src: RValue{Kind: RValueUnaryOp, Unary: UnaryOp{Op: un.Op, Operand: operand}},
	}})
	return Operand{Kind: OperandCopy, Type: ty, Place: Place{Local: tmp}}
}

func (l *funcLowerer) lowerCall(exprID ast.ExprID) Operand {
	call, _ := l.builder.Exprs.Call(exprID)
	args := make([]Operand, 0, len(call.Args))
	for _, arg := range call.Args {
		args = append(args, l.lowerExpr(arg))
	}

	callee := l.calleeFor(call.Callee)
	resultTy := l.exprType(exprID)
	ins := Instr{Kind: InstrCall, Call: CallInstr{Callee: callee, Args: args}}

	if l.types.Kind(resultTy) == types.KindVoid {
		l.emit(&ins)
		return l.voidOperand()
	}
	span := l.builder.Exprs.Get(exprID).Span
	tmp := l.newTemp(resultTy, "call", span)
	ins.Call.HasDst = true
	ins.Call.Dst = Place{Local: tmp}
	l.emit(&ins)
	return Operand{Kind: OperandCopy, Type: resultTy, Place: Place{Local: tmp}}
}

func (l *funcLowerer) calleeFor(calleeExpr ast.ExprID) Callee {
	for {
		expr := l.builder.Exprs.Get(calleeExpr)
		if expr == nil || expr.Kind != ast.ExprGroup {
			break
		}
		group, _ := l.builder.Exprs.Group(calleeExpr)
		calleeExpr = group.Inner
	}
	symID := l.symbols.Bindings[calleeExpr]
	out := Callee{Sym: symID}
	if sym := l.symbols.Table.Symbol(symID); sym != nil {
		out.Name = l.symbols.Table.NameText(sym.Name)
		out.Builtin = sym.Builtin
	}
	return out
}

func (l *funcLowerer) voidOperand() Operand {
	void := l.types.Builtins().Void
	return Operand{
		Kind:  OperandConst,
		Type:  void,
		Const: Const{Kind: ConstVoid, Type: void},
	}
}

// decodeString converts raw source text of a string literal, quotes and
// escapes included, into its value.
func decodeString(raw string) string {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if ch != '\\' || i+1 >= len(raw) {
			sb.WriteByte(ch)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case '0':
			sb.WriteByte(0)
		default:
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}
