package mir

import (
	"flint/internal/ast"
)

func (l *funcLowerer) lowerStmt(stmtID ast.StmtID) {
	stmt := l.builder.Stmts.Get(stmtID)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		block, _ := l.builder.Stmts.Block(stmtID)
		for _, inner := range block.Stmts {
			// Statements after return/break/continue are unreachable;
			// drop them instead of growing a dead block.
			if l.curBlock().Terminated() {
				break
			}
			l.lowerStmt(inner)
		}

	case ast.StmtVar:
		decl, _ := l.builder.Stmts.Var(stmtID)
		sym := l.symbols.VarSymbols[stmtID]
		ty := l.types.Builtins().Error
		if s := l.symbols.Table.Symbol(sym); s != nil {
			ty = s.Type
		}
		local := l.ensureLocal(sym, l.symbols.Table.NameText(decl.Name), ty, decl.NameSpan)
		if decl.Value.IsValid() {
			value := l.lowerExpr(decl.Value)
			l.emit(&Instr{Kind: InstrAssign, Assign: AssignInstr{
				Dst: Place{Local: local},
				Src: RValue{Kind: RValueUse, Use: value},
			}})
		}

	case ast.StmtReturn:
		ret, _ := l.builder.Stmts.Return(stmtID)
		term := Terminator{Kind: TermReturn}
		if ret.Value.IsValid() {
			term.Return = ReturnTerm{HasValue: true, Value: l.lowerExpr(ret.Value)}
		}
		l.setTerm(&term)

	case ast.StmtBreak:
		if len(l.loopStack) > 0 {
			target := l.loopStack[len(l.loopStack)-1].breakTarget
			l.setTerm(&Terminator{Kind: TermGoto, Goto: GotoTerm{Target: target}})
		}

	case ast.StmtContinue:
		if len(l.loopStack) > 0 {
			target := l.loopStack[len(l.loopStack)-1].continueTarget
			l.setTerm(&Terminator{Kind: TermGoto, Goto: GotoTerm{Target: target}})
		}

	case ast.StmtIf:
		l.lowerIf(stmtID)

	case ast.StmtWhile:
		l.lowerWhile(stmtID)

	case ast.StmtExpr:
		exprStmt, _ := l.builder.Stmts.ExprStmt(stmtID)
		l.lowerExpr(exprStmt.Expr)
	}
}

func (l *funcLowerer) lowerIf(stmtID ast.StmtID) {
	ifData, _ := l.builder.Stmts.If(stmtID)
	cond := l.lowerExpr(ifData.Cond)

	thenBB := l.newBlock()
	mergeBB := l.newBlock()
	elseBB := mergeBB
	if ifData.Else.IsValid() {
		elseBB = l.newBlock()
	}
	l.setTerm(&Terminator{Kind: TermIf, If: IfTerm{Cond: cond, Then: thenBB, Else: elseBB}})

	l.startBlock(thenBB)
	l.lowerStmt(ifData.Then)
	l.setTerm(&Terminator{Kind: TermGoto, Goto: GotoTerm{Target: mergeBB}})

	if ifData.Else.IsValid() {
		l.startBlock(elseBB)
		l.lowerStmt(ifData.Else)
		l.setTerm(&Terminator{Kind: TermGoto, Goto: GotoTerm{Target: mergeBB}})
	}

	l.startBlock(mergeBB)
}

func (l *funcLowerer) lowerWhile(stmtID ast.StmtID) {
	while, _ := l.builder.Stmts.While(stmtID)

	headerBB := l.newBlock()
	l.setTerm(&Terminator{Kind: TermGoto, Goto: GotoTerm{Target: headerBB}})

	l.startBlock(headerBB)
	cond := l.lowerExpr(while.Cond)
	bodyBB := l.newBlock()
	exitBB := l.newBlock()
	l.setTerm(&Terminator{Kind: TermIf, If: IfTerm{Cond: cond, Then: bodyBB, Else: exitBB}})

	l.loopStack = append(l.loopStack, loopCtx{breakTarget: exitBB, continueTarget: headerBB})
	l.startBlock(bodyBB)
	l.lowerStmt(while.Body)
	l.setTerm(&Terminator{Kind: TermGoto, Goto: GotoTerm{Target: headerBB}})
	l.loopStack = l.loopStack[:len(l.loopStack)-1]

	l.startBlock(exitBB)
}
