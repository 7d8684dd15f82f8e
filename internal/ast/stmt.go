package ast

import (
	"flint/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtVar
	StmtReturn
	StmtBreak
	StmtContinue
	StmtIf
	StmtWhile
	StmtExpr
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// StmtBlockData is the payload of a StmtBlock node.
type StmtBlockData struct {
	Stmts []StmtID
}

// StmtVarData is the payload of a StmtVar node. Type is NoTypeID when the
// annotation is omitted and the type is inferred from the initializer.
// Mutable distinguishes 'var' from 'let'.
type StmtVarData struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
	Value    ExprID
	Mutable  bool
}

// StmtReturnData is the payload of a StmtReturn node. Value is NoExprID for
// a bare 'return;'.
type StmtReturnData struct {
	Value ExprID
}

// StmtIfData is the payload of a StmtIf node. Else is NoStmtID when absent;
// otherwise it is either a block or another if statement (else-if chain).
type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

// StmtWhileData is the payload of a StmtWhile node.
type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

// StmtExprData is the payload of a StmtExpr node.
type StmtExprData struct {
	Expr ExprID
}

// Stmts manages allocation of statements.
type Stmts struct {
	Arena     *Arena[Stmt]
	Blocks    *Arena[StmtBlockData]
	Vars      *Arena[StmtVarData]
	Returns   *Arena[StmtReturnData]
	Ifs       *Arena[StmtIfData]
	Whiles    *Arena[StmtWhileData]
	ExprStmts *Arena[StmtExprData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		Blocks:    NewArena[StmtBlockData](capHint),
		Vars:      NewArena[StmtVarData](capHint),
		Returns:   NewArena[StmtReturnData](capHint),
		Ifs:       NewArena[StmtIfData](capHint),
		Whiles:    NewArena[StmtWhileData](capHint),
		ExprStmts: NewArena[StmtExprData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewBlock creates a new block statement.
func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	payload := s.Blocks.Allocate(StmtBlockData{
		Stmts: append([]StmtID(nil), stmts...),
	})
	return s.new(StmtBlock, span, PayloadID(payload))
}

// Block returns the block data for the given statement ID.
func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtBlock {
		return nil, false
	}
	return s.Blocks.Get(uint32(stmt.Payload)), true
}

// NewVar creates a new variable declaration statement.
func (s *Stmts) NewVar(span source.Span, name source.StringID, nameSpan source.Span, typ TypeID, value ExprID, mutable bool) StmtID {
	payload := s.Vars.Allocate(StmtVarData{
		Name:     name,
		NameSpan: nameSpan,
		Type:     typ,
		Value:    value,
		Mutable:  mutable,
	})
	return s.new(StmtVar, span, PayloadID(payload))
}

// Var returns the variable declaration data for the given statement ID.
func (s *Stmts) Var(id StmtID) (*StmtVarData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtVar {
		return nil, false
	}
	return s.Vars.Get(uint32(stmt.Payload)), true
}

// NewReturn creates a new return statement.
func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Value: value})
	return s.new(StmtReturn, span, PayloadID(payload))
}

// Return returns the return data for the given statement ID.
func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(stmt.Payload)), true
}

// NewBreak creates a new break statement.
func (s *Stmts) NewBreak(span source.Span) StmtID {
	return s.new(StmtBreak, span, NoPayloadID)
}

// NewContinue creates a new continue statement.
func (s *Stmts) NewContinue(span source.Span) StmtID {
	return s.new(StmtContinue, span, NoPayloadID)
}

// NewIf creates a new if statement.
func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	payload := s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, PayloadID(payload))
}

// If returns the if data for the given statement ID.
func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(stmt.Payload)), true
}

// NewWhile creates a new while statement.
func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(payload))
}

// While returns the while data for the given statement ID.
func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtWhile {
		return nil, false
	}
	return s.Whiles.Get(uint32(stmt.Payload)), true
}

// NewExprStmt creates a new expression statement.
func (s *Stmts) NewExprStmt(span source.Span, expr ExprID) StmtID {
	payload := s.ExprStmts.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

// ExprStmt returns the expression statement data for the given statement ID.
func (s *Stmts) ExprStmt(id StmtID) (*StmtExprData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.ExprStmts.Get(uint32(stmt.Payload)), true
}
