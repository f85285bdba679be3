package ast

import (
	"stellar/internal/source"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtLet
	StmtReturn
	StmtDefer
	StmtBreak
	StmtContinue
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "ExprStmt"
	case StmtLet:
		return "Let"
	case StmtReturn:
		return "Return"
	case StmtDefer:
		return "Defer"
	case StmtBreak:
		return "Break"
	case StmtContinue:
		return "Continue"
	}
	return "Unknown"
}

// Stmt is a statement header. Expr holds the expression of ExprStmt,
// Return, Defer and the value of Let; Payload points into Lets for StmtLet.
type Stmt struct {
	Kind StmtKind
	Span source.Span
	Expr ExprID
	// HasSemicolon is meaningful for StmtExpr only: false for expressions
	// with a block, which end a statement on their own.
	HasSemicolon bool
	Payload      PayloadID
}

type LetData struct {
	Pattern PatternID
	Type    TypeID
}

type Stmts struct {
	Arena *Arena[Stmt]
	Lets  *Arena[LetData]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena: NewArena[Stmt](capHint),
		Lets:  NewArena[LetData](capHint/4 + 1),
	}
}

func (s *Stmts) New(kind StmtKind, span source.Span, expr ExprID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind: kind,
		Span: span,
		Expr: expr,
	}))
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID, hasSemicolon bool) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:         StmtExpr,
		Span:         span,
		Expr:         expr,
		HasSemicolon: hasSemicolon,
	}))
}

func (s *Stmts) NewLet(span source.Span, pattern PatternID, typ TypeID, value ExprID) StmtID {
	payload := s.Lets.Allocate(LetData{Pattern: pattern, Type: typ})
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    StmtLet,
		Span:    span,
		Expr:    value,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) Let(id StmtID) (*LetData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(st.Payload)), true
}
