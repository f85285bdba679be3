package ast

import (
	"stellar/internal/source"
)

// Exprs manages allocation of expressions: one arena of headers plus one
// payload arena per kind.
type Exprs struct {
	Arena           *Arena[Expr]
	Literals        *Arena[LiteralData]
	Idents          *Arena[IdentData]
	Parens          *Arena[ParenData]
	ElemLists       *Arena[ElemsData]
	Blocks          *Arena[BlockData]
	Closures        *Arena[ClosureData]
	Ifs             *Arena[IfData]
	Matches         *Arena[MatchData]
	Whiles          *Arena[WhileData]
	Loops           *Arena[LoopData]
	Unaries         *Arena[UnaryData]
	Binaries        *Arena[BinaryData]
	Calls           *Arena[CallData]
	Properties      *Arena[PropertyData]
	GenericArgLists *Arena[GenericArgsData]
	Casts           *Arena[CastData]
	Structs         *Arena[StructData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Exprs{
		Arena:           NewArena[Expr](capHint),
		Literals:        NewArena[LiteralData](capHint),
		Idents:          NewArena[IdentData](capHint),
		Parens:          NewArena[ParenData](small),
		ElemLists:       NewArena[ElemsData](small),
		Blocks:          NewArena[BlockData](capHint),
		Closures:        NewArena[ClosureData](small),
		Ifs:             NewArena[IfData](small),
		Matches:         NewArena[MatchData](small),
		Whiles:          NewArena[WhileData](small),
		Loops:           NewArena[LoopData](small),
		Unaries:         NewArena[UnaryData](small),
		Binaries:        NewArena[BinaryData](capHint),
		Calls:           NewArena[CallData](capHint),
		Properties:      NewArena[PropertyData](small),
		GenericArgLists: NewArena[GenericArgsData](small),
		Casts:           NewArena[CastData](small),
		Structs:         NewArena[StructData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewLiteral(span source.Span, data LiteralData) ExprID {
	return e.new(ExprLit, span, e.Literals.Allocate(data))
}

func (e *Exprs) Literal(id ExprID) (*LiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewIdent(span source.Span, data IdentData) ExprID {
	return e.new(ExprIdent, span, e.Idents.Allocate(data))
}

func (e *Exprs) Ident(id ExprID) (*IdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewParen(span source.Span, data ParenData) ExprID {
	return e.new(ExprParen, span, e.Parens.Allocate(data))
}

func (e *Exprs) Paren(id ExprID) (*ParenData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprParen {
		return nil, false
	}
	return e.Parens.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewElems(kind ExprKind, span source.Span, data ElemsData) ExprID {
	return e.new(kind, span, e.ElemLists.Allocate(data))
}

func (e *Exprs) Elems(id ExprID) (*ElemsData, bool) {
	expr := e.Get(id)
	if expr == nil || (expr.Kind != ExprList && expr.Kind != ExprTuple) {
		return nil, false
	}
	return e.ElemLists.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBlock(span source.Span, data BlockData) ExprID {
	return e.new(ExprBlock, span, e.Blocks.Allocate(data))
}

func (e *Exprs) Block(id ExprID) (*BlockData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBlock {
		return nil, false
	}
	return e.Blocks.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewClosure(span source.Span, data ClosureData) ExprID {
	return e.new(ExprClosure, span, e.Closures.Allocate(data))
}

func (e *Exprs) Closure(id ExprID) (*ClosureData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprClosure {
		return nil, false
	}
	return e.Closures.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewIf(span source.Span, data IfData) ExprID {
	return e.new(ExprIf, span, e.Ifs.Allocate(data))
}

func (e *Exprs) If(id ExprID) (*IfData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIf {
		return nil, false
	}
	return e.Ifs.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewMatch(span source.Span, data MatchData) ExprID {
	return e.new(ExprMatch, span, e.Matches.Allocate(data))
}

func (e *Exprs) Match(id ExprID) (*MatchData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMatch {
		return nil, false
	}
	return e.Matches.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewWhile(span source.Span, data WhileData) ExprID {
	return e.new(ExprWhile, span, e.Whiles.Allocate(data))
}

func (e *Exprs) While(id ExprID) (*WhileData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprWhile {
		return nil, false
	}
	return e.Whiles.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewLoop(span source.Span, data LoopData) ExprID {
	return e.new(ExprLoop, span, e.Loops.Allocate(data))
}

func (e *Exprs) Loop(id ExprID) (*LoopData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLoop {
		return nil, false
	}
	return e.Loops.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewUnary(kind ExprKind, span source.Span, data UnaryData) ExprID {
	return e.new(kind, span, e.Unaries.Allocate(data))
}

func (e *Exprs) Unary(id ExprID) (*UnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || (expr.Kind != ExprPrefix && expr.Kind != ExprPostfix) {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBinary(span source.Span, data BinaryData) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(data))
}

func (e *Exprs) Binary(id ExprID) (*BinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCall(span source.Span, data CallData) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(data))
}

func (e *Exprs) Call(id ExprID) (*CallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewProperty(span source.Span, data PropertyData) ExprID {
	return e.new(ExprProperty, span, e.Properties.Allocate(data))
}

func (e *Exprs) Property(id ExprID) (*PropertyData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprProperty {
		return nil, false
	}
	return e.Properties.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewGenericArgs(span source.Span, data GenericArgsData) ExprID {
	return e.new(ExprGenericArgs, span, e.GenericArgLists.Allocate(data))
}

func (e *Exprs) GenericArgs(id ExprID) (*GenericArgsData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprGenericArgs {
		return nil, false
	}
	return e.GenericArgLists.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCast(span source.Span, data CastData) ExprID {
	return e.new(ExprCast, span, e.Casts.Allocate(data))
}

func (e *Exprs) Cast(id ExprID) (*CastData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCast {
		return nil, false
	}
	return e.Casts.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewStruct(span source.Span, data StructData) ExprID {
	return e.new(ExprStruct, span, e.Structs.Allocate(data))
}

func (e *Exprs) Struct(id ExprID) (*StructData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprStruct {
		return nil, false
	}
	return e.Structs.Get(uint32(expr.Payload)), true
}
