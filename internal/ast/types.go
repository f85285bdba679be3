package ast

import (
	"stellar/internal/source"
)

type TypeKind uint8

const (
	// TypePath is `a.b.C` with optional `[T, U]` arguments.
	TypePath TypeKind = iota
	// TypeTuple is `#(T, U)`.
	TypeTuple
	// TypeFun is `fun(T, U): R`.
	TypeFun
	// TypeDyn is `dyn A + B`.
	TypeDyn
	// TypeInfer is `_`.
	TypeInfer
)

func (k TypeKind) String() string {
	switch k {
	case TypePath:
		return "PathType"
	case TypeTuple:
		return "TupleType"
	case TypeFun:
		return "FunctionType"
	case TypeDyn:
		return "InterfaceObjectType"
	case TypeInfer:
		return "InferredType"
	}
	return "Unknown"
}

type TypeExpr struct {
	Kind    TypeKind
	Span    source.Span
	Payload PayloadID
}

type TypePathData struct {
	Path Path
	Args []TypeID
}

// TypeListData is shared by tuple types and `dyn` bound lists.
type TypeListData struct {
	Elems []TypeID
}

type TypeFunData struct {
	Params []TypeID
	Return TypeID
}

type Types struct {
	Arena *Arena[TypeExpr]
	Paths *Arena[TypePathData]
	Lists *Arena[TypeListData]
	Funs  *Arena[TypeFunData]
}

func NewTypes(capHint uint) *Types {
	return &Types{
		Arena: NewArena[TypeExpr](capHint),
		Paths: NewArena[TypePathData](capHint),
		Lists: NewArena[TypeListData](capHint/4 + 1),
		Funs:  NewArena[TypeFunData](capHint/8 + 1),
	}
}

func (t *Types) new(kind TypeKind, span source.Span, payload uint32) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (t *Types) Get(id TypeID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}

func (t *Types) NewPath(span source.Span, path Path, args []TypeID) TypeID {
	return t.new(TypePath, span, t.Paths.Allocate(TypePathData{Path: path, Args: args}))
}

func (t *Types) NewTuple(span source.Span, elems []TypeID) TypeID {
	return t.new(TypeTuple, span, t.Lists.Allocate(TypeListData{Elems: elems}))
}

func (t *Types) NewDyn(span source.Span, bounds []TypeID) TypeID {
	return t.new(TypeDyn, span, t.Lists.Allocate(TypeListData{Elems: bounds}))
}

func (t *Types) NewFun(span source.Span, params []TypeID, ret TypeID) TypeID {
	return t.new(TypeFun, span, t.Funs.Allocate(TypeFunData{Params: params, Return: ret}))
}

func (t *Types) NewInfer(span source.Span) TypeID {
	return t.new(TypeInfer, span, 0)
}

func (t *Types) Path(id TypeID) (*TypePathData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypePath {
		return nil, false
	}
	return t.Paths.Get(uint32(typ.Payload)), true
}

// List returns the elements of a tuple type or the bounds of a dyn type.
func (t *Types) List(id TypeID) (*TypeListData, bool) {
	typ := t.Get(id)
	if typ == nil || (typ.Kind != TypeTuple && typ.Kind != TypeDyn) {
		return nil, false
	}
	return t.Lists.Get(uint32(typ.Payload)), true
}

func (t *Types) Fun(id TypeID) (*TypeFunData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeFun {
		return nil, false
	}
	return t.Funs.Get(uint32(typ.Payload)), true
}
