package ast

import (
	"stellar/internal/source"
	"stellar/internal/token"
)

type ExprKind uint8

const (
	ExprLit ExprKind = iota
	ExprIdent
	ExprParen
	ExprList
	ExprTuple
	ExprBlock
	ExprClosure
	ExprIf
	ExprMatch
	ExprWhile
	ExprLoop
	ExprPrefix
	ExprPostfix
	ExprBinary
	ExprCall
	ExprProperty
	ExprGenericArgs
	ExprCast
	ExprStruct
)

var exprKindNames = [...]string{
	ExprLit:         "Literal",
	ExprIdent:       "Identifier",
	ExprParen:       "Parenthesized",
	ExprList:        "List",
	ExprTuple:       "Tuple",
	ExprBlock:       "Block",
	ExprClosure:     "Closure",
	ExprIf:          "If",
	ExprMatch:       "Match",
	ExprWhile:       "While",
	ExprLoop:        "Loop",
	ExprPrefix:      "Prefix",
	ExprPostfix:     "Postfix",
	ExprBinary:      "Binary",
	ExprCall:        "Call",
	ExprProperty:    "Property",
	ExprGenericArgs: "GenericArguments",
	ExprCast:        "Cast",
	ExprStruct:      "Struct",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Unknown"
}

// WithBlock reports whether expressions of this kind end in a block and so
// form a statement without a trailing `;`.
func (k ExprKind) WithBlock() bool {
	switch k {
	case ExprBlock, ExprIf, ExprMatch, ExprWhile, ExprLoop, ExprClosure:
		return true
	}
	return false
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitChar
	LitBool
)

func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitString:
		return "string"
	case LitChar:
		return "char"
	default:
		return "bool"
	}
}

// LiteralData keeps both the source text and the decoded value.
// Overflow is set when an integer did not fit into uint64 (Int is 0) or a
// float was out of range (Float is ±Inf).
type LiteralData struct {
	Kind     LitKind
	Raw      string
	Int      uint64
	Float    float64
	Str      string
	Char     rune
	Bool     bool
	Overflow bool
}

type IdentData struct {
	Name source.StringID
}

type ParenData struct {
	Inner ExprID
}

// ElemsData is shared by list and tuple literals.
type ElemsData struct {
	Elems []ExprID
}

// BlockData is `{ stmts; tail }`. Tail is the trailing expression without
// `;` that gives the block its value.
type BlockData struct {
	Stmts []StmtID
	Tail  ExprID
}

// Param is a parameter of a function or closure: `name [: Type] [= default]`.
type Param struct {
	Name    Ident
	Type    TypeID
	Default ExprID
	Span    source.Span
}

type ClosureData struct {
	Params []Param
	Return TypeID
	Body   ExprID
}

type IfBranch struct {
	Cond ExprID
	Body ExprID
}

// IfData is a flattened `if / else if / else` chain.
type IfData struct {
	Branches []IfBranch
	Else     ExprID
}

type MatchArm struct {
	Pattern PatternID
	Body    ExprID
	Span    source.Span
}

type MatchData struct {
	Scrutinee ExprID
	Arms      []MatchArm
}

type WhileData struct {
	Cond ExprID
	Body ExprID
}

type LoopData struct {
	Body ExprID
}

// UnaryData is used for both prefix and postfix operators.
type UnaryData struct {
	Op      token.Kind
	OpSpan  source.Span
	Operand ExprID
}

type BinaryData struct {
	Op     token.Kind
	OpSpan source.Span
	Left   ExprID
	Right  ExprID
}

type CallData struct {
	Callee ExprID
	Args   []ExprID
}

type PropertyData struct {
	Left ExprID
	Name Ident
}

type GenericArgsData struct {
	Left ExprID
	Args []TypeID
}

type CastData struct {
	Value ExprID
	Type  TypeID
}

// StructField is `name` or `name: value`; Value is NoExprID for the shorthand.
type StructField struct {
	Name  Ident
	Value ExprID
}

type StructData struct {
	Left   ExprID
	Fields []StructField
}
