package token

// Precedence is the binding strength of a token in infix or postfix
// position. Higher binds tighter.
type Precedence uint8

const (
	PrecLowest Precedence = iota
	PrecAs
	PrecLogicalOr
	PrecLogicalAnd
	PrecBitOr
	PrecBitXor
	PrecAssignment
	PrecComparison
	PrecShift
	PrecGenericArgument
	PrecSum
	PrecProduct
	PrecModulo
	PrecCall
	PrecFieldAccess
	PrecUnary
	PrecStructLiteral
)

var precNames = [...]string{
	PrecLowest:          "Lowest",
	PrecAs:              "As",
	PrecLogicalOr:       "LogicalOr",
	PrecLogicalAnd:      "LogicalAnd",
	PrecBitOr:           "BitOr",
	PrecBitXor:          "BitXor",
	PrecAssignment:      "Assignment",
	PrecComparison:      "Comparison",
	PrecShift:           "Shift",
	PrecGenericArgument: "GenericArgument",
	PrecSum:             "Sum",
	PrecProduct:         "Product",
	PrecModulo:          "Modulo",
	PrecCall:            "Call",
	PrecFieldAccess:     "FieldAccess",
	PrecUnary:           "Unary",
	PrecStructLiteral:   "StructLiteral",
}

func (p Precedence) String() string {
	if int(p) < len(precNames) {
		return precNames[p]
	}
	return "Precedence(?)"
}

// precedences is the only place operator binding is defined.
// Kinds without an entry bind at PrecLowest.
var precedences = [kindCount]Precedence{
	KwAs: PrecAs,

	OrOr:   PrecLogicalOr,
	AndAnd: PrecLogicalAnd,
	Pipe:   PrecBitOr,
	Caret:  PrecBitXor,

	Assign:        PrecAssignment,
	PlusAssign:    PrecAssignment,
	MinusAssign:   PrecAssignment,
	StarAssign:    PrecAssignment,
	SlashAssign:   PrecAssignment,
	PipeAssign:    PrecAssignment,
	CaretAssign:   PrecAssignment,
	PercentAssign: PrecAssignment,

	EqEq:   PrecComparison,
	BangEq: PrecComparison,
	Lt:     PrecComparison,
	LtEq:   PrecComparison,
	Gt:     PrecComparison,
	GtEq:   PrecComparison,

	Shl: PrecShift,
	Shr: PrecShift,

	LBracket: PrecGenericArgument,

	Plus:  PrecSum,
	Minus: PrecSum,

	Star:  PrecProduct,
	Slash: PrecProduct,

	Percent: PrecModulo,

	LParen: PrecCall,

	Dot: PrecFieldAccess,

	Tilde:      PrecUnary,
	PlusPlus:   PrecUnary,
	MinusMinus: PrecUnary,
	Bang:       PrecUnary,
	Question:   PrecUnary,

	LBrace: PrecStructLiteral,
}

// PrecedenceOf returns the binding precedence of k. Total and pure.
func PrecedenceOf(k Kind) Precedence {
	if k >= kindCount {
		return PrecLowest
	}
	return precedences[k]
}

// Precedence is a shorthand for PrecedenceOf(k).
func (k Kind) Precedence() Precedence { return PrecedenceOf(k) }

// IsBinaryOp reports whether k is an infix operator. Every binary operator
// has a precedence above PrecLowest.
func (k Kind) IsBinaryOp() bool {
	switch k {
	case OrOr, AndAnd, Pipe, Caret,
		Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PipeAssign, CaretAssign, PercentAssign,
		EqEq, BangEq, Lt, LtEq, Gt, GtEq,
		Shl, Shr, Plus, Minus, Star, Slash, Percent:
		return true
	default:
		return false
	}
}

// IsPrefixOp reports whether k may start a prefix-operator expression.
func (k Kind) IsPrefixOp() bool {
	switch k {
	case Bang, Tilde, PlusPlus, MinusMinus, Minus, Plus, Amp, Star:
		return true
	default:
		return false
	}
}

// IsPostfixOp reports whether k may follow an expression as a postfix operator.
func (k Kind) IsPostfixOp() bool {
	switch k {
	case Question, PlusPlus, MinusMinus:
		return true
	default:
		return false
	}
}
