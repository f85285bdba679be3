package ast

import (
	"stellar/internal/source"
)

type PatternKind uint8

const (
	PatLiteral PatternKind = iota
	PatIdent
	PatWildcard
	PatRest
	PatPath
	PatTupleLike
	PatStruct
	PatTuple
	PatList
	PatGroup
	PatOr
)

var patternKindNames = [...]string{
	PatLiteral:   "LiteralPattern",
	PatIdent:     "IdentifierPattern",
	PatWildcard:  "WildcardPattern",
	PatRest:      "RestPattern",
	PatPath:      "PathPattern",
	PatTupleLike: "TupleLikePattern",
	PatStruct:    "StructPattern",
	PatTuple:     "TuplePattern",
	PatList:      "ListPattern",
	PatGroup:     "GroupedPattern",
	PatOr:        "OrPattern",
}

func (k PatternKind) String() string {
	if int(k) < len(patternKindNames) {
		return patternKindNames[k]
	}
	return "Unknown"
}

type Pattern struct {
	Kind    PatternKind
	Span    source.Span
	Payload PayloadID
}

// PatternData is one payload shape for every pattern kind; unused fields
// stay zero:
//
//	PatLiteral    Literal (an ExprLit, or ExprPrefix `-` over one)
//	PatIdent      Name, Sub for `name @ pattern`
//	PatPath       Path
//	PatTupleLike  Path, Elems
//	PatStruct     Path, Fields, HasRest
//	PatTuple, PatList, PatOr  Elems
//	PatGroup      Sub
type PatternData struct {
	Literal ExprID
	Name    Ident
	Sub     PatternID
	Path    Path
	Elems   []PatternID
	Fields  []StructPatternField
	HasRest bool
}

// StructPatternField is `name` or `name: pattern`.
type StructPatternField struct {
	Name    Ident
	Pattern PatternID
}

type Patterns struct {
	Arena *Arena[Pattern]
	Data  *Arena[PatternData]
}

func NewPatterns(capHint uint) *Patterns {
	return &Patterns{
		Arena: NewArena[Pattern](capHint),
		Data:  NewArena[PatternData](capHint),
	}
}

// New allocates a pattern; kinds without payload (wildcard, rest) pass nil.
func (p *Patterns) New(kind PatternKind, span source.Span, data *PatternData) PatternID {
	var payload uint32
	if data != nil {
		payload = p.Data.Allocate(*data)
	}
	return PatternID(p.Arena.Allocate(Pattern{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (p *Patterns) Get(id PatternID) *Pattern {
	return p.Arena.Get(uint32(id))
}

// Payload returns the pattern data; nil for kinds that have none.
func (p *Patterns) Payload(id PatternID) *PatternData {
	pat := p.Get(id)
	if pat == nil {
		return nil
	}
	return p.Data.Get(uint32(pat.Payload))
}
