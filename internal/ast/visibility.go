package ast

import "stellar/internal/source"

// Visibility описывает доступность элемента (private/public).
type Visibility struct {
	Public bool
	Span   source.Span // span of `pub`; zero when private
}

func Private() Visibility { return Visibility{} }

func Public(sp source.Span) Visibility { return Visibility{Public: true, Span: sp} }

func (v Visibility) String() string {
	if v.Public {
		return "public"
	}
	return "private"
}
