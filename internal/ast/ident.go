package ast

import "stellar/internal/source"

// Ident is an interned name together with where it was written.
type Ident struct {
	Name source.StringID
	Span source.Span
}

func (i Ident) IsValid() bool { return i.Name != source.NoStringID }

// Path is a dot-separated name: `std.io.File`.
type Path struct {
	Segments []Ident
	Span     source.Span
}

// Last returns the final segment; the zero Ident for an empty path.
func (p Path) Last() Ident {
	if len(p.Segments) == 0 {
		return Ident{}
	}
	return p.Segments[len(p.Segments)-1]
}

// IsSingle reports whether the path is a bare identifier.
func (p Path) IsSingle() bool { return len(p.Segments) == 1 }
