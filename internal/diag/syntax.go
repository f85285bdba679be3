package diag

import (
	"fmt"

	"stellar/internal/source"
	"stellar/internal/token"
)

// FromLexError builds E000 for a token of kind token.LexError.
func FromLexError(tok token.Token) Diagnostic {
	return Diagnostic{
		Code:     LexInvalidToken,
		Severity: SevError,
		Message:  tok.Err.String(),
	}.WithPrimary(tok.Span, "")
}

// UnexpectedToken describes E001.
type UnexpectedToken struct {
	// Offset is the end of the token before Got; ignored unless HasOffset.
	Offset    uint32
	HasOffset bool
	Got       token.Token
	Expected  Expected
	// Node names the construct being parsed ("expression", "block", ...).
	Node string
}

func (u UnexpectedToken) Build() Diagnostic {
	found := u.Got.Describe()
	d := Diagnostic{
		Code:     SynUnexpectedToken,
		Severity: SevError,
		Message:  fmt.Sprintf("expected %s, found %s", u.Expected, found),
	}
	if u.HasOffset {
		return d.
			WithSecondary(source.Point(u.Got.Span.File, u.Offset), "expected "+u.Expected.String()).
			WithPrimary(u.Got.Span, "found "+found)
	}
	return d.WithPrimary(u.Got.Span, fmt.Sprintf("expected %s for %s", u.Expected, u.Node))
}

// IntegerOverflow builds E002 for a literal that does not fit into u64.
func IntegerOverflow(sp source.Span) Diagnostic {
	return Diagnostic{
		Code:     SynIntegerOverflow,
		Severity: SevError,
		Message:  "unexpected integer overflow",
	}.
		WithPrimary(sp, "error appeared when parsing this integer").
		WithNote("note: integer cannot exceed the maximum value of `u64` (u64.max() == 18_446_744_073_709_551_615)").
		WithNote("note: you can use exponent to do so, but be careful!")
}

// FloatOverflow builds E003 for a literal beyond the largest finite f64.
func FloatOverflow(sp source.Span) Diagnostic {
	return Diagnostic{
		Code:     SynFloatOverflow,
		Severity: SevError,
		Message:  "unexpected float overflow",
	}.
		WithPrimary(sp, "error appeared when parsing this float literal").
		WithNote("note: float cannot exceed the maximum value of `f64` (f64.max() == 1.7976931348623157e+308)").
		WithNote("note: you can use exponent to do so, but be careful!")
}

// VisibilityContext says where a redundant `pub` was found.
type VisibilityContext uint8

const (
	InInterfaceMethod VisibilityContext = iota
	InImport
)

// UnnecessaryVisibility describes E004.
type UnnecessaryVisibility struct {
	Pub     source.Span
	Context VisibilityContext
	// Name is the method name span; used only for InInterfaceMethod.
	Name source.Span
}

func (u UnnecessaryVisibility) Build() Diagnostic {
	d := Diagnostic{
		Code:     SynUnnecessaryVisibility,
		Severity: SevWarning,
		Message:  "unnecessary visibility qualifier",
	}.WithPrimary(u.Pub, "consider removing this `pub`")

	switch u.Context {
	case InInterfaceMethod:
		return d.
			WithSecondary(u.Name, "happened when analyzing the interface method").
			WithNote("note: using `pub` for interface method will not make the method public").
			WithNote("note: all interface methods are public by default")
	default:
		return d.WithNote("note: using `pub` will not make the import public.")
	}
}
