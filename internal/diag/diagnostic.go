package diag

import (
	"stellar/internal/source"
)

// LabelRole separates the label a diagnostic is about from the ones giving context.
type LabelRole uint8

const (
	RolePrimary LabelRole = iota
	RoleSecondary
)

func (r LabelRole) String() string {
	if r == RoleSecondary {
		return "secondary"
	}
	return "primary"
}

func (r LabelRole) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

type Label struct {
	Span source.Span
	Role LabelRole
	Text string
}

type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Labels   []Label
	Notes    []string
}

// Primary returns the first primary label.
func (d *Diagnostic) Primary() (Label, bool) {
	for _, l := range d.Labels {
		if l.Role == RolePrimary {
			return l, true
		}
	}
	return Label{}, false
}

// Span is the location used for sorting and one-line output: the primary
// label, or the first label when there is no primary one.
func (d *Diagnostic) Span() source.Span {
	if l, ok := d.Primary(); ok {
		return l.Span
	}
	if len(d.Labels) > 0 {
		return d.Labels[0].Span
	}
	return source.Span{}
}

func (d Diagnostic) WithPrimary(sp source.Span, text string) Diagnostic {
	d.Labels = append(d.Labels, Label{Span: sp, Role: RolePrimary, Text: text})
	return d
}

func (d Diagnostic) WithSecondary(sp source.Span, text string) Diagnostic {
	d.Labels = append(d.Labels, Label{Span: sp, Role: RoleSecondary, Text: text})
	return d
}

func (d Diagnostic) WithNote(msg string) Diagnostic {
	d.Notes = append(d.Notes, msg)
	return d
}

// IsStructural reports whether the diagnostic aborted the construct it was
// raised in. Lexical, literal and style diagnostics never do.
func (d *Diagnostic) IsStructural() bool {
	return d.Code == SynUnexpectedToken
}
