package token

import (
	"stellar/internal/source"
)

// Token is one classified lexeme. It is immutable and copied by value.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Err  LexErrorReason // valid only when Kind == LexError
}

func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

func (t Token) IsPunct() bool { return t.Kind.IsPunct() }

func (t Token) IsIdent() bool { return t.Kind == Ident }

// Describe returns what diagnostics print for a token found in the input.
func (t Token) Describe() string {
	if t.Kind == LexError {
		return t.Err.String()
	}
	return t.Kind.String()
}
