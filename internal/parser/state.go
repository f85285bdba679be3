package parser

import (
	"strings"

	"stellar/internal/ast"
	"stellar/internal/diag"
	"stellar/internal/source"
	"stellar/internal/token"
)

// TokenSource yields tokens forever; after the end of input it keeps
// returning token.EOF. *lexer.Lexer satisfies it.
type TokenSource interface {
	Next() token.Token
}

// ParseState is the two-token window over a TokenSource plus the sinks the
// parse writes to. It lives for exactly one file.
type ParseState struct {
	file     source.FileID
	src      TokenSource
	current  token.Token
	next     token.Token
	shifted  bool // хотя бы один advance уже был
	reporter diag.Reporter
	interner *source.Interner
}

// NewParseState primes both slots with the first significant token and
// reports it right away if it is a lexical error.
func NewParseState(file source.FileID, src TokenSource, r diag.Reporter, interner *source.Interner) *ParseState {
	if r == nil {
		r = diag.NopReporter{}
	}
	if interner == nil {
		interner = source.NewInterner()
	}
	s := &ParseState{
		file:     file,
		src:      src,
		reporter: r,
		interner: interner,
	}
	s.next = s.pull()
	s.current = s.next
	s.checkNext()
	return s
}

// pull reads the next token, skipping plain comments. Doc comments are
// significant and stay in the stream.
func (s *ParseState) pull() token.Token {
	for {
		tok := s.src.Next()
		if tok.Kind != token.Comment {
			return tok
		}
	}
}

func (s *ParseState) checkNext() {
	if s.next.Kind == token.LexError {
		s.reporter.Report(diag.FromLexError(s.next))
	}
}

// Current is the most recently consumed token.
func (s *ParseState) Current() token.Token { return s.current }

// Next is the token the next Advance will consume.
func (s *ParseState) Next() token.Token { return s.next }

func (s *ParseState) File() source.FileID { return s.file }

// Advance shifts next into current and pulls a fresh next.
func (s *ParseState) Advance() {
	s.current = s.next
	s.shifted = true
	s.next = s.pull()
	s.checkNext()
}

func (s *ParseState) at(k token.Kind) bool {
	return s.next.Kind == k
}

// Unexpected reports E001 for the token in next.
func (s *ParseState) Unexpected(expected diag.Expected, node string) {
	s.reporter.Report(diag.UnexpectedToken{
		Offset:    s.current.Span.End,
		HasOffset: s.shifted,
		Got:       s.next,
		Expected:  expected,
		Node:      node,
	}.Build())
}

// Expect checks that next has kind k without consuming it.
func (s *ParseState) Expect(k token.Kind, node string) bool {
	if s.at(k) {
		return true
	}
	s.Unexpected(diag.Kinds(k), node)
	return false
}

// Consume is Expect followed by Advance.
func (s *ParseState) Consume(k token.Kind, node string) bool {
	if !s.Expect(k, node) {
		return false
	}
	s.Advance()
	return true
}

// ConsumeIdent consumes an identifier and interns its text.
func (s *ParseState) ConsumeIdent(node string) (ast.Ident, bool) {
	if !s.at(token.Ident) {
		s.Unexpected(diag.Expected{"identifier"}, node)
		return ast.Ident{}, false
	}
	s.Advance()
	return s.ident(s.current), true
}

func (s *ParseState) ident(tok token.Token) ast.Ident {
	return ast.Ident{Name: s.interner.Intern(tok.Text), Span: tok.Span}
}

// ConsumeDocComments collects a run of doc comments of one level: module
// level (`//!`) or item level (`///`). Lines are joined with "\n". The second
// result is false when next is not such a comment.
func (s *ParseState) ConsumeDocComments(moduleLevel bool) (string, bool) {
	kind := token.LocalDocComment
	if moduleLevel {
		kind = token.GlobalDocComment
	}
	if !s.at(kind) {
		return "", false
	}
	var sb strings.Builder
	for first := true; s.at(kind); first = false {
		s.Advance()
		if !first {
			sb.WriteByte('\n')
		}
		sb.WriteString(s.current.Text)
	}
	return sb.String(), true
}

// ConsumeVisibility eats an optional `pub`.
func (s *ParseState) ConsumeVisibility() ast.Visibility {
	if !s.at(token.KwPub) {
		return ast.Private()
	}
	s.Advance()
	return ast.Public(s.current.Span)
}

// spanFrom ends at the last consumed token.
func (s *ParseState) spanFrom(start uint32) source.Span {
	end := s.current.Span.End
	if end < start {
		end = start
	}
	return source.Span{File: s.file, Start: start, End: end}
}

func (s *ParseState) report(d diag.Diagnostic) {
	s.reporter.Report(d)
}
