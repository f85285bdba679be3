package parser

import (
	"stellar/internal/ast"
	"stellar/internal/diag"
	"stellar/internal/lexer"
	"stellar/internal/source"
	"stellar/internal/token"
)

// Parser: состояние парсера на один файл, окно токенов плюс арены.
type Parser struct {
	ParseState
	b *ast.Builder
}

// ParseModule parses one file into b. Diagnostics go to opts.Reporter.
// The module is returned only when no structural diagnostic was reported.
func ParseModule(file *source.File, b *ast.Builder, opts Options) Result {
	counter := &diag.CountingReporter{Next: opts.Reporter}
	lx := lexer.New(file, opts.Lexer)
	p := Parser{
		ParseState: *NewParseState(file.ID, lx, counter, opts.Interner),
		b:          b,
	}

	mod, ok := p.parseModule()
	if !ok {
		mod = ast.NoModuleID
	}
	return Result{
		Module:      mod,
		Ok:          ok,
		Diagnostics: counter.Total,
		Structural:  counter.Structural,
	}
}

// NewParser is for callers that drive individual productions, such as tests
// and the REPL-style `stellar parse --expr`.
func NewParser(file source.FileID, src TokenSource, b *ast.Builder, opts Options) *Parser {
	return &Parser{
		ParseState: *NewParseState(file, src, opts.Reporter, opts.Interner),
		b:          b,
	}
}

func (p *Parser) parseModule() (ast.ModuleID, bool) {
	start := p.next.Span.Start
	mod := p.b.Modules.New(p.file, source.Span{File: p.file, Start: start, End: start})

	doc, hasDoc := p.ConsumeDocComments(true)
	for !p.at(token.EOF) {
		item, ok := p.parseItem()
		if !ok {
			return mod, false
		}
		p.b.PushItem(mod, item)
	}

	m := p.b.Modules.Get(mod)
	m.Doc, m.HasDoc = doc, hasDoc
	m.Span = source.Span{File: p.file, Start: start, End: p.next.Span.End}
	return mod, true
}

// ParseExpression parses file as a single expression followed by end of
// input. It backs `stellar parse --expr`.
func ParseExpression(file *source.File, b *ast.Builder, opts Options) (ast.ExprID, Result) {
	counter := &diag.CountingReporter{Next: opts.Reporter}
	p := NewParser(file.ID, lexer.New(file, opts.Lexer), b, Options{
		Interner: opts.Interner,
		Reporter: counter,
	})

	expr, ok := p.parseExpr()
	if ok && !p.Expect(token.EOF, "expression") {
		ok = false
	}
	if !ok {
		expr = ast.NoExprID
	}
	return expr, Result{
		Ok:          ok,
		Diagnostics: counter.Total,
		Structural:  counter.Structural,
	}
}
