package parser

import (
	"math"
	"strconv"
	"strings"

	"stellar/internal/ast"
	"stellar/internal/diag"
	"stellar/internal/lexer"
	"stellar/internal/token"
)

// parseLiteral consumes a literal token and decodes its value. Out-of-range
// numbers are reported (E002, E003) but still produce a node.
func (p *Parser) parseLiteral() (ast.ExprID, bool) {
	p.Advance()
	tok := p.current
	data := ast.LiteralData{Raw: tok.Text}

	switch tok.Kind {
	case token.IntLit:
		data.Kind = ast.LitInt
		v, ok := parseUint(tok.Text)
		if !ok {
			p.report(diag.IntegerOverflow(tok.Span))
			data.Overflow = true
		}
		data.Int = v
	case token.FloatLit:
		data.Kind = ast.LitFloat
		// ErrRange при переполнении даёт ±Inf, при underflow ноль, и это не ошибка
		v, _ := strconv.ParseFloat(strings.ReplaceAll(tok.Text, "_", ""), 64)
		if math.IsInf(v, 0) {
			p.report(diag.FloatOverflow(tok.Span))
			data.Overflow = true
		}
		data.Float = v
	case token.StringLit:
		data.Kind = ast.LitString
		data.Str = lexer.UnquoteString(tok.Text)
	case token.CharLit:
		data.Kind = ast.LitChar
		data.Char = lexer.UnquoteChar(tok.Text)
	case token.TrueLit, token.FalseLit:
		data.Kind = ast.LitBool
		data.Bool = tok.Kind == token.TrueLit
	}
	return p.b.Exprs.NewLiteral(tok.Span, data), true
}

// parseUint converts an integer literal (with `_` separators and an optional
// 0b/0o/0x prefix) to uint64. It returns (0, false) on overflow.
func parseUint(text string) (uint64, bool) {
	digits := strings.ReplaceAll(text, "_", "")
	base := 10
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		case 'x', 'X':
			base = 16
		}
		if base != 10 {
			digits = digits[2:]
		}
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
