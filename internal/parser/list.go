package parser

import (
	"stellar/internal/diag"
	"stellar/internal/token"
)

// parseList parses `elem (, elem)* [,]` up to closer. The opening delimiter
// must already be consumed; the closer is left in next for the caller.
// An element failure fails the whole list, as does end of file.
func (p *Parser) parseList(closer token.Kind, node string, elem func() bool) bool {
	return p.parseListSep(closer, node, elem, nil)
}

// parseListSep is parseList where sepOptional, when it returns true after an
// element, lets the next element follow without a comma.
func (p *Parser) parseListSep(closer token.Kind, node string, elem func() bool, sepOptional func() bool) bool {
	for {
		switch p.next.Kind {
		case closer:
			return true
		case token.EOF:
			p.Unexpected(diag.Kinds(closer), node)
			return false
		}

		if !elem() {
			return false
		}

		switch {
		case p.at(token.Comma):
			p.Advance()
		case p.at(closer):
		case sepOptional != nil && sepOptional():
		default:
			p.Unexpected(diag.Kinds(token.Comma, closer), node)
			return false
		}
	}
}
