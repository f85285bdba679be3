package lexer

import (
	"golang.org/x/text/unicode/norm"

	"stellar/internal/token"
)

// scanIdentOrKeyword scans an identifier and classifies keywords and
// boolean literals. Keywords are case-sensitive.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if r < utf8RuneSelf {
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		if sz == 0 || !isIdentStartRune(r) {
			lx.bumpRune()
			return lx.fail(token.UnexpectedChar, start)
		}
		lx.bumpRune()
	}
	// хвост может содержать Unicode даже после ASCII-начала
	for {
		r, sz := lx.peekRune()
		if sz == 0 {
			break
		}
		if r < utf8RuneSelf {
			if !isIdentContinueByte(byte(r)) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
		return tok
	}
	if lx.opts.NormalizeIdents && !norm.NFC.IsNormalString(tok.Text) {
		tok.Text = norm.NFC.String(tok.Text)
	}
	return tok
}

// scanWrappedIdent scans `name`, which lets keywords be used as names.
// The token text is the name without backticks.
func (lx *Lexer) scanWrappedIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '`'
	bodyStart := lx.cursor.Off
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			return lx.fail(token.UnterminatedWrappedIdentifier, start)
		}
		if lx.cursor.Peek() == '`' {
			break
		}
		lx.bumpRune()
	}
	bodyEnd := lx.cursor.Off
	lx.cursor.Bump() // closing '`'
	if bodyEnd == bodyStart {
		return lx.fail(token.EmptyWrappedIdentifier, start)
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[bodyStart:bodyEnd])
	if lx.opts.NormalizeIdents && !norm.NFC.IsNormalString(text) {
		text = norm.NFC.String(text)
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
