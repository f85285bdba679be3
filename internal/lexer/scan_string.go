package lexer

import (
	"strings"
	"unicode/utf8"

	"stellar/internal/token"
)

// scanString scans "..." literals. Strings may span lines. On a bad escape
// the scan still runs to the closing quote so the next token starts clean.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	reason := token.NoLexError
	for {
		if lx.cursor.EOF() {
			return lx.fail(token.UnterminatedStringLiteral, start)
		}
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			if reason != token.NoLexError {
				return lx.fail(reason, start)
			}
			return lx.emit(token.StringLit, start)
		case '\\':
			if _, r := lx.scanEscape(); r != token.NoLexError && reason == token.NoLexError {
				reason = r
			}
		default:
			lx.bumpRune()
		}
	}
}

// scanChar scans 'c' literals holding exactly one character or escape.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	if lx.cursor.Eat('\'') {
		return lx.fail(token.EmptyCharacterLiteral, start)
	}

	reason := token.NoLexError
	count := 0
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			return lx.fail(token.UnterminatedCharLiteral, start)
		}
		b := lx.cursor.Peek()
		if b == '\'' {
			lx.cursor.Bump()
			break
		}
		if b == '\\' {
			if _, r := lx.scanEscape(); r != token.NoLexError && reason == token.NoLexError {
				reason = r
			}
		} else {
			lx.bumpRune()
		}
		count++
	}

	switch {
	case reason != token.NoLexError:
		return lx.fail(reason, start)
	case count > 1:
		return lx.fail(token.MoreThanOneCharInCharLiteral, start)
	}
	return lx.emit(token.CharLit, start)
}

// scanEscape consumes one escape sequence starting at '\\'.
func (lx *Lexer) scanEscape() (rune, token.LexErrorReason) {
	content := lx.file.Content[lx.cursor.Off:lx.cursor.Limit]
	r, n, reason := decodeEscape(content)
	lx.cursor.Off += uint32(n) // #nosec G115 -- n <= len(content)
	return r, reason
}

// decodeEscape decodes the escape at the start of src (src[0] == '\\').
// It returns the rune, the number of bytes consumed and an error reason.
// On error it consumes as much as belongs to the broken escape, never a
// closing quote.
func decodeEscape(src []byte) (rune, int, token.LexErrorReason) {
	if len(src) < 2 {
		return 0, len(src), token.EmptyEscapeSequence
	}
	switch src[1] {
	case 'n':
		return '\n', 2, token.NoLexError
	case 'r':
		return '\r', 2, token.NoLexError
	case 't':
		return '\t', 2, token.NoLexError
	case '0':
		return 0, 2, token.NoLexError
	case '\\':
		return '\\', 2, token.NoLexError
	case '\'':
		return '\'', 2, token.NoLexError
	case '"':
		return '"', 2, token.NoLexError
	case 'x':
		return decodeBracedHex(src, false)
	case 'u':
		return decodeBracedHex(src, true)
	case '\n':
		return 0, 1, token.EmptyEscapeSequence
	default:
		_, sz := utf8.DecodeRune(src[1:])
		return 0, 1 + sz, token.UnknownEscapeSequence
	}
}

// decodeBracedHex handles \x{HH} (byte) and \u{H...} (Unicode scalar).
func decodeBracedHex(src []byte, unicodeEsc bool) (rune, int, token.LexErrorReason) {
	pick := func(byteReason, uniReason token.LexErrorReason) token.LexErrorReason {
		if unicodeEsc {
			return uniReason
		}
		return byteReason
	}

	i := 2
	if i >= len(src) || src[i] != '{' {
		return 0, i, pick(token.ExpectedOpenBracketInByteEscapeSequence, token.ExpectedOpenBracketInUnicodeEscapeSequence)
	}
	i++
	digitsStart := i
	var value uint64
	overflow := false
	for i < len(src) && isHex(src[i]) {
		value = value<<4 | uint64(digitValue(src[i]))
		if i-digitsStart >= 8 {
			overflow = true
		}
		i++
	}
	if i == digitsStart {
		return 0, i, pick(token.ExpectedDigitInByteEscapeSequence, token.ExpectedDigitInUnicodeEscapeSequence)
	}
	if i >= len(src) || src[i] != '}' {
		return 0, i, pick(token.ExpectedCloseBracketInByteEscapeSequence, token.ExpectedCloseBracketInUnicodeEscapeSequence)
	}
	i++

	if !unicodeEsc {
		if overflow || value > 0xFF {
			return 0, i, token.InvalidByteEscapeSequence
		}
		return rune(value), i, token.NoLexError
	}
	if overflow || value > utf8.MaxRune || !utf8.ValidRune(rune(value)) {
		return 0, i, token.InvalidUnicodeEscapeSequence
	}
	return rune(value), i, token.NoLexError
}

// UnquoteString returns the value of a StringLit token's text.
func UnquoteString(text string) string {
	if len(text) >= 2 {
		text = text[1 : len(text)-1]
	}
	return unescape(text)
}

// UnquoteChar returns the value of a CharLit token's text.
func UnquoteChar(text string) rune {
	s := unescape(strings.TrimSuffix(strings.TrimPrefix(text, "'"), "'"))
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	src := []byte(s)
	for i := 0; i < len(src); {
		if src[i] != '\\' {
			sb.WriteByte(src[i])
			i++
			continue
		}
		r, n, _ := decodeEscape(src[i:])
		sb.WriteRune(r)
		i += n
	}
	return sb.String()
}
