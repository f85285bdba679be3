package lexer

import (
	"errors"
	"strconv"
	"strings"

	"stellar/internal/token"
)

// scanNumber handles 123, 1_000, 0b1010, 0o17, 0xFF, 1.5, 1e-3, 2.5E+10.
// The token is always finished; the first problem found becomes its reason.
// Range checks happen later, when the parser converts the literal.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	reason := token.NoLexError
	set := func(r token.LexErrorReason) {
		if reason == token.NoLexError {
			reason = r
		}
	}

	base := uint8(10)
	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		case 'x', 'X':
			base = 16
		}
		if base != 10 {
			lx.cursor.Bump()
			lx.cursor.Bump()
		}
	}

	kind := token.IntLit
	if lx.scanDigits(base, set) == 0 {
		set(token.NumberContainsNoDigits)
	}

	// дробная часть: точка считается частью числа только перед цифрой,
	// иначе это `..`, доступ к полю или вызов метода
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		if base != 10 {
			set(token.InvalidRadixPoint)
		}
		lx.cursor.Bump()
		kind = token.FloatLit
		lx.scanDigits(10, set)
	}

	if b := lx.cursor.Peek(); (b == 'e' || b == 'E') && base != 16 {
		if base != 10 {
			set(token.ExponentRequiresDecimalMantissa)
		}
		lx.cursor.Bump()
		kind = token.FloatLit
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if lx.scanDigits(10, set) == 0 {
			set(token.ExponentHasNoDigits)
		}
	}

	// хвост вида 12abc или 1e5x
	if r, sz := lx.peekRune(); sz > 0 && (isIdentContinueByte(byte(r)) && r < utf8RuneSelf || r >= utf8RuneSelf && isIdentContinueRune(r)) {
		set(token.InvalidDigit)
		for {
			r, sz := lx.peekRune()
			if sz == 0 || !(r < utf8RuneSelf && isIdentContinueByte(byte(r)) || r >= utf8RuneSelf && isIdentContinueRune(r)) {
				break
			}
			lx.bumpRune()
		}
	}

	if reason != token.NoLexError {
		return lx.fail(reason, start)
	}
	tok := lx.emit(kind, start)
	if kind == token.FloatLit {
		if _, err := strconv.ParseFloat(strings.ReplaceAll(tok.Text, "_", ""), 64); err != nil && !errors.Is(err, strconv.ErrRange) {
			tok.Kind = token.LexError
			tok.Err = token.NumberParseError
		}
	}
	return tok
}

// scanDigits consumes a run of digits and separators for base and returns
// how many digits it saw. Letters are consumed too so the whole lexeme
// lands in one token; they are reported as bad digits. In bases other
// than 16, 'e'/'E' stops the run (exponent).
func (lx *Lexer) scanDigits(base uint8, set func(token.LexErrorReason)) int {
	digits := 0
	lastUnderscore := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '_' {
			if digits == 0 || lastUnderscore {
				set(token.UnderscoreMustSeparateSuccessiveDigits)
			}
			lastUnderscore = true
			lx.cursor.Bump()
			continue
		}
		if (b == 'e' || b == 'E') && base != 16 {
			break
		}
		v := digitValue(b)
		if v == 255 {
			break
		}
		switch {
		case v < base:
		case v < 10:
			set(token.DigitDoesNotCorrespondToBase)
		default:
			set(token.InvalidDigit)
		}
		digits++
		lastUnderscore = false
		lx.cursor.Bump()
	}
	if lastUnderscore {
		set(token.UnderscoreMustSeparateSuccessiveDigits)
	}
	return digits
}
