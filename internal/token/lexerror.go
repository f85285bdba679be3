package token

// LexErrorReason explains why a lexeme could not be classified.
type LexErrorReason uint8

const (
	NoLexError LexErrorReason = iota
	DigitDoesNotCorrespondToBase
	EmptyCharacterLiteral
	EmptyEscapeSequence
	EmptyWrappedIdentifier
	ExpectedCloseBracketInByteEscapeSequence
	ExpectedCloseBracketInUnicodeEscapeSequence
	ExpectedDigitInByteEscapeSequence
	ExpectedDigitInUnicodeEscapeSequence
	ExpectedOpenBracketInByteEscapeSequence
	ExpectedOpenBracketInUnicodeEscapeSequence
	ExponentHasNoDigits
	ExponentRequiresDecimalMantissa
	NumberContainsNoDigits
	InvalidByteEscapeSequence
	InvalidDigit
	InvalidRadixPoint
	InvalidUnicodeEscapeSequence
	MoreThanOneCharInCharLiteral
	NumberParseError
	UnderscoreMustSeparateSuccessiveDigits
	UnexpectedChar
	UnknownEscapeSequence
	UnterminatedCharLiteral
	UnterminatedStringLiteral
	UnterminatedWrappedIdentifier

	lexErrorCount
)

var lexErrorMessages = [lexErrorCount]string{
	NoLexError:                                  "no error",
	DigitDoesNotCorrespondToBase:                "digit does not correspond to base",
	EmptyCharacterLiteral:                       "empty character literal",
	EmptyEscapeSequence:                         "empty escape sequence",
	EmptyWrappedIdentifier:                      "empty wrapped identifier literal",
	ExpectedCloseBracketInByteEscapeSequence:    "expected `}` in byte escape sequence",
	ExpectedCloseBracketInUnicodeEscapeSequence: "expected `}` in Unicode escape sequence",
	ExpectedDigitInByteEscapeSequence:           "expected digit in byte escape sequence",
	ExpectedDigitInUnicodeEscapeSequence:        "expected digit in Unicode escape sequence",
	ExpectedOpenBracketInByteEscapeSequence:     "expected `{` in byte escape sequence",
	ExpectedOpenBracketInUnicodeEscapeSequence:  "expected `{` in Unicode escape sequence",
	ExponentHasNoDigits:                         "exponent has no digits",
	ExponentRequiresDecimalMantissa:             "exponent requires decimal mantissa",
	NumberContainsNoDigits:                      "number contains no digits",
	InvalidByteEscapeSequence:                   "invalid byte escape sequence",
	InvalidDigit:                                "invalid digit",
	InvalidRadixPoint:                           "invalid radix point",
	InvalidUnicodeEscapeSequence:                "invalid Unicode escape sequence",
	MoreThanOneCharInCharLiteral:                "more than one character in character literal",
	NumberParseError:                            "number cannot be parsed",
	UnderscoreMustSeparateSuccessiveDigits:      "underscore must separate successive digits",
	UnexpectedChar:                              "unexpected character",
	UnknownEscapeSequence:                       "unknown escape sequence",
	UnterminatedCharLiteral:                     "unterminated character literal",
	UnterminatedStringLiteral:                   "unterminated string literal",
	UnterminatedWrappedIdentifier:               "unterminated wrapped identifier",
}

func (r LexErrorReason) String() string {
	if r < lexErrorCount {
		return lexErrorMessages[r]
	}
	return "unknown lexical error"
}

// LexErrorReasons lists every reason a LexError token can carry.
func LexErrorReasons() []LexErrorReason {
	out := make([]LexErrorReason, 0, lexErrorCount-1)
	for r := NoLexError + 1; r < lexErrorCount; r++ {
		out = append(out, r)
	}
	return out
}
