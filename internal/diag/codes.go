package diag

import (
	"fmt"
	"strconv"
	"strings"
)

// Code is the stable identifier of a diagnostic. Values are part of the
// external interface and are never renumbered.
type Code uint16

const (
	// Лексические
	LexInvalidToken Code = 0
	// Синтаксические
	SynUnexpectedToken       Code = 1
	SynIntegerOverflow       Code = 2
	SynFloatOverflow         Code = 3
	SynUnnecessaryVisibility Code = 4

	codeCount = 5
)

var codeTitle = [codeCount]string{
	LexInvalidToken:          "invalid token",
	SynUnexpectedToken:       "unexpected token",
	SynIntegerOverflow:       "integer literal overflow",
	SynFloatOverflow:         "float literal overflow",
	SynUnnecessaryVisibility: "unnecessary visibility qualifier",
}

var codeExplanation = [codeCount]string{
	LexInvalidToken: `The lexer could not turn a piece of source into a token: an unterminated
string or character literal, a bad escape sequence, a digit that does not
belong to the literal's base and so on. The message names the exact reason.
Lexical errors never stop parsing by themselves.`,
	SynUnexpectedToken: `The parser needed one of a fixed set of tokens and found something else.
The construct being parsed is abandoned together with everything that
encloses it, so a file usually reports one such error and produces no tree.`,
	SynIntegerOverflow: `An integer literal does not fit into u64. The literal is kept with value 0
and the rest of the file is parsed normally.`,
	SynFloatOverflow: `A float literal is larger than the maximum finite f64. The literal is kept
and the rest of the file is parsed normally.`,
	SynUnnecessaryVisibility: `A pub qualifier was written where it has no effect: on an interface method
(interface methods are always public) or on an import (imports are never
re-exported). This is a warning.`,
}

// Codes returns all known codes in ascending order.
func Codes() []Code {
	out := make([]Code, 0, codeCount)
	for c := Code(0); c < codeCount; c++ {
		out = append(out, c)
	}
	return out
}

// ID renders the code as it appears in output: E000, E001, ...
func (c Code) ID() string {
	return fmt.Sprintf("E%03d", uint16(c))
}

func (c Code) Title() string {
	if c < codeCount {
		return codeTitle[c]
	}
	return "unknown diagnostic"
}

// Explain returns a longer description for `stellar explain`.
func (c Code) Explain() string {
	if c < codeCount {
		return codeExplanation[c]
	}
	return ""
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.ID()), nil
}

func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := ParseCode(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCode accepts "E001", "e001" or "1".
func ParseCode(s string) (Code, error) {
	trimmed := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "E")
	n, err := strconv.ParseUint(trimmed, 10, 16)
	if err != nil || n >= codeCount {
		return 0, fmt.Errorf("unknown diagnostic code %q", s)
	}
	return Code(n), nil
}
