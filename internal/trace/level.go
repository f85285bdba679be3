package trace

import (
	"fmt"
	"strings"
)

// Level controls how much is traced.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // ring buffer only, dumped on failure
	LevelPhase        // driver and pass boundaries
	LevelDetail       // plus one span per file
	LevelDebug        // everything, node events included
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", uint8(l))
}

// ParseLevel accepts the names above in any case; "" is off.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass at this level.
// Error keeps the same coarse picture as Phase, just in memory.
func (l Level) ShouldEmit(scope Scope) bool {
	switch {
	case l == LevelOff:
		return false
	case l >= LevelDebug:
		return true
	case l == LevelDetail:
		return scope <= ScopeFile
	default:
		return scope <= ScopePass
	}
}
