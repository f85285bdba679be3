package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const defaultRingSize = 4096

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev *Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error

	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // kept in memory, dumped on failure
	ModeBoth
)

var modeNames = map[StorageMode]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("StorageMode(%d)", uint8(m))
}

// ParseMode accepts stream, ring or both in any case.
func ParseMode(s string) (StorageMode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format        // FormatAuto picks from OutputPath
	Output     io.Writer     // for stream mode (if nil, use OutputPath)
	OutputPath string        // file path, "-" or "" for stderr
	RingSize   int           // for ring mode (default 4096)
	Heartbeat  time.Duration // heartbeat interval (0 = disabled)
	Session    string        // stamped on every event
}

// New creates a Tracer based on Config.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = defaultRingSize
	}
	if cfg.Mode == 0 {
		cfg.Mode = ModeStream
	}

	format := cfg.Format
	if format == FormatAuto {
		format = formatForPath(cfg.OutputPath)
	}

	var t Tracer
	switch cfg.Mode {
	case ModeRing:
		t = NewRingTracer(cfg.RingSize, cfg.Level)
	case ModeStream, ModeBoth:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		t = NewStreamTracer(w, cfg.Level, format)
		if cfg.Mode == ModeBoth {
			t = NewMultiTracer(cfg.Level, t, NewRingTracer(cfg.RingSize, cfg.Level))
		}
	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}

	if cfg.Session != "" {
		t = WithSession(t, cfg.Session)
	}
	return t, nil
}

// stderrWriter hides os.Stderr's Close from StreamTracer.Close.
type stderrWriter struct{ io.Writer }

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return stderrWriter{os.Stderr}, nil
	}

	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// sessionTracer stamps the session ID on events passing through it.
type sessionTracer struct {
	Tracer
	session string
}

// WithSession wraps t so that every event carries session.
func WithSession(t Tracer, session string) Tracer {
	if t == nil || !t.Enabled() {
		return Nop
	}
	return sessionTracer{Tracer: t, session: session}
}

func (t sessionTracer) Emit(ev *Event) {
	if ev != nil && ev.Session == "" {
		ev.Session = t.session
	}
	t.Tracer.Emit(ev)
}

// Unwrap returns the tracer under a session wrapper.
func Unwrap(t Tracer) Tracer {
	if st, ok := t.(sessionTracer); ok {
		return st.Tracer
	}
	return t
}

// RingOf finds the ring buffer behind t, if tracing keeps one.
func RingOf(t Tracer) (*RingTracer, bool) {
	switch tt := Unwrap(t).(type) {
	case *RingTracer:
		return tt, true
	case *MultiTracer:
		return tt.Ring()
	}
	return nil, false
}
