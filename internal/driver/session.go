package driver

import (
	"runtime"

	"github.com/google/uuid"

	"stellar/internal/diag"
	"stellar/internal/lexer"
	"stellar/internal/observ"
	"stellar/internal/parser"
	"stellar/internal/source"
	"stellar/internal/trace"
)

// Options configure a Session. The zero value parses with no diagnostic
// cap, GOMAXPROCS workers, no cache and no tracing.
type Options struct {
	// MaxDiagnostics caps every per-file bag; 0 means unlimited.
	MaxDiagnostics   int
	WarningsAsErrors bool
	Jobs             int
	NormalizeIdents  bool
	BaseDir          string

	Cache  *DiskCache
	Tracer trace.Tracer
	Timer  *observ.Timer
	// OnFile is called after each file of a directory run, from the worker
	// goroutine that finished it.
	OnFile FileObserver
}

// Session is one run of the front end. Every file loaded through it shares
// the FileSet and the Interner, so the same identifier interns to the same
// StringID in all of them.
type Session struct {
	ID       uuid.UUID
	FileSet  *source.FileSet
	Interner *source.Interner
	Tracer   trace.Tracer
	Timer    *observ.Timer
	Cache    *DiskCache

	opts Options
}

func NewSession(opts Options) *Session {
	id := uuid.New()
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}
	return &Session{
		ID:       id,
		FileSet:  source.NewFileSetWithBase(opts.BaseDir),
		Interner: source.NewInterner(),
		Tracer:   trace.WithSession(tracer, id.String()),
		Timer:    timer,
		Cache:    opts.Cache,
		opts:     opts,
	}
}

func (s *Session) Options() Options { return s.opts }

func (s *Session) newBag() *diag.Bag {
	return diag.NewBag(s.opts.MaxDiagnostics)
}

// finishBag applies session policy once a file is done. Diagnostics stay
// in the order they were reported.
func (s *Session) finishBag(bag *diag.Bag) {
	if s.opts.WarningsAsErrors {
		bag.PromoteWarnings()
	}
}

func (s *Session) lexerOptions() lexer.Options {
	return lexer.Options{NormalizeIdents: s.opts.NormalizeIdents}
}

func (s *Session) parserOptions(r diag.Reporter) parser.Options {
	return parser.Options{
		Interner: s.Interner,
		Reporter: r,
		Lexer:    s.lexerOptions(),
	}
}

// FileEvent describes one finished file of a directory run.
type FileEvent struct {
	Path        string
	Index       int
	Total       int
	Diagnostics int
	Cached      bool
	Err         error
}

// FileObserver receives FileEvents. It must be safe for concurrent use.
type FileObserver func(FileEvent)

func (s *Session) notify(ev FileEvent) {
	if s.opts.OnFile != nil {
		s.opts.OnFile(ev)
	}
}
