package trace

import (
	"context"
	"time"
)

// Span is an open begin event. The zero Span and spans filtered out by
// level are inert: End returns 0 and emits nothing.
type Span struct {
	tracer  Tracer
	ev      Event // template for the end event
	started time.Time
}

// Begin opens a span under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{}
	}
	s := &Span{
		tracer:  t,
		started: time.Now(),
		ev: Event{
			Scope:    scope,
			SpanID:   nextSpanID(),
			ParentID: parent,
			GID:      goroutineID(),
			Name:     name,
		},
	}
	begin := s.ev
	begin.Time, begin.Kind = s.started, KindSpanBegin
	t.Emit(&begin)
	return s
}

// BeginContext opens a span under ParentSpan(ctx) on the tracer in ctx and
// returns a context in which the new span is the parent.
func BeginContext(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	span := Begin(FromContext(ctx), scope, name, ParentSpan(ctx))
	if span.ID() == 0 {
		return ctx, span
	}
	return withParent(ctx, span.ID()), span
}

// End emits the end event and returns how long the span was open.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	end := s.ev
	end.Time, end.Kind, end.Detail = time.Now(), KindSpanEnd, detail
	s.tracer.Emit(&end)
	return end.Time.Sub(s.started)
}

// WithExtra adds a key to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.ev.Extra == nil {
		s.ev.Extra = make(map[string]string, 2)
	}
	s.ev.Extra[key] = value
	return s
}

// ID is 0 for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.ev.SpanID
}
