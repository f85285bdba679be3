package diag

import "stellar/internal/source"

// Reporter receives diagnostics from the lexer and parser as they happen.
type Reporter interface {
	Report(d Diagnostic)
}

// ReportBuilder assembles one diagnostic and hands it to a Reporter.
// Emit is idempotent; a nil builder ignores every call.
type ReportBuilder struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

func NewReportBuilder(r Reporter, sev Severity, code Code, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: Diagnostic{Severity: sev, Code: code, Message: msg}}
}

func ReportError(r Reporter, code Code, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, msg)
}

func ReportWarning(r Reporter, code Code, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, msg)
}

func (b *ReportBuilder) edit(f func(Diagnostic) Diagnostic) *ReportBuilder {
	if b != nil {
		b.d = f(b.d)
	}
	return b
}

func (b *ReportBuilder) WithPrimary(sp source.Span, text string) *ReportBuilder {
	return b.edit(func(d Diagnostic) Diagnostic { return d.WithPrimary(sp, text) })
}

func (b *ReportBuilder) WithSecondary(sp source.Span, text string) *ReportBuilder {
	return b.edit(func(d Diagnostic) Diagnostic { return d.WithSecondary(sp, text) })
}

func (b *ReportBuilder) WithNote(msg string) *ReportBuilder {
	return b.edit(func(d Diagnostic) Diagnostic { return d.WithNote(msg) })
}

func (b *ReportBuilder) Emit() {
	if b == nil || b.sent {
		return
	}
	b.sent = true
	if b.to != nil {
		b.to.Report(b.d)
	}
}

// Diagnostic returns what was built so far without emitting it.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.d
}

// BagReporter appends into Bag; a nil Bag drops.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// CountingReporter forwards to Next and counts what passes through.
// The parser uses Structural to tell a clean parse from an aborted one
// without looking into the caller's sink.
type CountingReporter struct {
	Next       Reporter
	Structural int
	Total      int
}

func (r *CountingReporter) Report(d Diagnostic) {
	r.Total++
	if d.IsStructural() {
		r.Structural++
	}
	if r.Next != nil {
		r.Next.Report(d)
	}
}
