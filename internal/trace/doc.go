// Package trace records what the stellar front end is doing while it runs.
//
// Events are emitted at phase boundaries (driver commands, lexing and
// parsing passes, per-file work) and carry the session ID of the run that
// produced them, so traces from concurrent runs can be told apart.
//
// # Usage
//
//	stellar diag --trace=- --trace-level=phase src/
//	stellar diag --trace=run.ndjson --trace-level=detail src/
//
// # Tracers
//
//   - Nop: used whenever tracing is off
//   - StreamTracer: writes each event as it arrives
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// A level decides which scopes are emitted:
//
//   - LevelPhase: ScopeDriver and ScopePass
//   - LevelDetail: adds ScopeFile
//   - LevelDebug: adds ScopeNode
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
