// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// # Data model
//
// Diagnostic is plain data:
//
//   - Code – stable identifier rendered as E000..E004 (see codes.go).
//   - Severity – Info, Warning or Error.
//   - Message – one-line summary.
//   - Labels – spans tagged primary or secondary, each with its own text.
//   - Notes – free-form trailing lines.
//
// A diagnostic can be rendered from those fields alone; nothing in the
// package keeps a reference to parser state.
//
// # Emitting diagnostics
//
// Producers talk to a Reporter. The parser emits through the helpers in
// syntax.go (FromLexError, UnexpectedToken, IntegerOverflow, FloatOverflow,
// UnnecessaryVisibility), and ad-hoc diagnostics go through ReportBuilder:
//
//	diag.ReportError(r, diag.SynUnexpectedToken, "expected `;`, found `}`").
//		WithPrimary(span, "found `}`").
//		WithNote("note: ...").
//		Emit()
//
// BagReporter appends into a Bag. A Bag is owned by its caller; the parser
// never deduplicates, sorts or drops what it reports. The driver gives each
// file its own Bag and merges them afterwards.
//
// Rendering lives in internal/diagfmt.
package diag
