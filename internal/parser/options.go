package parser

import (
	"stellar/internal/ast"
	"stellar/internal/diag"
	"stellar/internal/lexer"
	"stellar/internal/source"
)

type Options struct {
	// Interner is shared by every file of a session. Required.
	Interner *source.Interner
	// Reporter receives diagnostics in the order they are found.
	// nil drops them.
	Reporter diag.Reporter
	Lexer    lexer.Options
}

// Result describes one ParseModule call.
type Result struct {
	// Module is NoModuleID when a structural diagnostic aborted the parse.
	Module ast.ModuleID
	Ok     bool
	// Diagnostics counts what this parse reported, by kind.
	Diagnostics int
	Structural  int
}
