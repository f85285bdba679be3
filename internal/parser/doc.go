// Package parser builds the arena tree of one source file.
//
// The parser keeps a two-token window (current, next) over the lexer and
// never looks further ahead. Every parse function returns (id, ok); a false
// ok means a structural diagnostic (E001) was reported and the construct was
// abandoned. Callers propagate the failure without trying to resynchronise,
// so a broken file yields one structural diagnostic and no module, while
// lexical (E000), literal (E002, E003) and style (E004) diagnostics are
// reported without stopping the parse.
//
// Expressions are parsed by precedence climbing driven by token.PrecedenceOf.
// Every expression parse carries an ignoreStruct flag: when set, a `{` after
// an expression ends it instead of starting a struct literal. Conditions of
// `if` and `while` and the scrutinee of `match` are parsed with the flag set;
// parentheses reset it.
package parser
