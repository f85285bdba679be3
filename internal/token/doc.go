// Package token defines the closed set of lexical kinds, the keyword and
// punctuator tables, lexical error reasons and the operator precedence table.
// Invariants:
//   - Exactly one Kind is active per Token; LexError tokens carry a reason in Err.
//   - Token.Span matches Token.Text exactly, except for doc comments and
//     wrapped identifiers whose Text is the payload without delimiters.
//   - PrecedenceOf is the single authority for operator binding.
//   - Built-in type names (int32, float64, ...) are identifiers.
package token
