// Package fuzztests holds Go fuzz harnesses for the front end
// (source -> lexer -> parser). They look for panics, hangs and span
// corruption on arbitrary input.
//
// Запуск: go test ./internal/fuzz -fuzz=FuzzParser -fuzztime=30s
package fuzztests
