package driver

import (
	"context"
	"fmt"

	"stellar/internal/diag"
	"stellar/internal/lexer"
	"stellar/internal/source"
	"stellar/internal/token"
	"stellar/internal/trace"
)

type TokenizeResult struct {
	Path   string
	File   *source.File
	Tokens []token.Token
	Bag    *diag.Bag
	Err    error // load failure in directory runs
}

// Tokenize loads path into the session and lexes it to EOF. Malformed
// lexemes become E000 diagnostics; the token stream keeps them as LexError
// tokens.
func Tokenize(ctx context.Context, sess *Session, path string) (*TokenizeResult, error) {
	fileID, err := sess.FileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("tokenize %s: %w", path, err)
	}
	return tokenizeFile(ctx, sess, sess.FileSet.Get(fileID)), nil
}

// TokenizeSource lexes in-memory content, e.g. stdin.
func TokenizeSource(ctx context.Context, sess *Session, name string, content []byte) *TokenizeResult {
	fileID := sess.FileSet.AddVirtual(name, content)
	return tokenizeFile(ctx, sess, sess.FileSet.Get(fileID))
}

func tokenizeFile(ctx context.Context, sess *Session, file *source.File) *TokenizeResult {
	span := trace.Begin(sess.Tracer, trace.ScopeFile, "tokenize:"+file.Path, trace.ParentSpan(ctx))
	done := sess.Timer.Track("tokenize " + file.Path)

	bag := sess.newBag()
	tokens := lexer.Tokenize(file, sess.lexerOptions())
	for _, tok := range tokens {
		if tok.Kind == token.LexError {
			bag.Add(diag.FromLexError(tok))
		}
	}
	sess.finishBag(bag)

	note := fmt.Sprintf("%d tokens", len(tokens))
	done(note)
	span.End(note)
	return &TokenizeResult{Path: file.Path, File: file, Tokens: tokens, Bag: bag}
}
