package driver

import (
	"context"
	"errors"
	"fmt"

	"stellar/internal/ast"
	"stellar/internal/diag"
	"stellar/internal/parser"
	"stellar/internal/source"
	"stellar/internal/trace"
)

type ParseResult struct {
	Path    string
	File    *source.File
	Builder *ast.Builder
	// Module is NoModuleID when a structural error aborted the file.
	Module ast.ModuleID
	Ok     bool
	Bag    *diag.Bag
	Err    error // load failure in directory runs
}

// Parse loads path into the session and parses it as a module.
func Parse(ctx context.Context, sess *Session, path string) (*ParseResult, error) {
	fileID, err := sess.FileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return parseFile(ctx, sess, sess.FileSet.Get(fileID)), nil
}

// ParseSource parses in-memory content registered under name.
func ParseSource(ctx context.Context, sess *Session, name string, content []byte) *ParseResult {
	fileID := sess.FileSet.AddVirtual(name, content)
	return parseFile(ctx, sess, sess.FileSet.Get(fileID))
}

func parseFile(ctx context.Context, sess *Session, file *source.File) *ParseResult {
	span := trace.Begin(sess.Tracer, trace.ScopeFile, "parse:"+file.Path, trace.ParentSpan(ctx))
	done := sess.Timer.Track("parse " + file.Path)

	bag := sess.newBag()
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseModule(file, b, sess.parserOptions(diag.BagReporter{Bag: bag}))
	sess.finishBag(bag)

	note := outcome(res.Ok, res.Diagnostics)
	done(note)
	span.WithExtra("diagnostics", fmt.Sprint(res.Diagnostics)).End(note)

	return &ParseResult{
		Path:    file.Path,
		File:    file,
		Builder: b,
		Module:  res.Module,
		Ok:      res.Ok,
		Bag:     bag,
	}
}

type ExprResult struct {
	File    *source.File
	Builder *ast.Builder
	Expr    ast.ExprID
	Ok      bool
	Bag     *diag.Bag
}

// ParseExpr parses the whole of path as one expression.
func ParseExpr(ctx context.Context, sess *Session, path string) (*ExprResult, error) {
	fileID, err := sess.FileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return parseExprFile(ctx, sess, sess.FileSet.Get(fileID)), nil
}

func ParseExprSource(ctx context.Context, sess *Session, name string, content []byte) *ExprResult {
	fileID := sess.FileSet.AddVirtual(name, content)
	return parseExprFile(ctx, sess, sess.FileSet.Get(fileID))
}

func parseExprFile(ctx context.Context, sess *Session, file *source.File) *ExprResult {
	span := trace.Begin(sess.Tracer, trace.ScopeFile, "parse-expr:"+file.Path, trace.ParentSpan(ctx))
	bag := sess.newBag()
	b := ast.NewBuilder(ast.Hints{})
	expr, res := parser.ParseExpression(file, b, sess.parserOptions(diag.BagReporter{Bag: bag}))
	sess.finishBag(bag)
	span.End(outcome(res.Ok, res.Diagnostics))
	return &ExprResult{File: file, Builder: b, Expr: expr, Ok: res.Ok, Bag: bag}
}

// DiagnoseResult is a parse that keeps only the diagnostics.
type DiagnoseResult struct {
	Path   string
	File   *source.File
	Ok     bool
	Bag    *diag.Bag
	Cached bool
	Err    error
}

// Diagnose reports the diagnostics of path. With a session cache, an
// unchanged file is answered from the cache without parsing.
func Diagnose(ctx context.Context, sess *Session, path string) (*DiagnoseResult, error) {
	fileID, err := sess.FileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("diagnose %s: %w", path, err)
	}
	return diagnoseFile(ctx, sess, sess.FileSet.Get(fileID)), nil
}

func diagnoseFile(ctx context.Context, sess *Session, file *source.File) *DiagnoseResult {
	key := cacheKey(file.Content, sess.opts)
	if sess.Cache != nil {
		payload, err := sess.Cache.Get(key)
		switch {
		case err == nil:
			bag := sess.newBag()
			payload.restore(file.ID, bag)
			trace.Point(sess.Tracer, trace.ScopeFile, "cache-hit:"+file.Path, key.String()[:12])
			return &DiagnoseResult{Path: file.Path, File: file, Ok: payload.Ok, Bag: bag, Cached: true}
		case !errors.Is(err, ErrCacheMiss):
			// битая запись: перепарсим и перезапишем
			trace.Point(sess.Tracer, trace.ScopeFile, "cache-error:"+file.Path, err.Error())
		}
	}

	res := parseFile(ctx, sess, file)
	out := &DiagnoseResult{Path: file.Path, File: file, Ok: res.Ok, Bag: res.Bag}
	if sess.Cache != nil {
		if err := sess.Cache.Put(key, payloadFromBag(sess, file.Path, res.Ok, res.Bag)); err != nil {
			trace.Point(sess.Tracer, trace.ScopeFile, "cache-write-error:"+file.Path, err.Error())
		}
	}
	return out
}

func outcome(ok bool, diagnostics int) string {
	if ok {
		return fmt.Sprintf("ok, %d diagnostics", diagnostics)
	}
	return fmt.Sprintf("aborted, %d diagnostics", diagnostics)
}
