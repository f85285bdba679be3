package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"stellar/internal/source"
	"stellar/internal/trace"
)

// SourceExt is the extension of stellar source files.
const SourceExt = ".sr"

// ListSourceFiles возвращает отсортированный список всех *.sr файлов в директории.
// Hidden directories are skipped.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

type loaded struct {
	path string
	file *source.File
	err  error
}

// loadAll registers files in path order so FileIDs do not depend on
// scheduling.
func loadAll(sess *Session, files []string) []loaded {
	out := make([]loaded, len(files))
	for i, path := range files {
		out[i].path = path
		id, err := sess.FileSet.Load(path)
		if err != nil {
			out[i].err = err
			continue
		}
		out[i].file = sess.FileSet.Get(id)
	}
	return out
}

// forEachFile runs work over every file with at most Jobs workers. Results
// land at the file's index, so no locking is needed and the output is in
// path order whatever the scheduling.
func forEachFile[R any](ctx context.Context, sess *Session, pass string, files []loaded, work func(context.Context, loaded) (R, int, bool)) ([]R, error) {
	ctx, span := trace.BeginContext(trace.WithTracer(ctx, sess.Tracer), trace.ScopePass, pass)
	done := sess.Timer.Track(pass)

	results := make([]R, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(sess.opts.Jobs, len(files))))

	for i, lf := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			r, n, cached := work(gctx, lf)
			results[i] = r
			sess.notify(FileEvent{Path: lf.path, Index: i, Total: len(files), Diagnostics: n, Cached: cached, Err: lf.err})
			return nil
		})
	}
	err := g.Wait()

	note := fmt.Sprintf("%d files", len(files))
	done(note)
	span.WithExtra("jobs", fmt.Sprint(sess.opts.Jobs)).End(note)
	return results, err
}

// TokenizeDir токенизирует все *.sr файлы в директории параллельно.
func TokenizeDir(ctx context.Context, sess *Session, dir string) ([]*TokenizeResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	return forEachFile(ctx, sess, "tokenize", loadAll(sess, files), func(ctx context.Context, lf loaded) (*TokenizeResult, int, bool) {
		if lf.err != nil {
			return &TokenizeResult{Path: lf.path, Err: lf.err}, 0, false
		}
		r := tokenizeFile(ctx, sess, lf.file)
		return r, r.Bag.Len(), false
	})
}

// ParseDir парсит все *.sr файлы в директории параллельно. Each file gets
// its own Builder and Bag; the interner is the session's.
func ParseDir(ctx context.Context, sess *Session, dir string) ([]*ParseResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	return forEachFile(ctx, sess, "parse", loadAll(sess, files), func(ctx context.Context, lf loaded) (*ParseResult, int, bool) {
		if lf.err != nil {
			return &ParseResult{Path: lf.path, Err: lf.err}, 0, false
		}
		r := parseFile(ctx, sess, lf.file)
		return r, r.Bag.Len(), false
	})
}

// DiagnoseDir is ParseDir for callers that only need diagnostics; it uses
// the session cache.
func DiagnoseDir(ctx context.Context, sess *Session, dir string) ([]*DiagnoseResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	return DiagnoseFiles(ctx, sess, files)
}

// DiagnoseFiles diagnoses an explicit list of files, e.g. the ones a
// Watcher reported.
func DiagnoseFiles(ctx context.Context, sess *Session, files []string) ([]*DiagnoseResult, error) {
	return forEachFile(ctx, sess, "diagnose", loadAll(sess, files), func(ctx context.Context, lf loaded) (*DiagnoseResult, int, bool) {
		if lf.err != nil {
			return &DiagnoseResult{Path: lf.path, Err: lf.err}, 0, false
		}
		r := diagnoseFile(ctx, sess, lf.file)
		return r, r.Bag.Len(), r.Cached
	})
}
