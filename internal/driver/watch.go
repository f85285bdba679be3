package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a Watcher waits for a burst of events to settle.
const DefaultDebounce = 150 * time.Millisecond

// Batch is one debounced set of source changes, sorted by path.
type Batch struct {
	Changed []string
	Removed []string
}

// Watcher reports changes to .sr files under a directory tree.
type Watcher struct {
	fw       *fsnotify.Watcher
	root     string
	debounce time.Duration
}

// NewWatcher watches root and every non-hidden directory below it.
func NewWatcher(root string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w := &Watcher{fw: fw, root: root, debounce: debounce}
	if err := w.addTree(root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// Run delivers batches to onBatch until ctx is cancelled or the watcher
// fails. onBatch runs on the Run goroutine; events arriving meanwhile are
// collected into the next batch.
func (w *Watcher) Run(ctx context.Context, onBatch func(Batch)) error {
	changed := make(map[string]struct{})
	removed := make(map[string]struct{})

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			w.handle(ev, changed, removed)
			timer.Reset(w.debounce)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", w.root, err)

		case <-timer.C:
			if len(changed) == 0 && len(removed) == 0 {
				continue
			}
			batch := Batch{Changed: sortedKeys(changed), Removed: sortedKeys(removed)}
			clear(changed)
			clear(removed)
			onBatch(batch)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event, changed, removed map[string]struct{}) {
	path := ev.Name
	switch {
	case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
		info, err := os.Stat(path)
		if err != nil {
			return
		}
		if info.IsDir() {
			if ev.Op&fsnotify.Create != 0 {
				// новый каталог: подписываемся и подхватываем уже лежащие в нём файлы
				_ = w.addTree(path)
				if files, err := ListSourceFiles(path); err == nil {
					for _, f := range files {
						changed[f] = struct{}{}
					}
				}
			}
			return
		}
		if strings.HasSuffix(path, SourceExt) {
			changed[path] = struct{}{}
			delete(removed, path)
		}
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if strings.HasSuffix(path, SourceExt) {
			removed[path] = struct{}{}
			delete(changed, path)
		}
	}
}

func (w *Watcher) Close() error {
	if err := w.fw.Close(); err != nil && !errors.Is(err, fsnotify.ErrClosed) {
		return err
	}
	return nil
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
