package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"stellar/internal/diag"
	"stellar/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// ErrCacheMiss is returned by DiskCache.Get when no usable entry exists.
var ErrCacheMiss = errors.New("diagnostics cache miss")

// DiskCache хранит диагностики файлов на диске по хешу содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is what one cache entry holds. Spans are stored as offsets;
// the FileID is reattached on load because it differs between sessions.
type DiskPayload struct {
	Schema      uint16
	Session     string // session that wrote the entry
	Path        string
	Created     int64 // unix nanoseconds
	Ok          bool
	Dropped     int
	Diagnostics []CachedDiagnostic
}

type CachedDiagnostic struct {
	Code     uint16
	Severity uint8
	Message  string
	Labels   []CachedLabel
	Notes    []string
}

type CachedLabel struct {
	Start, End uint32
	Role       uint8
	Text       string
}

// CacheDir resolves the cache location: $STELLAR_CACHE_DIR, then
// $XDG_CACHE_HOME/<app>, then ~/.cache/<app>.
func CacheDir(app string) (string, error) {
	if dir := os.Getenv("STELLAR_CACHE_DIR"); dir != "" {
		return dir, nil
	}
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	dir, err := CacheDir(app)
	if err != nil {
		return nil, err
	}
	return OpenDiskCacheAt(dir)
}

func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open cache %s: %w", dir, err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := key.String()
	// подкаталог по первым двум символам, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "diag", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = diskCacheSchemaVersion
	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads the payload for key. A missing entry or one written by another
// schema version yields ErrCacheMiss.
func (c *DiskCache) Get(key Digest) (*DiskPayload, error) {
	if c == nil {
		return nil, ErrCacheMiss
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	defer f.Close()

	var out DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return nil, ErrCacheMiss
	}
	return &out, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

func payloadFromBag(sess *Session, path string, ok bool, bag *diag.Bag) *DiskPayload {
	items := bag.Items()
	payload := &DiskPayload{
		Session:     sess.ID.String(),
		Path:        path,
		Created:     time.Now().UnixNano(),
		Ok:          ok,
		Dropped:     bag.Dropped(),
		Diagnostics: make([]CachedDiagnostic, len(items)),
	}
	for i, d := range items {
		cd := CachedDiagnostic{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Message:  d.Message,
			Notes:    d.Notes,
			Labels:   make([]CachedLabel, len(d.Labels)),
		}
		for j, l := range d.Labels {
			cd.Labels[j] = CachedLabel{Start: l.Span.Start, End: l.Span.End, Role: uint8(l.Role), Text: l.Text}
		}
		payload.Diagnostics[i] = cd
	}
	return payload
}

// restore rebuilds diagnostics for file. Dropped diagnostics were only
// counted, so the count is carried over as is.
func (p *DiskPayload) restore(file source.FileID, bag *diag.Bag) {
	for _, cd := range p.Diagnostics {
		d := diag.Diagnostic{
			Code:     diag.Code(cd.Code),
			Severity: diag.Severity(cd.Severity),
			Message:  cd.Message,
			Notes:    cd.Notes,
		}
		for _, l := range cd.Labels {
			d.Labels = append(d.Labels, diag.Label{
				Span: source.Span{File: file, Start: l.Start, End: l.End},
				Role: diag.LabelRole(l.Role),
				Text: l.Text,
			})
		}
		bag.Add(d)
	}
	bag.NoteDropped(p.Dropped)
}
