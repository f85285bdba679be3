package source

import (
	"slices"
	"sync"
)

// StringID is the handle of an interned string. IDs are stable for the
// lifetime of the Interner that issued them.
type StringID uint32

const NoStringID StringID = 0

// Builtin identifiers are interned by NewInterner in this exact order,
// so their IDs are constants.
const (
	SymUnderscore StringID = iota + 1
	SymInt8
	SymInt16
	SymInt32
	SymInt64
	SymUint8
	SymUint16
	SymUint32
	SymUint64
	SymFloat32
	SymFloat64
	SymIsize
	SymUsize
	SymBool
	SymString
	SymList
	SymChar
	SymSelfValue
	SymSelfType
	SymSizeof
	SymStd
)

var builtinIdents = [...]string{
	"_",
	"int8", "int16", "int32", "int64",
	"uint8", "uint16", "uint32", "uint64",
	"float32", "float64",
	"isize", "usize",
	"bool", "String", "List",
	"char", "self", "Self",
	"sizeof", "std",
}

// Interner maps strings to StringIDs and back. It is safe for concurrent
// use: lookups take a read lock, first-time inserts take the write lock.
type Interner struct {
	mu    sync.RWMutex
	byID  []string            // индекс -> строка (byID[0] = "" для NoStringID)
	index map[string]StringID // строка -> ID
}

// NewInterner returns an interner pre-seeded with the builtin identifiers.
func NewInterner() *Interner {
	in := &Interner{
		byID:  make([]string, 1, 64+len(builtinIdents)),
		index: make(map[string]StringID, 64+len(builtinIdents)),
	}
	in.index[""] = NoStringID
	for _, s := range builtinIdents {
		in.insertLocked(s)
	}
	return in
}

// Intern returns the ID of s, inserting it on first sight.
func (i *Interner) Intern(s string) StringID {
	i.mu.RLock()
	id, ok := i.index[s]
	i.mu.RUnlock()
	if ok {
		return id
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	// кто-то мог вставить строку, пока мы ждали write lock
	if id, ok := i.index[s]; ok {
		return id
	}
	return i.insertLocked(s)
}

// InternBytes interns the string form of b.
func (i *Interner) InternBytes(b []byte) StringID {
	return i.Intern(string(b))
}

func (i *Interner) insertLocked(s string) StringID {
	// собственная копия, чтобы не держать исходный буфер файла
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Get returns the ID of s without interning it.
func (i *Interner) Get(s string) (StringID, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	id, ok := i.index[s]
	return id, ok
}

// Lookup returns the string for id, or "" and false for an unknown ID.
func (i *Interner) Lookup(id StringID) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup is Lookup that panics on an unknown ID.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

func (i *Interner) Has(id StringID) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return int(id) < len(i.byID)
}

// Len counts NoStringID too, so it is never below 1.
func (i *Interner) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.byID)
}

// Snapshot returns a copy of every interned string, indexed by ID.
func (i *Interner) Snapshot() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.byID)
}

// IsBuiltin reports whether id is one of the pre-seeded identifiers.
func IsBuiltin(id StringID) bool {
	return id >= SymUnderscore && id <= SymStd
}
