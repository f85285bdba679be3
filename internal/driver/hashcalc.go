package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Digest is a SHA-256 content hash.
type Digest [sha256.Size]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

func (d Digest) IsZero() bool { return d == Digest{} }

// combineDigest: H(content || part1 || part2 ...). Parts are in a fixed order.
func combineDigest(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey identifies the diagnostics of one file: its normalized content
// plus every option that changes what the parser reports.
func cacheKey(content []byte, opts Options) Digest {
	var settings [16]byte
	binary.LittleEndian.PutUint16(settings[0:], diskCacheSchemaVersion)
	if opts.NormalizeIdents {
		settings[2] = 1
	}
	if opts.WarningsAsErrors {
		settings[3] = 1
	}
	binary.LittleEndian.PutUint64(settings[8:], uint64(max(opts.MaxDiagnostics, 0)))
	return combineDigest(sha256.Sum256(content), sha256.Sum256(settings[:]))
}
