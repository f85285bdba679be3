package source

// FileID names a file inside one FileSet, numbered in order of addition.
type FileID uint32

// FileFlags records what loading did to a file's bytes.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // added from memory, not read from disk
	FileHadBOM                               // a UTF-8 BOM was stripped
	FileNormalizedCRLF                       // "\r\n" became "\n"
)

// File is one immutable version of a source file.
type File struct {
	ID   FileID
	Path string
	// Content is normalized: no BOM, no CRLF. Spans index into it.
	Content []byte
	// LineIdx holds the offset of every '\n' in Content, ascending.
	LineIdx []uint32
	Hash    [32]byte // sha256 of Content
	Flags   FileFlags
}

// LineCol is a 1-based position; Col counts bytes, not runes.
type LineCol struct {
	Line uint32
	Col  uint32
}
