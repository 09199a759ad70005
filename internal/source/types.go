package source

type (
	// FileID uniquely identifies a dump within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a dump was loaded.
	FileFlags uint8
)

const (
	// FileVirtual indicates the dump was added from memory (test, stdin).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a UTF-8 BOM was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF indicates CRLF line endings were normalized on load.
	FileNormalizedCRLF
)

// File holds the raw text of a single NetLog dump plus load metadata.
// Content is never mutated after Add; all later stages work on spans into it.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // смещения всех '\n', для перевода offset -> line:col
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position inside a dump.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
