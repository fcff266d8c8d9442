package source

// FileID identifies a loaded source file within a FileSet.
type FileID uint32

// FileFlags records how a file's bytes were normalized on load.
type FileFlags uint8

const (
	// FileVirtual marks a file added from memory (stdin, test fixture) rather than disk.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File holds the normalized content and derived line index for one source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offset of every '\n', 0-based
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based human-readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}
