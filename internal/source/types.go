package source

// FileFlags encodes what happened to a file's bytes while loading it.
type FileFlags uint8

const (
	// FileVirtual indicates the file was added from memory (stdin, tests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileMarkup marks html-like content whose scripts are linted separately.
	FileMarkup
)

// File captures metadata and content for a single source file.
type File struct {
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// Chunk is a piece of a file handed to the engine on its own.
type Chunk struct {
	Text string
	// LineOffset is the number of lines preceding Text in the file.
	LineOffset int
}
