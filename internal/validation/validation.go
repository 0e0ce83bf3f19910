// Package validation checks user-supplied paths and sniffs file contents so
// that commands fail early, with a clear error, on the wrong kind of file.
package validation

import (
	"bytes"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/FocuswithJustin/JuniperGloss/core/errors"
)

// MaxPathLength is the maximum allowed path length.
const MaxPathLength = 4096

// sniffSize is how much of a file DetectFileType looks at; enough for the
// tar header magic at offset 257.
const sniffSize = 512

// ValidatePath checks for empty paths, length limits and control characters.
func ValidatePath(path string) error {
	if path == "" {
		return errors.NewValidation("path", "path cannot be empty")
	}
	if len(path) > MaxPathLength {
		return errors.NewValidation("path", "path too long")
	}
	if strings.Contains(path, "\x00") {
		return errors.NewValidation("path", "null byte not allowed")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return errors.NewValidation("path", "control character not allowed")
		}
	}
	return nil
}

// FileType is a file kind recognised from its leading bytes.
type FileType string

const (
	FileTypeTar     FileType = "tar"
	FileTypeGzip    FileType = "gzip"
	FileTypeXZ      FileType = "xz"
	FileTypeZip     FileType = "zip"
	FileTypeSQLite  FileType = "sqlite"
	FileTypeText    FileType = "text"
	FileTypeEmpty   FileType = "empty"
	FileTypeUnknown FileType = "unknown"
)

// magicBytes defines magic byte signatures for file type detection.
var magicBytes = []struct {
	fileType FileType
	magic    []byte
	offset   int
}{
	{FileTypeTar, []byte("ustar"), 257},
	{FileTypeGzip, []byte{0x1f, 0x8b}, 0},
	{FileTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, 0},
	{FileTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}, 0},
	{FileTypeSQLite, []byte("SQLite format 3\x00"), 0},
}

// DetectFileType classifies the first bytes read from r.
func DetectFileType(r io.Reader) (FileType, error) {
	buf := make([]byte, sniffSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FileTypeUnknown, errors.Wrap(err, "read file header")
	}
	buf = buf[:n]

	if len(buf) == 0 {
		return FileTypeEmpty, nil
	}
	for _, sig := range magicBytes {
		if sig.offset+len(sig.magic) <= len(buf) &&
			bytes.Equal(buf[sig.offset:sig.offset+len(sig.magic)], sig.magic) {
			return sig.fileType, nil
		}
	}
	if isLikelyText(buf) {
		return FileTypeText, nil
	}
	return FileTypeUnknown, nil
}

// CheckCorpusFile rejects a corpus path that is not a readable text file.
// Compressed archives and databases are reported as unsupported.
func CheckCorpusFile(path string) error {
	ft, err := detectPath(path)
	if err != nil {
		return err
	}
	switch ft {
	case FileTypeText, FileTypeEmpty:
		return nil
	case FileTypeUnknown:
		return errors.NewUnsupported("corpus file", path+" does not look like text")
	default:
		return errors.NewUnsupported("corpus file", path+" is "+string(ft)+", not text")
	}
}

// CheckLexiconFile rejects a lexicon path that is not a SQLite database.
func CheckLexiconFile(path string) error {
	ft, err := detectPath(path)
	if err != nil {
		return err
	}
	if ft != FileTypeSQLite {
		return errors.NewValidation("lexicon", path+" is not a SQLite database")
	}
	return nil
}

func detectPath(path string) (FileType, error) {
	if err := ValidatePath(path); err != nil {
		return FileTypeUnknown, err
	}
	f, err := os.Open(path)
	if err != nil {
		return FileTypeUnknown, errors.NewIO("open", path, err)
	}
	defer f.Close()
	return DetectFileType(f)
}

// isLikelyText reports whether buf has no NUL bytes and at most 5% control
// characters. Bytes >= 0x80 are neutral so any UTF-8 script passes.
func isLikelyText(buf []byte) bool {
	if bytes.IndexByte(buf, 0) != -1 {
		return false
	}
	control := 0
	for _, b := range buf {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' && b != '\f' {
			control++
		}
	}
	return float64(control) <= 0.05*float64(len(buf))
}
