package corpus

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/JuniperGloss/core/errors"
)

// Format names an on-disk corpus layout.
type Format string

const (
	// FormatAuto picks a format from the file extension and contents.
	FormatAuto Format = "auto"
	// FormatText is one verse per line, identified by its 1-based line number.
	FormatText Format = "text"
	// FormatTSV is "ID<TAB>text" per line.
	FormatTSV Format = "tsv"
	// FormatOSIS is OSIS XML with container or milestone verses.
	FormatOSIS Format = "osis"
)

// Formats lists the formats accepted by Load.
var Formats = []Format{FormatAuto, FormatText, FormatTSV, FormatOSIS}

// LoadOptions controls corpus parsing.
type LoadOptions struct {
	Format     Format
	Normalizer Normalizer
}

// Injectable for tests.
var osReadFile = os.ReadFile

const maxLineSize = 16 * 1024 * 1024

// Load reads and parses the corpus at path.
func Load(path string, opts LoadOptions) (*Corpus, error) {
	data, err := osReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read corpus", path, err)
	}
	return Parse(path, data, opts)
}

// Parse parses corpus data. path is used for format detection and error messages.
func Parse(path string, data []byte, opts LoadOptions) (*Corpus, error) {
	format := opts.Format
	if format == "" || format == FormatAuto {
		format = DetectFormat(path, data)
	}

	switch format {
	case FormatText:
		return parseText(path, bytes.NewReader(data), opts.Normalizer)
	case FormatTSV:
		return parseTSV(path, bytes.NewReader(data), opts.Normalizer)
	case FormatOSIS:
		return parseOSIS(path, bytes.NewReader(data), opts.Normalizer)
	default:
		return nil, errors.NewUnsupported("corpus format", string(format))
	}
}

// DetectFormat guesses the format of a corpus file.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml", ".osis":
		return FormatOSIS
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if bytes.HasPrefix(trimmed, []byte("<?xml")) || bytes.HasPrefix(trimmed, []byte("<osis")) {
		return FormatOSIS
	}

	line, _, _ := bytes.Cut(trimmed, []byte("\n"))
	if bytes.ContainsRune(line, '\t') {
		return FormatTSV
	}
	return FormatText
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	return scanner
}

func parseText(path string, r io.Reader, n Normalizer) (*Corpus, error) {
	c := New(path, FormatText)
	scanner := newScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		c.Append(VerseID(strconv.Itoa(lineNo)), n.Tokenize(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewIO("scan", path, err)
	}
	return c, nil
}

func parseTSV(path string, r io.Reader, n Normalizer) (*Corpus, error) {
	c := New(path, FormatTSV)
	scanner := newScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		rawID, text, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, errors.NewParse("tsv", path, lineNo, "missing tab separator")
		}
		id := VerseID(strings.TrimSpace(strings.TrimPrefix(rawID, "\ufeff")))
		if id == "" {
			return nil, errors.NewParse("tsv", path, lineNo, "empty verse ID")
		}
		if c.Has(id) {
			return nil, errors.NewParse("tsv", path, lineNo, "duplicate verse ID "+string(id))
		}
		c.Append(id, n.Tokenize(text)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewIO("scan", path, err)
	}
	return c, nil
}
