package corpus

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/FocuswithJustin/JuniperGloss/core/ngram"
)

// Normalizer turns a line of text into tokens. Training text and text to be
// glossed must go through the same Normalizer.
type Normalizer struct {
	// Lowercase applies Unicode case folding.
	Lowercase bool
}

// Tokenize splits line on whitespace after NFC normalisation. The n-gram
// boundary sentinel is removed from every token and tokens left empty are
// dropped.
func (n Normalizer) Tokenize(line string) []string {
	line = norm.NFC.String(line)
	if n.Lowercase {
		// a Caser is stateful, so one per call
		line = cases.Fold().String(line)
	}

	fields := strings.Fields(line)
	tokens := fields[:0]
	for _, f := range fields {
		f = strings.ReplaceAll(f, string(ngram.Sentinel), "")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
