package corpus

import (
	"github.com/FocuswithJustin/JuniperGloss/core/errors"
)

// maxMissingSample bounds the verse IDs listed in an AlignmentError.
const maxMissingSample = 5

// CheckAligned returns an *errors.AlignmentError unless src and trg contain
// exactly the same verse IDs.
func CheckAligned(src, trg *Corpus) error {
	var missingInTarget, missingInSource []string
	for _, id := range src.IDs() {
		if !trg.Has(id) {
			missingInTarget = append(missingInTarget, string(id))
		}
	}
	for _, id := range trg.IDs() {
		if !src.Has(id) {
			missingInSource = append(missingInSource, string(id))
		}
	}

	if src.Len() == trg.Len() && len(missingInTarget) == 0 && len(missingInSource) == 0 {
		return nil
	}
	return &errors.AlignmentError{
		SourceVerses:    src.Len(),
		TargetVerses:    trg.Len(),
		MissingInTarget: truncate(missingInTarget),
		MissingInSource: truncate(missingInSource),
	}
}

// CommonIDs returns the verse IDs present in both corpora, sorted.
func CommonIDs(src, trg *Corpus) []VerseID {
	var ids []VerseID
	for _, id := range src.IDs() {
		if trg.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func truncate(ids []string) []string {
	if len(ids) > maxMissingSample {
		return ids[:maxMissingSample]
	}
	return ids
}
