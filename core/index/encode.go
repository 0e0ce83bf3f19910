package index

import (
	"github.com/FocuswithJustin/JuniperGloss/core/corpus"
	"github.com/FocuswithJustin/JuniperGloss/core/errors"
)

// Encoded is the numeric form of a corpus restricted to an ordered verse set.
// It is what the encoded-corpus cache persists.
type Encoded struct {
	// VerseIDs gives the ID of each verse number.
	VerseIDs []corpus.VerseID `json:"verse_ids"`

	// Types is the token vocabulary in first-occurrence order.
	Types []string `json:"types"`

	// Verses holds, per verse number, the token type of each token.
	Verses [][]uint32 `json:"verses"`
}

// Encode numbers the tokens of c, taking verses in the order of ids.
// Every ID must be present in c.
func Encode(c *corpus.Corpus, ids []corpus.VerseID) (*Encoded, error) {
	enc := &Encoded{
		VerseIDs: append([]corpus.VerseID(nil), ids...),
		Verses:   make([][]uint32, len(ids)),
	}
	types := make(map[string]uint32)

	for v, id := range ids {
		tokens, ok := c.Tokens(id)
		if !ok {
			return nil, errors.NewNotFound("verse", string(id))
		}
		verse := make([]uint32, len(tokens))
		for i, tok := range tokens {
			ty, seen := types[tok]
			if !seen {
				ty = uint32(len(enc.Types))
				types[tok] = ty
				enc.Types = append(enc.Types, tok)
			}
			verse[i] = ty
		}
		enc.Verses[v] = verse
	}
	return enc, nil
}

// Validate checks that token references are in range and verse counts agree.
func (e *Encoded) Validate() error {
	if len(e.VerseIDs) != len(e.Verses) {
		return errors.NewValidation("verses", "verse ID count does not match verse count")
	}
	for _, verse := range e.Verses {
		for _, ty := range verse {
			if int(ty) >= len(e.Types) {
				return errors.NewValidation("verses", "token type out of range")
			}
		}
	}
	return nil
}
