// Package corpus loads verse-aligned text and checks that two corpora cover
// the same verses.
//
// A Corpus maps verse IDs to the normalised tokens of that verse. Verses are
// aligned across languages by ID, never by position; IDs returns them in the
// fixed order encoding relies on.
package corpus

// Corpus is one language side of a verse-aligned parallel text.
type Corpus struct {
	// Path is the file the corpus was loaded from, if any.
	Path string

	// Format is the format the corpus was parsed as.
	Format Format

	verses map[VerseID][]string
}

// New returns an empty corpus.
func New(path string, format Format) *Corpus {
	return &Corpus{
		Path:   path,
		Format: format,
		verses: make(map[VerseID][]string),
	}
}

// Append adds tokens to the verse with the given ID, creating it if needed.
// Appending no tokens still registers the verse.
func (c *Corpus) Append(id VerseID, tokens ...string) {
	c.verses[id] = append(c.verses[id], tokens...)
	if c.verses[id] == nil {
		c.verses[id] = []string{}
	}
}

// Has reports whether the corpus contains the verse.
func (c *Corpus) Has(id VerseID) bool {
	_, ok := c.verses[id]
	return ok
}

// Tokens returns the tokens of a verse.
func (c *Corpus) Tokens(id VerseID) ([]string, bool) {
	tokens, ok := c.verses[id]
	return tokens, ok
}

// Len returns the number of verses.
func (c *Corpus) Len() int {
	return len(c.verses)
}

// TokenCount returns the total number of tokens across all verses.
func (c *Corpus) TokenCount() int {
	n := 0
	for _, tokens := range c.verses {
		n += len(tokens)
	}
	return n
}

// IDs returns every verse ID in CompareVerseIDs order.
func (c *Corpus) IDs() []VerseID {
	ids := make([]VerseID, 0, len(c.verses))
	for id := range c.verses {
		ids = append(ids, id)
	}
	SortVerseIDs(ids)
	return ids
}

// Restrict returns a corpus holding only the listed verses that c contains.
// Token slices are shared with c.
func (c *Corpus) Restrict(ids []VerseID) *Corpus {
	out := New(c.Path, c.Format)
	for _, id := range ids {
		if tokens, ok := c.verses[id]; ok {
			out.verses[id] = tokens
		}
	}
	return out
}
