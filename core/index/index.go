// Package index builds the n-gram index of an encoded corpus: the n-gram
// vocabulary, which verses contain each n-gram, and the cross-language
// co-occurrence query that lexicon induction runs per target n-gram.
//
// Verse numbers are positions in the encoded verse list. Two indexes built
// from encodings with the same verse list share verse numbers, which is what
// makes co-occurrence between them meaningful.
package index

import (
	"slices"
	"strings"

	"github.com/FocuswithJustin/JuniperGloss/core/corpus"
	"github.com/FocuswithJustin/JuniperGloss/core/ngram"
)

// Position locates one occurrence of an n-gram: verse number, token index
// within the verse, and rune offset within the padded token.
type Position struct {
	Verse  int32
	Token  int32
	Offset int32
}

// Index is an immutable n-gram index. It is safe for concurrent reads.
type Index struct {
	enc *Encoded

	vocab  []string
	lookup map[string]int32

	// typeGrams[t] lists the distinct n-grams of token type t, ascending.
	typeGrams [][]int32
	// postings[g] lists the distinct verses containing n-gram g, ascending.
	postings [][]int32
	// forward[v] lists the distinct n-grams of verse v, ascending.
	forward [][]int32
}

// New indexes enc. The n-gram vocabulary is sorted, so n-gram numbers depend
// only on the set of n-grams in the corpus.
func New(enc *Encoded) *Index {
	typeStrings := make([][]string, len(enc.Types))
	seen := make(map[string]struct{})
	for t, tok := range enc.Types {
		grams := distinct(ngram.Collect(tok))
		typeStrings[t] = grams
		for _, g := range grams {
			seen[g] = struct{}{}
		}
	}

	vocab := make([]string, 0, len(seen))
	for g := range seen {
		vocab = append(vocab, g)
	}
	slices.Sort(vocab)

	lookup := make(map[string]int32, len(vocab))
	for i, g := range vocab {
		lookup[g] = int32(i)
	}

	typeGrams := make([][]int32, len(enc.Types))
	for t, grams := range typeStrings {
		ids := make([]int32, len(grams))
		for i, g := range grams {
			ids[i] = lookup[g]
		}
		slices.Sort(ids)
		typeGrams[t] = ids
	}

	idx := &Index{
		enc:       enc,
		vocab:     vocab,
		lookup:    lookup,
		typeGrams: typeGrams,
		postings:  make([][]int32, len(vocab)),
		forward:   make([][]int32, len(enc.Verses)),
	}

	for v, verse := range enc.Verses {
		var grams []int32
		for _, ty := range verse {
			grams = append(grams, typeGrams[ty]...)
		}
		slices.Sort(grams)
		grams = slices.Compact(grams)
		idx.forward[v] = slices.Clip(grams)
		for _, g := range grams {
			idx.postings[g] = append(idx.postings[g], int32(v))
		}
	}
	return idx
}

// Build encodes c restricted to ids and indexes it.
func Build(c *corpus.Corpus, ids []corpus.VerseID) (*Index, error) {
	enc, err := Encode(c, ids)
	if err != nil {
		return nil, err
	}
	return New(enc), nil
}

// Encoded returns the encoding the index was built from.
func (x *Index) Encoded() *Encoded {
	return x.enc
}

// Verses returns the number of verses.
func (x *Index) Verses() int {
	return len(x.enc.Verses)
}

// NGrams returns the size of the n-gram vocabulary.
func (x *Index) NGrams() int {
	return len(x.vocab)
}

// Vocabulary returns the n-gram vocabulary indexed by n-gram number.
// The slice must not be modified.
func (x *Index) Vocabulary() []string {
	return x.vocab
}

// NGram returns the n-gram with the given number.
func (x *Index) NGram(id int32) string {
	return x.vocab[id]
}

// Lookup returns the number of an n-gram.
func (x *Index) Lookup(gram string) (int32, bool) {
	id, ok := x.lookup[gram]
	return id, ok
}

// VerseID returns the ID of a verse number.
func (x *Index) VerseID(verse int32) corpus.VerseID {
	return x.enc.VerseIDs[verse]
}

// VerseFrequency returns the number of distinct verses containing an n-gram.
func (x *Index) VerseFrequency(id int32) int {
	return len(x.postings[id])
}

// VersesContaining returns the verses containing an n-gram in ascending
// order. The slice must not be modified.
func (x *Index) VersesContaining(id int32) []int32 {
	return x.postings[id]
}

// Positions returns every occurrence of an n-gram, in verse, token and
// offset order.
func (x *Index) Positions(id int32) []Position {
	gram := x.vocab[id]
	var out []Position
	for _, v := range x.postings[id] {
		for t, ty := range x.enc.Verses[v] {
			if _, ok := slices.BinarySearch(x.typeGrams[ty], id); !ok {
				continue
			}
			padded := ngram.Pad(x.enc.Types[ty])
			runeOffset := 0
			for byteOffset := range padded {
				if strings.HasPrefix(padded[byteOffset:], gram) {
					out = append(out, Position{Verse: v, Token: int32(t), Offset: int32(runeOffset)})
				}
				runeOffset++
			}
		}
	}
	return out
}

// CoOccurring reports every n-gram occurring in at least one of verses and,
// for each, the number of distinct listed verses it occurs in. Results are
// ordered by n-gram number. Repeated or out-of-range verse numbers are
// ignored, so no count exceeds the number of distinct valid verses.
func (x *Index) CoOccurring(verses []int32) (ids []int32, counts []int32) {
	return x.NewJoiner().CoOccurring(verses)
}

func distinct(grams []string) []string {
	slices.Sort(grams)
	return slices.Compact(grams)
}
