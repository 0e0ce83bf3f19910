// Package lexicon induces a target-to-source n-gram lexicon from a pair of
// verse-aligned indexes and uses it to gloss tokens.
package lexicon

import (
	"cmp"
	"slices"

	"github.com/FocuswithJustin/JuniperGloss/core/ngram"
)

// Entry is the best-supported source n-gram for one target n-gram.
type Entry struct {
	Score  float64
	Source string
}

// Weight is the ranking key shared by induction and translation: score
// times the rune length of the source n-gram, so longer and more specific
// grams win over short frequent fragments.
func (e Entry) Weight() float64 {
	return e.Score * float64(ngram.Len(e.Source))
}

// compareEntries orders entries by Weight, then Score, then prefers the
// lexicographically smaller source. Positive means a ranks above b.
func compareEntries(a, b Entry) int {
	return cmp.Or(
		cmp.Compare(a.Weight(), b.Weight()),
		cmp.Compare(a.Score, b.Score),
		cmp.Compare(b.Source, a.Source),
	)
}

// Lexicon maps target n-grams to entries. It is not modified after
// induction or loading and is safe for concurrent reads.
type Lexicon struct {
	entries map[string]Entry
}

// New returns an empty lexicon.
func New() *Lexicon {
	return &Lexicon{entries: make(map[string]Entry)}
}

// FromMap builds a lexicon from target -> entry pairs. Entries with a score
// that is not strictly positive are dropped.
func FromMap(m map[string]Entry) *Lexicon {
	lex := New()
	for target, e := range m {
		if e.Score > 0 {
			lex.entries[target] = e
		}
	}
	return lex
}

// Lookup returns the entry for a target n-gram.
func (l *Lexicon) Lookup(target string) (Entry, bool) {
	e, ok := l.entries[target]
	return e, ok
}

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// Targets returns every target n-gram, sorted.
func (l *Lexicon) Targets() []string {
	targets := make([]string, 0, len(l.entries))
	for t := range l.entries {
		targets = append(targets, t)
	}
	slices.Sort(targets)
	return targets
}

// Equal reports whether two lexicons hold the same entries.
func (l *Lexicon) Equal(o *Lexicon) bool {
	if l.Len() != o.Len() {
		return false
	}
	for t, e := range l.entries {
		if oe, ok := o.entries[t]; !ok || oe != e {
			return false
		}
	}
	return true
}
