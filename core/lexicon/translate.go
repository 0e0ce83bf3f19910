package lexicon

import (
	"github.com/FocuswithJustin/JuniperGloss/core/ngram"
)

// Match is the lexicon entry chosen for a token and the token n-gram that
// selected it.
type Match struct {
	Target string
	Entry
}

// Best returns the highest-ranked lexicon entry keyed by any n-gram of token.
// Entries rank by Weight, then Score, then longer target key, then smaller
// source and smaller target for determinism.
func (l *Lexicon) Best(token string) (Match, bool) {
	var (
		top Match
		ok  bool
	)
	for gram := range ngram.Enumerate(token) {
		e, hit := l.entries[gram]
		if !hit {
			continue
		}
		cand := Match{Target: gram, Entry: e}
		if !ok || betterMatch(cand, top) {
			top, ok = cand, true
		}
	}
	return top, ok
}

// Translate returns the source n-gram glossing token. The result may carry
// boundary sentinels; see ngram.Strip. ok is false when no n-gram of the
// token is in the lexicon.
func (l *Lexicon) Translate(token string) (string, bool) {
	m, ok := l.Best(token)
	if !ok {
		return "", false
	}
	return m.Source, true
}

func betterMatch(a, b Match) bool {
	if c := compareEntries(a.Entry, b.Entry); c != 0 {
		return c > 0
	}
	if la, lb := ngram.Len(a.Target), ngram.Len(b.Target); la != lb {
		return la > lb
	}
	return a.Target < b.Target
}
