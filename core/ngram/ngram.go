// Package ngram enumerates the boundary-marked character n-grams of a token.
//
// A token is padded with one Sentinel on each side before enumeration, so
// prefix and suffix grams ("#ca", "at#") stay distinct from infix grams of the
// same letters. Lengths are counted in runes, sentinels included.
package ngram

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// Sentinel marks the start and end of a token.
const Sentinel = '#'

const sentinel = string(Sentinel)

// Pad surrounds token with boundary sentinels.
func Pad(token string) string {
	return sentinel + token + sentinel
}

// Strip removes the leading and trailing sentinel, if present, for display.
func Strip(gram string) string {
	gram = strings.TrimPrefix(gram, sentinel)
	return strings.TrimSuffix(gram, sentinel)
}

// Len returns the length of gram in runes.
func Len(gram string) int {
	return utf8.RuneCountInString(gram)
}

// Count returns the number of grams Enumerate yields for token.
func Count(token string) int {
	l := Len(token) + 2
	return l * (l + 1) / 2
}

// Enumerate yields every contiguous substring of the padded token, ordered
// by start offset and then by end offset. Duplicate substrings are yielded
// once per occurrence.
func Enumerate(token string) iter.Seq[string] {
	return func(yield func(string) bool) {
		padded := Pad(token)
		// byte offsets of every rune boundary, including len(padded)
		bounds := make([]int, 0, len(padded)+1)
		for i := range padded {
			bounds = append(bounds, i)
		}
		bounds = append(bounds, len(padded))

		for i := 0; i < len(bounds)-1; i++ {
			for j := i + 1; j < len(bounds); j++ {
				if !yield(padded[bounds[i]:bounds[j]]) {
					return
				}
			}
		}
	}
}

// Collect returns the grams of token as a slice.
func Collect(token string) []string {
	grams := make([]string, 0, Count(token))
	for g := range Enumerate(token) {
		grams = append(grams, g)
	}
	return grams
}
