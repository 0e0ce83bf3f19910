package corpus

import (
	"cmp"
	"slices"
	"strconv"
)

// VerseID identifies a verse across both languages of a parallel corpus.
type VerseID string

const (
	classNumeric = iota
	classRef
	classOther
)

type sortKey struct {
	class int
	num   uint64
	ref   *Ref
	raw   string
}

func keyOf(id VerseID) sortKey {
	s := string(id)
	if isDigits(s) {
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			return sortKey{class: classNumeric, num: n, raw: s}
		}
	}
	if ref, err := ParseRef(s); err == nil {
		return sortKey{class: classRef, ref: ref, raw: s}
	}
	return sortKey{class: classOther, raw: s}
}

func compareKeys(a, b sortKey) int {
	if c := cmp.Compare(a.class, b.class); c != 0 {
		return c
	}
	switch a.class {
	case classNumeric:
		if c := cmp.Compare(a.num, b.num); c != 0 {
			return c
		}
	case classRef:
		if c := a.ref.Compare(b.ref); c != 0 {
			return c
		}
	}
	// "007" and "7" are distinct IDs
	return cmp.Compare(a.raw, b.raw)
}

// CompareVerseIDs orders decimal IDs numerically, then OSIS references, then
// everything else lexically.
func CompareVerseIDs(a, b VerseID) int {
	return compareKeys(keyOf(a), keyOf(b))
}

// SortVerseIDs sorts ids in place in CompareVerseIDs order.
func SortVerseIDs(ids []VerseID) {
	keys := make(map[VerseID]sortKey, len(ids))
	for _, id := range ids {
		if _, ok := keys[id]; !ok {
			keys[id] = keyOf(id)
		}
	}
	slices.SortFunc(ids, func(a, b VerseID) int {
		return compareKeys(keys[a], keys[b])
	})
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
