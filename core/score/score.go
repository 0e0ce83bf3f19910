// Package score holds the association measures used to rank candidate
// translations. A Scorer turns the verse co-occurrence statistics of a
// source and a target n-gram into a single number: higher means stronger
// association, and anything at or below zero means no usable association.
//
// Every Scorer must be deterministic, never decrease when Both grows with
// the other counts fixed, and decrease as either marginal frequency grows
// with Both fixed.
package score

import (
	"sort"

	"github.com/FocuswithJustin/JuniperGloss/core/errors"
)

// Counts are the statistics of one (source, target) n-gram pair.
type Counts struct {
	// Verses is the number of aligned verses.
	Verses int
	// Both is the number of verses containing both n-grams.
	Both int
	// Source is the number of verses containing the source n-gram.
	Source int
	// Target is the number of verses containing the target n-gram.
	Target int
	// NGrams is the size of the source n-gram vocabulary.
	NGrams int
}

// Scorer measures association between a source and a target n-gram.
type Scorer interface {
	Score(c Counts) float64
}

// Func adapts a function to Scorer.
type Func func(c Counts) float64

// Score calls f.
func (f Func) Score(c Counts) float64 {
	return f(c)
}

// Default is the scorer name used when none is given.
const Default = "betabinomial"

var registry = map[string]Scorer{
	"betabinomial": BetaBinomial{},
	"llr":          LogLikelihood{},
}

// Lookup returns the scorer registered under name.
func Lookup(name string) (Scorer, error) {
	if name == "" {
		name = Default
	}
	s, ok := registry[name]
	if !ok {
		return nil, errors.NewNotFound("scorer", name)
	}
	return s, nil
}

// Names returns the registered scorer names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
