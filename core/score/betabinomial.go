package score

import "math"

// BetaBinomial compares the rate at which the source n-gram appears in
// verses containing the target n-gram against its overall rate.
//
// The conditional rate is the posterior mean of a binomial rate under a
// uniform Beta(1,1) prior, (Both+1)/(Target+2). The overall rate is
// smoothed by a pseudo-count of 1/NGrams, (Source+1/NGrams)/(Verses+1),
// so a gram seen everywhere in a tiny corpus still scores below one seen
// with its partner only. The log ratio r is returned as is when r <= 0 and
// scaled by Both otherwise, weighting positive evidence by its support.
type BetaBinomial struct{}

// Score implements Scorer.
func (BetaBinomial) Score(c Counts) float64 {
	if c.Verses <= 0 || c.Target < 0 || c.Both < 0 {
		return 0
	}

	prior := 1.0
	if c.NGrams > 0 {
		prior = 1 / float64(c.NGrams)
	}

	conditional := (float64(c.Both) + 1) / (float64(c.Target) + 2)
	marginal := (float64(c.Source) + prior) / (float64(c.Verses) + 1)

	r := math.Log(conditional / marginal)
	if r <= 0 {
		return r
	}
	return float64(c.Both) * r
}
