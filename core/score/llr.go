package score

import "math"

// LogLikelihood is Dunning's log-likelihood ratio (G²) over the 2x2 verse
// contingency table, signed by the direction of association: positive only
// when the pair co-occurs more often than independence predicts.
type LogLikelihood struct{}

// Score implements Scorer.
func (LogLikelihood) Score(c Counts) float64 {
	n := float64(c.Verses)
	if n <= 0 {
		return 0
	}

	k11 := float64(c.Both)
	k12 := float64(c.Source) - k11
	k21 := float64(c.Target) - k11
	k22 := n - k11 - k12 - k21
	if k12 < 0 || k21 < 0 || k22 < 0 {
		return 0
	}

	g2 := 2 * (xlogx(k11) + xlogx(k12) + xlogx(k21) + xlogx(k22) -
		xlogx(k11+k12) - xlogx(k11+k21) - xlogx(k12+k22) - xlogx(k21+k22) +
		xlogx(n))
	if g2 < 0 {
		// rounding
		g2 = 0
	}

	expected := float64(c.Source) * float64(c.Target) / n
	if k11 < expected {
		return -g2
	}
	if k11 == expected {
		return 0
	}
	return g2
}

func xlogx(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return x * math.Log(x)
}
