package odds

import (
	"math"

	"github.com/charleschow/match-features/internal/core/matches"
)

// MatchOdds holds the row-local features derived from a match's score
// and its Bet365 1X2 prices.
type MatchOdds struct {
	GoalDiff int
	HomeFav  int // 1 when the home price is strictly shorter than the away price
	PHome    float64
	PDraw    float64
	PAway    float64
}

// Derive computes the odds/outcome features for one match. Invalid
// prices yield NaN probabilities rather than an error.
func Derive(m matches.Match) MatchOdds {
	out := MatchOdds{GoalDiff: m.FTHG - m.FTAG}
	if m.B365H < m.B365A {
		out.HomeFav = 1
	}
	out.PHome, out.PDraw, out.PAway = RemoveVig3(m.B365H, m.B365D, m.B365A)
	return out
}

// Valid reports whether all three probabilities are defined.
func (o MatchOdds) Valid() bool {
	return !math.IsNaN(o.PHome) && !math.IsNaN(o.PDraw) && !math.IsNaN(o.PAway)
}

// RemoveVig3 converts three-way decimal odds to fair probabilities by
// stripping the bookmaker's overround. Any missing, zero or negative
// price makes all three results NaN.
func RemoveVig3(a, b, c float64) (float64, float64, float64) {
	if !validPrice(a) || !validPrice(b) || !validPrice(c) {
		nan := math.NaN()
		return nan, nan, nan
	}
	rawA := 1.0 / a
	rawB := 1.0 / b
	rawC := 1.0 / c
	total := rawA + rawB + rawC
	return rawA / total, rawB / total, rawC / total
}

// Overround returns the bookmaker margin implied by three-way decimal odds
// (0.05 means the raw implied probabilities sum to 1.05).
func Overround(a, b, c float64) float64 {
	if !validPrice(a) || !validPrice(b) || !validPrice(c) {
		return math.NaN()
	}
	return 1.0/a + 1.0/b + 1.0/c - 1.0
}

func validPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0)
}
