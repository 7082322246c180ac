// Package rating maintains per-team Elo ratings over a chronological
// traversal of the match table.
package rating

import (
	"fmt"
	"math"

	"github.com/charleschow/match-features/internal/core/matches"
)

// EloParams configures the rating update.
type EloParams struct {
	K     float64 // update step
	Start float64 // rating assigned on a team's first appearance
}

func DefaultEloParams() EloParams {
	return EloParams{K: 20, Start: 1500}
}

// PreMatch is the rating pair emitted for a match before its result is
// applied.
type PreMatch struct {
	Home float64
	Away float64
	Diff float64
}

// Elo holds the rating map for one traversal. It is not safe for
// concurrent use; a traversal is sequential by nature.
type Elo struct {
	params  EloParams
	ratings map[string]float64
}

func NewElo(p EloParams) *Elo {
	return &Elo{params: p, ratings: make(map[string]float64)}
}

// Rating returns the team's current rating, or the start rating for a
// team not seen yet. It does not register the team.
func (e *Elo) Rating(team string) float64 {
	if r, ok := e.ratings[team]; ok {
		return r
	}
	return e.params.Start
}

// Teams returns the number of teams rated so far.
func (e *Elo) Teams() int { return len(e.ratings) }

// Expected returns the expected scores of a home rating rh against an
// away rating ra. The two values sum to 1.
func Expected(rh, ra float64) (home, away float64) {
	home = 1.0 / (1.0 + math.Pow(10, (ra-rh)/400))
	return home, 1.0 - home
}

// Play emits the pre-match ratings for home v away and then applies
// result r to both teams.
func (e *Elo) Play(home, away string, r matches.Result) (PreMatch, error) {
	sh, sa, err := r.Scores()
	if err != nil {
		return PreMatch{}, fmt.Errorf("elo %s v %s: %w", home, away, err)
	}

	rh, ra := e.Rating(home), e.Rating(away)
	pre := PreMatch{Home: rh, Away: ra, Diff: rh - ra}

	expHome, expAway := Expected(rh, ra)
	e.ratings[home] = rh + e.params.K*(sh-expHome)
	e.ratings[away] = ra + e.params.K*(sa-expAway)
	return pre, nil
}

// Run replays the whole table in date order with a fresh rating map and
// returns the pre-match ratings indexed by match ID. Ratings carry over
// season boundaries.
func Run(t matches.Table, p EloParams) ([]PreMatch, error) {
	e := NewElo(p)
	out := make([]PreMatch, len(t))
	for _, i := range t.ChronologicalOrder() {
		m := t[i]
		pre, err := e.Play(m.HomeTeam, m.AwayTeam, m.Result)
		if err != nil {
			return nil, fmt.Errorf("match %d (%s): %w", m.ID, m.SeasonFile, err)
		}
		out[i] = pre
	}
	return out, nil
}
