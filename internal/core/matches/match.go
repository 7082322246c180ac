// Package matches holds the canonical in-memory match table that every
// feature stage reads.
package matches

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownResult is returned for any result code outside {0, 1, 2}.
// The code drives points and Elo scoring, so it is always fatal.
var ErrUnknownResult = errors.New("unknown result code")

// Result is the full-time outcome from the home side's perspective.
// The numeric values are part of the loader wire contract.
type Result int

const (
	HomeWin Result = 0
	Draw    Result = 1
	AwayWin Result = 2
)

func (r Result) Valid() bool { return r >= HomeWin && r <= AwayWin }

func (r Result) String() string {
	switch r {
	case HomeWin:
		return "HomeWin"
	case Draw:
		return "Draw"
	case AwayWin:
		return "AwayWin"
	}
	return "Result(" + strconv.Itoa(int(r)) + ")"
}

// Points returns league points for (home, away).
func (r Result) Points() (home, away int, err error) {
	switch r {
	case HomeWin:
		return 3, 0, nil
	case Draw:
		return 1, 1, nil
	case AwayWin:
		return 0, 3, nil
	}
	return 0, 0, fmt.Errorf("%w: %d", ErrUnknownResult, int(r))
}

// Scores returns the Elo actual-score pair for (home, away).
func (r Result) Scores() (home, away float64, err error) {
	switch r {
	case HomeWin:
		return 1, 0, nil
	case Draw:
		return 0.5, 0.5, nil
	case AwayWin:
		return 0, 1, nil
	}
	return 0, 0, fmt.Errorf("%w: %d", ErrUnknownResult, int(r))
}

// ParseResult accepts the numeric encoding ("0", "1", "2") and the
// football-data FTR letters ("H", "D", "A").
func ParseResult(s string) (Result, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "0", "H":
		return HomeWin, nil
	case "1", "D":
		return Draw, nil
	case "2", "A":
		return AwayWin, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownResult, s)
}

// Match is one row of the match table. ID is the row position.
type Match struct {
	ID         int
	Date       time.Time
	SeasonFile string
	HomeTeam   string
	AwayTeam   string
	FTHG       int
	FTAG       int
	Result     Result
	B365H      float64
	B365D      float64
	B365A      float64
}

// Table is the match table in loader order.
type Table []Match

// Renumber sets each match ID to its row position.
func (t Table) Renumber() {
	for i := range t {
		t[i].ID = i
	}
}

// Validate checks the schema-level invariants every stage relies on.
func (t Table) Validate() error {
	for i, m := range t {
		if m.ID != i {
			return fmt.Errorf("match %d: id %d does not match row position", i, m.ID)
		}
		if m.HomeTeam == "" || m.AwayTeam == "" {
			return fmt.Errorf("match %d (%s): missing team name", i, m.SeasonFile)
		}
		if m.HomeTeam == m.AwayTeam {
			return fmt.Errorf("match %d (%s): %q plays itself", i, m.SeasonFile, m.HomeTeam)
		}
		if m.Date.IsZero() {
			return fmt.Errorf("match %d (%s %s v %s): missing date", i, m.SeasonFile, m.HomeTeam, m.AwayTeam)
		}
		if !m.Result.Valid() {
			return fmt.Errorf("match %d (%s %s v %s): %w: %d", i, m.SeasonFile, m.HomeTeam, m.AwayTeam, ErrUnknownResult, int(m.Result))
		}
	}
	return nil
}

// ChronologicalOrder returns row indices sorted by Date. Ties keep table order.
func (t Table) ChronologicalOrder() []int {
	idx := make([]int, len(t))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return t[idx[a]].Date.Before(t[idx[b]].Date)
	})
	return idx
}
