package features

import (
	"fmt"
	"sort"
	"time"

	"github.com/charleschow/match-features/internal/core/matches"
)

type Role int

const (
	RoleHome Role = iota
	RoleAway
)

func (r Role) String() string {
	if r == RoleHome {
		return "home"
	}
	return "away"
}

// Appearance is one team's side of one match.
type Appearance struct {
	Match        int // match ID
	SeasonFile   string
	Date         time.Time
	Team         string
	Role         Role
	GoalsFor     int
	GoalsAgainst int
	Points       int
}

// LongView maps each match to its home and away appearances, in table
// order (home row first).
func LongView(t matches.Table) ([]Appearance, error) {
	out := make([]Appearance, 0, 2*len(t))
	for _, m := range t {
		hp, ap, err := m.Result.Points()
		if err != nil {
			return nil, fmt.Errorf("long view match %d (%s): %w", m.ID, m.SeasonFile, err)
		}
		out = append(out,
			Appearance{
				Match: m.ID, SeasonFile: m.SeasonFile, Date: m.Date,
				Team: m.HomeTeam, Role: RoleHome,
				GoalsFor: m.FTHG, GoalsAgainst: m.FTAG, Points: hp,
			},
			Appearance{
				Match: m.ID, SeasonFile: m.SeasonFile, Date: m.Date,
				Team: m.AwayTeam, Role: RoleAway,
				GoalsFor: m.FTAG, GoalsAgainst: m.FTHG, Points: ap,
			},
		)
	}
	return out, nil
}

// sortByDate returns appearance indices ordered by (Date, Match, Role).
func sortByDate(long []Appearance) []int {
	idx := identity(len(long))
	sort.SliceStable(idx, func(i, j int) bool {
		return dateLess(long[idx[i]], long[idx[j]])
	})
	return idx
}

// sortBySeasonDate returns appearance indices ordered by
// (SeasonFile, Date, Match, Role).
func sortBySeasonDate(long []Appearance) []int {
	idx := identity(len(long))
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := long[idx[i]], long[idx[j]]
		if a.SeasonFile != b.SeasonFile {
			return a.SeasonFile < b.SeasonFile
		}
		return dateLess(a, b)
	})
	return idx
}

func dateLess(a, b Appearance) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if a.Match != b.Match {
		return a.Match < b.Match
	}
	return a.Role < b.Role
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
