package features

import (
	"fmt"
	"time"
)

type seasonKey struct {
	season string
	date   int64
	team   string
}

// SeasonIndex maps (SeasonFile, Date, Team) to that appearance's
// season-to-date strength.
type SeasonIndex map[seasonKey]*Form

func (ix SeasonIndex) At(season string, date time.Time, team string) *Form {
	return ix[seasonKey{season: season, date: date.UnixNano(), team: team}]
}

// SeasonStrength computes, for every appearance, the mean over the
// team's earlier appearances in the same SeasonFile. Each team starts
// every season with no value.
func SeasonStrength(long []Appearance) (SeasonIndex, error) {
	type partition struct {
		season string
		team   string
	}

	out := make(SeasonIndex, len(long))
	sums := make(map[partition]*expanding)
	for _, i := range sortBySeasonDate(long) {
		a := long[i]
		k := seasonKey{season: a.SeasonFile, date: a.Date.UnixNano(), team: a.Team}
		if _, dup := out[k]; dup {
			return nil, fmt.Errorf("season strength: %w: %s on %s (%s)", ErrDuplicateAppearance, a.Team, a.Date.Format("2006-01-02"), a.SeasonFile)
		}

		p := partition{season: a.SeasonFile, team: a.Team}
		e := sums[p]
		if e == nil {
			e = &expanding{}
			sums[p] = e
		}
		out[k] = e.mean()
		e.add(a.GoalsFor, a.GoalsAgainst, a.Points)
	}
	return out, nil
}
