package features

import (
	"fmt"

	"github.com/charleschow/match-features/internal/core/matches"
)

// SplitForm is the role-restricted form of both sides of one match: the
// home team's form in its earlier home matches and the away team's form
// in its earlier away matches.
type SplitForm struct {
	HomeHome *Form
	AwayAway *Form
}

// RoleSplitForm groups the match table by HomeTeam and by AwayTeam and
// takes a trailing mean over the previous window matches in that role,
// emitting a value once at least minPeriods of them exist. The result is
// indexed by match ID.
func RoleSplitForm(t matches.Table, window, minPeriods int) ([]SplitForm, error) {
	if window < 1 || minPeriods < 1 || minPeriods > window {
		return nil, fmt.Errorf("split window %d / min periods %d out of range", window, minPeriods)
	}

	out := make([]SplitForm, len(t))
	atHome := make(map[string]*history)
	away := make(map[string]*history)
	for _, i := range t.ChronologicalOrder() {
		m := t[i]
		hp, ap, err := m.Result.Points()
		if err != nil {
			return nil, fmt.Errorf("split form match %d (%s): %w", m.ID, m.SeasonFile, err)
		}

		hh := atHome[m.HomeTeam]
		if hh == nil {
			hh = &history{}
			atHome[m.HomeTeam] = hh
		}
		ah := away[m.AwayTeam]
		if ah == nil {
			ah = &history{}
			away[m.AwayTeam] = ah
		}

		out[i] = SplitForm{
			HomeHome: hh.trailing(window, minPeriods),
			AwayAway: ah.trailing(window, minPeriods),
		}
		hh.add(m.FTHG, m.FTAG, hp)
		ah.add(m.FTAG, m.FTHG, ap)
	}
	return out, nil
}
