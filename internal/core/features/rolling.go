package features

import (
	"errors"
	"fmt"
	"time"
)

// ErrDuplicateAppearance means a team has two appearances on the same
// join key, so its snapshot could not be scattered back unambiguously.
var ErrDuplicateAppearance = errors.New("team appears twice under one join key")

type formKey struct {
	date int64 // Date.UnixNano, so equal instants in different zones collide
	team string
}

// FormIndex maps (Date, Team) to that appearance's rolling form.
type FormIndex map[formKey]*Form

// At returns the form for team on date, or nil if undefined or unknown.
func (ix FormIndex) At(date time.Time, team string) *Form {
	return ix[formKey{date: date.UnixNano(), team: team}]
}

// RollingForm computes, for every appearance, the mean of the team's
// previous window appearances across both roles. The appearance itself
// is excluded, so the first window appearances have no value.
func RollingForm(long []Appearance, window int) (FormIndex, error) {
	if window < 1 {
		return nil, fmt.Errorf("rolling window must be >= 1, got %d", window)
	}

	out := make(FormIndex, len(long))
	teams := make(map[string]*history)
	for _, i := range sortByDate(long) {
		a := long[i]
		k := formKey{date: a.Date.UnixNano(), team: a.Team}
		if _, dup := out[k]; dup {
			return nil, fmt.Errorf("rolling form: %w: %s on %s", ErrDuplicateAppearance, a.Team, a.Date.Format("2006-01-02"))
		}

		h := teams[a.Team]
		if h == nil {
			h = &history{}
			teams[a.Team] = h
		}
		out[k] = h.trailing(window, window)
		h.add(a.GoalsFor, a.GoalsAgainst, a.Points)
	}
	return out, nil
}
