// Package features derives the per-match feature table: odds signals,
// rolling form, season strength, role-split form, gap/balance features
// and pre-match Elo ratings. Every aggregate for a match is computed
// from strictly earlier matches.
package features

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/charleschow/match-features/internal/core/matches"
	"github.com/charleschow/match-features/internal/core/odds"
	"github.com/charleschow/match-features/internal/core/rating"
	"github.com/charleschow/match-features/internal/telemetry"
)

type Params struct {
	RollingWindow   int
	SplitWindow     int
	SplitMinPeriods int
	Elo             rating.EloParams
}

func DefaultParams() Params {
	return Params{
		RollingWindow:   5,
		SplitWindow:     5,
		SplitMinPeriods: 3,
		Elo:             rating.DefaultEloParams(),
	}
}

func (p Params) Validate() error {
	if p.RollingWindow < 1 {
		return fmt.Errorf("rolling window must be >= 1, got %d", p.RollingWindow)
	}
	if p.SplitWindow < 1 || p.SplitMinPeriods < 1 || p.SplitMinPeriods > p.SplitWindow {
		return fmt.Errorf("split window %d / min periods %d out of range", p.SplitWindow, p.SplitMinPeriods)
	}
	if p.Elo.K <= 0 {
		return fmt.Errorf("elo K must be positive, got %g", p.Elo.K)
	}
	return nil
}

// Row is one match with every derived feature appended.
type Row struct {
	matches.Match
	HomePoints int
	AwayPoints int
	odds.MatchOdds

	HomeRoll   *Form
	AwayRoll   *Form
	HomeSeason *Form
	AwaySeason *Form
	HomeHome   *Form
	AwayAway   *Form
	Gaps

	Elo rating.PreMatch
}

// Build runs the full pipeline over t and returns one Row per match in
// table order. Schema violations abort the run; missing odds and short
// histories only leave values undefined.
func Build(t matches.Table, p Params) ([]Row, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("feature params: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("match table: %w", err)
	}

	stop := telemetry.Metrics.Stages.Track("long_view")
	long, err := LongView(t)
	stop()
	if err != nil {
		return nil, err
	}

	// The three aggregators only read t and long.
	var (
		roll   FormIndex
		season SeasonIndex
		split  []SplitForm
		g      errgroup.Group
	)
	g.Go(func() error {
		defer telemetry.Metrics.Stages.Track("rolling")()
		var err error
		roll, err = RollingForm(long, p.RollingWindow)
		return err
	})
	g.Go(func() error {
		defer telemetry.Metrics.Stages.Track("season")()
		var err error
		season, err = SeasonStrength(long)
		return err
	})
	g.Go(func() error {
		defer telemetry.Metrics.Stages.Track("split")()
		var err error
		split, err = RoleSplitForm(t, p.SplitWindow, p.SplitMinPeriods)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stop = telemetry.Metrics.Stages.Track("elo")
	elo, err := rating.Run(t, p.Elo)
	stop()
	if err != nil {
		return nil, err
	}

	defer telemetry.Metrics.Stages.Track("assemble")()
	rows := make([]Row, len(t))
	for i, m := range t {
		hp, ap, _ := m.Result.Points() // validated above
		r := Row{
			Match:      m,
			HomePoints: hp,
			AwayPoints: ap,
			MatchOdds:  odds.Derive(m),
			HomeRoll:   roll.At(m.Date, m.HomeTeam),
			AwayRoll:   roll.At(m.Date, m.AwayTeam),
			HomeSeason: season.At(m.SeasonFile, m.Date, m.HomeTeam),
			AwaySeason: season.At(m.SeasonFile, m.Date, m.AwayTeam),
			HomeHome:   split[i].HomeHome,
			AwayAway:   split[i].AwayAway,
			Elo:        elo[i],
		}
		r.Gaps = DeriveGaps(r.HomeRoll, r.AwayRoll, r.HomeSeason, r.AwaySeason, split[i])
		countUndefined(r)
		rows[i] = r
	}

	telemetry.Infof("Built features  matches=%d  teams_rated=%d", len(rows), teamCount(t))
	return rows, nil
}

func countUndefined(r Row) {
	if !r.MatchOdds.Valid() {
		telemetry.Metrics.InvalidOdds.Inc()
	}
	if r.HomeRoll == nil || r.AwayRoll == nil {
		telemetry.Metrics.UndefinedRolling.Inc()
	}
	if r.HomeSeason == nil || r.AwaySeason == nil {
		telemetry.Metrics.UndefinedSeason.Inc()
	}
	if r.HomeHome == nil || r.AwayAway == nil {
		telemetry.Metrics.UndefinedSplit.Inc()
	}
}

func teamCount(t matches.Table) int {
	seen := make(map[string]struct{})
	for _, m := range t {
		seen[m.HomeTeam] = struct{}{}
		seen[m.AwayTeam] = struct{}{}
	}
	return len(seen)
}
