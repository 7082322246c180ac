package rating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleschow/match-features/internal/core/matches"
)

func day(d int) time.Time { return time.Date(2024, 1, d, 15, 0, 0, 0, time.UTC) }

func table(ms ...matches.Match) matches.Table {
	t := matches.Table(ms)
	t.Renumber()
	return t
}

func TestExpected_SumsToOneAndEvenAtEqualRatings(t *testing.T) {
	h, a := Expected(1500, 1500)
	assert.Equal(t, 0.5, h)
	assert.Equal(t, 0.5, a)

	h, a = Expected(1700, 1500)
	assert.InDelta(t, 1.0, h+a, 1e-12)
	assert.Greater(t, h, 0.5)
}

func TestPlay_ZeroSumUpdate(t *testing.T) {
	e := NewElo(DefaultEloParams())
	fixtures := []struct {
		home, away string
		r          matches.Result
	}{
		{"A", "B", matches.HomeWin},
		{"B", "C", matches.Draw},
		{"C", "A", matches.AwayWin},
		{"A", "C", matches.Draw},
		{"B", "A", matches.AwayWin},
	}
	for _, f := range fixtures {
		pre, err := e.Play(f.home, f.away, f.r)
		require.NoError(t, err)
		dh := e.Rating(f.home) - pre.Home
		da := e.Rating(f.away) - pre.Away
		assert.InDelta(t, 0, dh+da, 1e-9, "%s v %s", f.home, f.away)
		assert.Equal(t, pre.Home-pre.Away, pre.Diff)
	}
}

func TestPlay_UnknownResult(t *testing.T) {
	e := NewElo(DefaultEloParams())
	_, err := e.Play("A", "B", matches.Result(4))
	assert.ErrorIs(t, err, matches.ErrUnknownResult)
	assert.Equal(t, 0, e.Teams())
}

func TestRun_FirstAppearanceIsStartRating(t *testing.T) {
	tbl := table(
		matches.Match{Date: day(1), HomeTeam: "A", AwayTeam: "B", Result: matches.HomeWin},
		matches.Match{Date: day(2), HomeTeam: "C", AwayTeam: "A", Result: matches.Draw},
		matches.Match{Date: day(3), HomeTeam: "B", AwayTeam: "D", Result: matches.AwayWin},
	)
	pre, err := Run(tbl, DefaultEloParams())
	require.NoError(t, err)

	assert.Equal(t, 1500.0, pre[0].Home)
	assert.Equal(t, 1500.0, pre[0].Away)
	assert.Equal(t, 1500.0, pre[1].Home) // C first seen
	assert.Greater(t, pre[1].Away, 1500.0)
	assert.Equal(t, 1500.0, pre[2].Away) // D first seen
	assert.Less(t, pre[2].Home, 1500.0)
}

func TestRun_UsesDateOrderNotTableOrder(t *testing.T) {
	tbl := table(
		matches.Match{Date: day(5), HomeTeam: "B", AwayTeam: "A", Result: matches.Draw},
		matches.Match{Date: day(1), HomeTeam: "A", AwayTeam: "B", Result: matches.HomeWin},
	)
	pre, err := Run(tbl, DefaultEloParams())
	require.NoError(t, err)

	assert.Equal(t, 0.0, pre[1].Diff)
	assert.Greater(t, pre[0].Away, pre[0].Home)
}

func TestRun_DisjointReorderKeepsTrajectories(t *testing.T) {
	a := table(
		matches.Match{Date: day(1), HomeTeam: "A", AwayTeam: "B", Result: matches.HomeWin},
		matches.Match{Date: day(2), HomeTeam: "C", AwayTeam: "D", Result: matches.AwayWin},
		matches.Match{Date: day(3), HomeTeam: "A", AwayTeam: "D", Result: matches.Draw},
	)
	b := table(
		matches.Match{Date: day(2), HomeTeam: "A", AwayTeam: "B", Result: matches.HomeWin},
		matches.Match{Date: day(1), HomeTeam: "C", AwayTeam: "D", Result: matches.AwayWin},
		matches.Match{Date: day(3), HomeTeam: "A", AwayTeam: "D", Result: matches.Draw},
	)
	preA, err := Run(a, DefaultEloParams())
	require.NoError(t, err)
	preB, err := Run(b, DefaultEloParams())
	require.NoError(t, err)
	assert.Equal(t, preA, preB)
}

func TestRun_SharedTeamReorderChangesRatings(t *testing.T) {
	a := table(
		matches.Match{Date: day(1), HomeTeam: "A", AwayTeam: "B", Result: matches.HomeWin},
		matches.Match{Date: day(2), HomeTeam: "A", AwayTeam: "C", Result: matches.AwayWin},
		matches.Match{Date: day(3), HomeTeam: "A", AwayTeam: "D", Result: matches.Draw},
	)
	b := table(
		matches.Match{Date: day(2), HomeTeam: "A", AwayTeam: "B", Result: matches.HomeWin},
		matches.Match{Date: day(1), HomeTeam: "A", AwayTeam: "C", Result: matches.AwayWin},
		matches.Match{Date: day(3), HomeTeam: "A", AwayTeam: "D", Result: matches.Draw},
	)
	preA, err := Run(a, DefaultEloParams())
	require.NoError(t, err)
	preB, err := Run(b, DefaultEloParams())
	require.NoError(t, err)
	assert.NotEqual(t, preA[2].Home, preB[2].Home)
}

func TestRun_CarriesAcrossSeasons(t *testing.T) {
	tbl := table(
		matches.Match{Date: day(1), SeasonFile: "s1", HomeTeam: "A", AwayTeam: "B", Result: matches.HomeWin},
		matches.Match{Date: day(20), SeasonFile: "s2", HomeTeam: "A", AwayTeam: "B", Result: matches.Draw},
	)
	pre, err := Run(tbl, DefaultEloParams())
	require.NoError(t, err)
	assert.InDelta(t, 1510.0, pre[1].Home, 1e-9)
	assert.InDelta(t, 1490.0, pre[1].Away, 1e-9)
}

func TestRun_ThreeMatchScenario(t *testing.T) {
	tbl := table(
		matches.Match{Date: day(1), HomeTeam: "A", AwayTeam: "B", FTHG: 2, FTAG: 1, Result: matches.HomeWin},
		matches.Match{Date: day(8), HomeTeam: "B", AwayTeam: "A", FTHG: 1, FTAG: 1, Result: matches.Draw},
		matches.Match{Date: day(15), HomeTeam: "A", AwayTeam: "B", FTHG: 0, FTAG: 3, Result: matches.AwayWin},
	)
	pre, err := Run(tbl, DefaultEloParams())
	require.NoError(t, err)

	assert.Equal(t, PreMatch{Home: 1500, Away: 1500, Diff: 0}, pre[0])

	// Match 2: B hosts A after A's win (+10 / -10 at K=20).
	assert.InDelta(t, 1490.0, pre[1].Home, 1e-9)
	assert.InDelta(t, 1510.0, pre[1].Away, 1e-9)
	assert.InDelta(t, -20.0, pre[1].Diff, 1e-9)

	// Draw against the weaker side costs A rating.
	assert.Less(t, pre[2].Home, 1510.0)
	assert.Greater(t, pre[2].Home, 1500.0)
	assert.InDelta(t, 3000.0, pre[2].Home+pre[2].Away, 1e-9)
}
