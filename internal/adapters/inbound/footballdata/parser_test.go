package footballdata

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleschow/match-features/internal/core/matches"
	"github.com/charleschow/match-features/internal/core/teams"
)

const rawSeason = "\ufeff" + "Div,Date,Time,HomeTeam,AwayTeam,FTHG,FTAG,FTR,HTHG,HTAG,B365H,B365D,B365A\n" +
	"E0,11/08/2023,20:00,Burnley,Man City,0,3,A,0,2,8.00,5.25,1.33\n" +
	"E0,12/08/2023,12:30,Arsenal,Nottingham Forest,2,1,H,2,0,1.18,7.00,15.00\n" +
	"E0,12/08/23,15:00,Bournemouth,West Ham,1,1,D,0,0,2.70,3.40,2.55\n" +
	"E0,13/08/2023,14:00,Brentford,Tottenham,2,2,D,2,2,,,\n" +
	",,,,,,,,,,,,\n"

func TestParse_FootballDataSeason(t *testing.T) {
	names := teams.NewNormalizer(map[string]string{"nottingham forest": "Nott'm Forest"})
	tbl, err := Parse("E0_2324.csv", []byte(rawSeason), names)
	require.NoError(t, err)
	require.Len(t, tbl, 4, "blank trailing row is skipped")

	m := tbl[0]
	assert.Equal(t, time.Date(2023, 8, 11, 0, 0, 0, 0, time.UTC), m.Date)
	assert.Equal(t, "E0_2324.csv", m.SeasonFile)
	assert.Equal(t, "Burnley", m.HomeTeam)
	assert.Equal(t, "Man City", m.AwayTeam)
	assert.Equal(t, 0, m.FTHG)
	assert.Equal(t, 3, m.FTAG)
	assert.Equal(t, matches.AwayWin, m.Result)
	assert.Equal(t, 8.0, m.B365H)
	assert.Equal(t, 1.33, m.B365A)

	assert.Equal(t, "Nott'm Forest", tbl[1].AwayTeam)
	assert.Equal(t, matches.HomeWin, tbl[1].Result)

	assert.Equal(t, time.Date(2023, 8, 12, 0, 0, 0, 0, time.UTC), tbl[2].Date, "two-digit year")
	assert.Equal(t, matches.Draw, tbl[2].Result)

	assert.True(t, math.IsNaN(tbl[3].B365H), "blank odds become NaN")
	assert.True(t, math.IsNaN(tbl[3].B365A))
}

func TestParse_NumericResultColumn(t *testing.T) {
	data := "Date,HomeTeam,AwayTeam,FTHG,FTAG,Result,B365H,B365D,B365A\n" +
		"2023-08-11,A,B,1,0,0,2.0,3.0,4.0\n" +
		"2023-08-12,C,D,0,0,1,2.0,3.0,4.0\n" +
		"2023-08-13,E,F,0,2,2,2.0,3.0,4.0\n"
	tbl, err := Parse("s.csv", []byte(data), nil)
	require.NoError(t, err)
	require.Len(t, tbl, 3)
	assert.Equal(t, []matches.Result{matches.HomeWin, matches.Draw, matches.AwayWin},
		[]matches.Result{tbl[0].Result, tbl[1].Result, tbl[2].Result})
}

func TestParse_MissingColumns(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no odds", "Date,HomeTeam,AwayTeam,FTHG,FTAG,FTR\n01/01/2024,A,B,1,0,H\n"},
		{"no result", "Date,HomeTeam,AwayTeam,FTHG,FTAG,B365H,B365D,B365A\n01/01/2024,A,B,1,0,2,3,4\n"},
		{"no date", "HomeTeam,AwayTeam,FTHG,FTAG,FTR,B365H,B365D,B365A\nA,B,1,0,H,2,3,4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("s.csv", []byte(tt.data), nil)
			assert.ErrorIs(t, err, ErrMissingColumn)
		})
	}
}

func TestParse_RowErrors(t *testing.T) {
	header := "Date,HomeTeam,AwayTeam,FTHG,FTAG,FTR,B365H,B365D,B365A\n"
	tests := []struct {
		name string
		row  string
	}{
		{"bad date", "2024/31/01,A,B,1,0,H,2,3,4\n"},
		{"bad goals", "01/01/2024,A,B,x,0,H,2,3,4\n"},
		{"unknown result", "01/01/2024,A,B,1,0,W,2,3,4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("s.csv", []byte(header+tt.row), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "s.csv line 2")
		})
	}

	_, err := Parse("s.csv", []byte(header+"01/01/2024,A,B,1,0,X,2,3,4\n"), nil)
	assert.ErrorIs(t, err, matches.ErrUnknownResult)
}
