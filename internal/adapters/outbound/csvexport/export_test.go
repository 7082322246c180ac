package csvexport

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleschow/match-features/internal/core/features"
	"github.com/charleschow/match-features/internal/core/matches"
)

func threeMatchRows(t *testing.T) []features.Row {
	t.Helper()
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	tbl := matches.Table{
		{Date: day(1), SeasonFile: "s1", HomeTeam: "A", AwayTeam: "B", FTHG: 2, FTAG: 1, Result: matches.HomeWin, B365H: 2.0, B365D: 3.5, B365A: 4.0},
		{Date: day(8), SeasonFile: "s1", HomeTeam: "B", AwayTeam: "A", FTHG: 1, FTAG: 1, Result: matches.Draw, B365H: 2.5, B365D: 0, B365A: 2.8},
		{Date: day(15), SeasonFile: "s1", HomeTeam: "A", AwayTeam: "B", FTHG: 0, FTAG: 3, Result: matches.AwayWin, B365H: 1.8, B365D: 3.6, B365A: 4.5},
	}
	tbl.Renumber()
	rows, err := features.Build(tbl, features.DefaultParams())
	require.NoError(t, err)
	return rows
}

func readBack(t *testing.T, data []byte) []map[string]string {
	t.Helper()
	recs, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	header := recs[0]
	out := make([]map[string]string, 0, len(recs)-1)
	for _, r := range recs[1:] {
		m := make(map[string]string, len(header))
		for i, h := range header {
			m[h] = r[i]
		}
		out = append(out, m)
	}
	return out
}

func TestWrite_ColumnsAndUndefinedCells(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, threeMatchRows(t)))

	got := readBack(t, buf.Bytes())
	require.Len(t, got, 3)

	first := got[0]
	assert.Equal(t, "2024-01-01", first["Date"])
	assert.Equal(t, "0", first["Result"])
	assert.Equal(t, "3", first["HomePoints"])
	assert.Equal(t, "0", first["AwayPoints"])
	assert.Equal(t, "1", first["GoalDiff"])
	assert.Equal(t, "1", first["HomeFav"])
	assert.Equal(t, "1500", first["ELO_Home"])
	assert.Equal(t, "0", first["ELO_Diff"])
	assert.Empty(t, first["Home_GF_roll"])
	assert.Empty(t, first["Home_Season_PTS"])
	assert.Empty(t, first["PTS_gap"])

	second := got[1]
	assert.Empty(t, second["p_home"], "zero draw price invalidates all probabilities")
	assert.Empty(t, second["p_draw"])
	assert.Equal(t, "0", second["B365D"])
	assert.Equal(t, "1490", second["ELO_Home"])
	assert.Equal(t, "0", second["Home_Season_PTS"], "B lost its only prior match")
	assert.Equal(t, "3", second["Away_Season_PTS"])
	assert.Equal(t, "-3", second["Season_PTS_gap"])
	assert.Equal(t, "-1", second["Season_GA_gap"])

	for _, col := range []string{
		"Home_Home_PTS", "Away_Away_PTS", "PTS_gap_split", "GA_gap_split",
		"Form_balance_PTS", "Season_GF_gap", "ELO_Away",
	} {
		_, ok := first[col]
		assert.True(t, ok, "missing column %s", col)
	}
}

func TestCell_Marshal(t *testing.T) {
	s, err := cell(math.NaN()).MarshalCSV()
	require.NoError(t, err)
	assert.Empty(t, s)

	s, err = cell(math.Inf(1)).MarshalCSV()
	require.NoError(t, err)
	assert.Empty(t, s)

	s, err = cell(0.25).MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "0.25", s)
}

func TestWriteFile_CreatesDirAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed", "features.csv")
	rows := threeMatchRows(t)

	require.NoError(t, WriteFile(path, rows))
	require.NoError(t, WriteFile(path, rows[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, readBack(t, data), 1)

	_, err = os.Stat(path + ".part")
	assert.True(t, os.IsNotExist(err))
}
