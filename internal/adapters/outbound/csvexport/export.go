// Package csvexport writes the feature table as CSV with the column
// names downstream model training reads.
package csvexport

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/charleschow/match-features/internal/core/features"
	"github.com/charleschow/match-features/internal/telemetry"
)

const dateLayout = "2006-01-02"

// cell is a float column that renders NaN as an empty field.
type cell float64

func (c cell) MarshalCSV() (string, error) {
	v := float64(c)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", nil
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

func optCell(v *float64) cell {
	if v == nil {
		return cell(math.NaN())
	}
	return cell(*v)
}

// formCells splits an optional form triple into GF, GA, PTS cells.
func formCells(f *features.Form) (cell, cell, cell) {
	if f == nil {
		nan := cell(math.NaN())
		return nan, nan, nan
	}
	return cell(f.GF), cell(f.GA), cell(f.PTS)
}

type record struct {
	Date       string `csv:"Date"`
	SeasonFile string `csv:"SeasonFile"`
	HomeTeam   string `csv:"HomeTeam"`
	AwayTeam   string `csv:"AwayTeam"`
	FTHG       int    `csv:"FTHG"`
	FTAG       int    `csv:"FTAG"`
	Result     int    `csv:"Result"`
	B365H      cell   `csv:"B365H"`
	B365D      cell   `csv:"B365D"`
	B365A      cell   `csv:"B365A"`

	GoalDiff int  `csv:"GoalDiff"`
	HomeFav  int  `csv:"HomeFav"`
	PHome    cell `csv:"p_home"`
	PDraw    cell `csv:"p_draw"`
	PAway    cell `csv:"p_away"`

	HomePoints int `csv:"HomePoints"`
	AwayPoints int `csv:"AwayPoints"`

	HomeGFRoll  cell `csv:"Home_GF_roll"`
	HomeGARoll  cell `csv:"Home_GA_roll"`
	HomePTSRoll cell `csv:"Home_PTS_roll"`
	AwayGFRoll  cell `csv:"Away_GF_roll"`
	AwayGARoll  cell `csv:"Away_GA_roll"`
	AwayPTSRoll cell `csv:"Away_PTS_roll"`

	HomeSeasonGF  cell `csv:"Home_Season_GF"`
	HomeSeasonGA  cell `csv:"Home_Season_GA"`
	HomeSeasonPTS cell `csv:"Home_Season_PTS"`
	AwaySeasonGF  cell `csv:"Away_Season_GF"`
	AwaySeasonGA  cell `csv:"Away_Season_GA"`
	AwaySeasonPTS cell `csv:"Away_Season_PTS"`

	HomeHomeGF  cell `csv:"Home_Home_GF"`
	HomeHomeGA  cell `csv:"Home_Home_GA"`
	HomeHomePTS cell `csv:"Home_Home_PTS"`
	AwayAwayGF  cell `csv:"Away_Away_GF"`
	AwayAwayGA  cell `csv:"Away_Away_GA"`
	AwayAwayPTS cell `csv:"Away_Away_PTS"`

	PTSGap         cell `csv:"PTS_gap"`
	GFGap          cell `csv:"GF_gap"`
	GAGap          cell `csv:"GA_gap"`
	FormBalancePTS cell `csv:"Form_balance_PTS"`
	FormBalanceGF  cell `csv:"Form_balance_GF"`
	FormBalanceGA  cell `csv:"Form_balance_GA"`
	SeasonPTSGap   cell `csv:"Season_PTS_gap"`
	SeasonGFGap    cell `csv:"Season_GF_gap"`
	SeasonGAGap    cell `csv:"Season_GA_gap"`
	PTSGapSplit    cell `csv:"PTS_gap_split"`
	GFGapSplit     cell `csv:"GF_gap_split"`
	GAGapSplit     cell `csv:"GA_gap_split"`

	EloHome cell `csv:"ELO_Home"`
	EloAway cell `csv:"ELO_Away"`
	EloDiff cell `csv:"ELO_Diff"`
}

func toRecord(r *features.Row) record {
	rec := record{
		Date:       r.Date.Format(dateLayout),
		SeasonFile: r.SeasonFile,
		HomeTeam:   r.HomeTeam,
		AwayTeam:   r.AwayTeam,
		FTHG:       r.FTHG,
		FTAG:       r.FTAG,
		Result:     int(r.Result),
		B365H:      cell(r.B365H),
		B365D:      cell(r.B365D),
		B365A:      cell(r.B365A),
		GoalDiff:   r.GoalDiff,
		HomeFav:    r.HomeFav,
		PHome:      cell(r.PHome),
		PDraw:      cell(r.PDraw),
		PAway:      cell(r.PAway),
		HomePoints: r.HomePoints,
		AwayPoints: r.AwayPoints,

		PTSGap:         optCell(r.PTSGap),
		GFGap:          optCell(r.GFGap),
		GAGap:          optCell(r.GAGap),
		FormBalancePTS: optCell(r.FormBalancePTS),
		FormBalanceGF:  optCell(r.FormBalanceGF),
		FormBalanceGA:  optCell(r.FormBalanceGA),
		SeasonPTSGap:   optCell(r.SeasonPTSGap),
		SeasonGFGap:    optCell(r.SeasonGFGap),
		SeasonGAGap:    optCell(r.SeasonGAGap),
		PTSGapSplit:    optCell(r.PTSGapSplit),
		GFGapSplit:     optCell(r.GFGapSplit),
		GAGapSplit:     optCell(r.GAGapSplit),

		EloHome: cell(r.Elo.Home),
		EloAway: cell(r.Elo.Away),
		EloDiff: cell(r.Elo.Diff),
	}
	rec.HomeGFRoll, rec.HomeGARoll, rec.HomePTSRoll = formCells(r.HomeRoll)
	rec.AwayGFRoll, rec.AwayGARoll, rec.AwayPTSRoll = formCells(r.AwayRoll)
	rec.HomeSeasonGF, rec.HomeSeasonGA, rec.HomeSeasonPTS = formCells(r.HomeSeason)
	rec.AwaySeasonGF, rec.AwaySeasonGA, rec.AwaySeasonPTS = formCells(r.AwaySeason)
	rec.HomeHomeGF, rec.HomeHomeGA, rec.HomeHomePTS = formCells(r.HomeHome)
	rec.AwayAwayGF, rec.AwayAwayGA, rec.AwayAwayPTS = formCells(r.AwayAway)
	return rec
}

// Write encodes rows in table order, header first.
func Write(w io.Writer, rows []features.Row) error {
	recs := make([]record, len(rows))
	for i := range rows {
		recs[i] = toRecord(&rows[i])
	}
	if err := gocsv.Marshal(&recs, w); err != nil {
		return fmt.Errorf("encode features csv: %w", err)
	}
	return nil
}

// WriteFile replaces path with the encoded rows. The file is written
// next to path first and renamed into place.
func WriteFile(path string, rows []features.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, rows); err != nil {
		return err
	}

	tmp := path + ".part"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	telemetry.Infof("Wrote features csv  path=%s  rows=%d  bytes=%d", path, len(rows), buf.Len())
	return nil
}
