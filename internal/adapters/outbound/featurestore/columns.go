package featurestore

import (
	"math"

	"github.com/charleschow/match-features/internal/core/features"
)

const dateLayout = "2006-01-02"

type kind int

const (
	kindText kind = iota
	kindInt
	kindReal
)

// column maps one match_features column to its value on a Row.
type column struct {
	name string
	kind kind
	get  func(r *features.Row) any
}

var matchColumns = []column{
	{"match_id", kindInt, func(r *features.Row) any { return r.ID }},
	{"date", kindText, func(r *features.Row) any { return r.Date.Format(dateLayout) }},
	{"season_file", kindText, func(r *features.Row) any { return r.SeasonFile }},
	{"home_team", kindText, func(r *features.Row) any { return r.HomeTeam }},
	{"away_team", kindText, func(r *features.Row) any { return r.AwayTeam }},
	{"fthg", kindInt, func(r *features.Row) any { return r.FTHG }},
	{"ftag", kindInt, func(r *features.Row) any { return r.FTAG }},
	{"result", kindInt, func(r *features.Row) any { return int(r.Result) }},
	{"b365h", kindReal, func(r *features.Row) any { return num(r.B365H) }},
	{"b365d", kindReal, func(r *features.Row) any { return num(r.B365D) }},
	{"b365a", kindReal, func(r *features.Row) any { return num(r.B365A) }},
	{"home_points", kindInt, func(r *features.Row) any { return r.HomePoints }},
	{"away_points", kindInt, func(r *features.Row) any { return r.AwayPoints }},
	{"goal_diff", kindInt, func(r *features.Row) any { return r.GoalDiff }},
	{"home_fav", kindInt, func(r *features.Row) any { return r.HomeFav }},
	{"p_home", kindReal, func(r *features.Row) any { return num(r.PHome) }},
	{"p_draw", kindReal, func(r *features.Row) any { return num(r.PDraw) }},
	{"p_away", kindReal, func(r *features.Row) any { return num(r.PAway) }},

	{"home_gf_roll", kindReal, func(r *features.Row) any { return gf(r.HomeRoll) }},
	{"home_ga_roll", kindReal, func(r *features.Row) any { return ga(r.HomeRoll) }},
	{"home_pts_roll", kindReal, func(r *features.Row) any { return pts(r.HomeRoll) }},
	{"away_gf_roll", kindReal, func(r *features.Row) any { return gf(r.AwayRoll) }},
	{"away_ga_roll", kindReal, func(r *features.Row) any { return ga(r.AwayRoll) }},
	{"away_pts_roll", kindReal, func(r *features.Row) any { return pts(r.AwayRoll) }},

	{"home_season_gf", kindReal, func(r *features.Row) any { return gf(r.HomeSeason) }},
	{"home_season_ga", kindReal, func(r *features.Row) any { return ga(r.HomeSeason) }},
	{"home_season_pts", kindReal, func(r *features.Row) any { return pts(r.HomeSeason) }},
	{"away_season_gf", kindReal, func(r *features.Row) any { return gf(r.AwaySeason) }},
	{"away_season_ga", kindReal, func(r *features.Row) any { return ga(r.AwaySeason) }},
	{"away_season_pts", kindReal, func(r *features.Row) any { return pts(r.AwaySeason) }},

	{"home_home_gf", kindReal, func(r *features.Row) any { return gf(r.HomeHome) }},
	{"home_home_ga", kindReal, func(r *features.Row) any { return ga(r.HomeHome) }},
	{"home_home_pts", kindReal, func(r *features.Row) any { return pts(r.HomeHome) }},
	{"away_away_gf", kindReal, func(r *features.Row) any { return gf(r.AwayAway) }},
	{"away_away_ga", kindReal, func(r *features.Row) any { return ga(r.AwayAway) }},
	{"away_away_pts", kindReal, func(r *features.Row) any { return pts(r.AwayAway) }},

	{"pts_gap", kindReal, func(r *features.Row) any { return opt(r.PTSGap) }},
	{"gf_gap", kindReal, func(r *features.Row) any { return opt(r.GFGap) }},
	{"ga_gap", kindReal, func(r *features.Row) any { return opt(r.GAGap) }},
	{"form_balance_pts", kindReal, func(r *features.Row) any { return opt(r.FormBalancePTS) }},
	{"form_balance_gf", kindReal, func(r *features.Row) any { return opt(r.FormBalanceGF) }},
	{"form_balance_ga", kindReal, func(r *features.Row) any { return opt(r.FormBalanceGA) }},
	{"season_pts_gap", kindReal, func(r *features.Row) any { return opt(r.SeasonPTSGap) }},
	{"season_gf_gap", kindReal, func(r *features.Row) any { return opt(r.SeasonGFGap) }},
	{"season_ga_gap", kindReal, func(r *features.Row) any { return opt(r.SeasonGAGap) }},
	{"pts_gap_split", kindReal, func(r *features.Row) any { return opt(r.PTSGapSplit) }},
	{"gf_gap_split", kindReal, func(r *features.Row) any { return opt(r.GFGapSplit) }},
	{"ga_gap_split", kindReal, func(r *features.Row) any { return opt(r.GAGapSplit) }},

	{"elo_home", kindReal, func(r *features.Row) any { return num(r.Elo.Home) }},
	{"elo_away", kindReal, func(r *features.Row) any { return num(r.Elo.Away) }},
	{"elo_diff", kindReal, func(r *features.Row) any { return num(r.Elo.Diff) }},
}

// num rounds to five decimals and maps NaN and Inf to NULL.
func num(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return math.Round(v*100000) / 100000
}

func opt(v *float64) any {
	if v == nil {
		return nil
	}
	return num(*v)
}

func gf(f *features.Form) any {
	if f == nil {
		return nil
	}
	return num(f.GF)
}

func ga(f *features.Form) any {
	if f == nil {
		return nil
	}
	return num(f.GA)
}

func pts(f *features.Form) any {
	if f == nil {
		return nil
	}
	return num(f.PTS)
}
