package features

import "math"

// Gaps holds the home-minus-away differentials of every aggregate family.
// Goals-against gaps are away minus home so that positive always favours
// the home side. Balance values are absolute differences.
type Gaps struct {
	PTSGap *float64
	GFGap  *float64
	GAGap  *float64

	FormBalancePTS *float64
	FormBalanceGF  *float64
	FormBalanceGA  *float64

	SeasonPTSGap *float64
	SeasonGFGap  *float64
	SeasonGAGap  *float64

	PTSGapSplit *float64
	GFGapSplit  *float64
	GAGapSplit  *float64
}

// DeriveGaps combines the per-side aggregates of one match.
func DeriveGaps(homeRoll, awayRoll, homeSeason, awaySeason *Form, split SplitForm) Gaps {
	var g Gaps
	if homeRoll != nil && awayRoll != nil {
		g.PTSGap = f64(homeRoll.PTS - awayRoll.PTS)
		g.GFGap = f64(homeRoll.GF - awayRoll.GF)
		g.GAGap = f64(awayRoll.GA - homeRoll.GA)
		g.FormBalancePTS = f64(math.Abs(homeRoll.PTS - awayRoll.PTS))
		g.FormBalanceGF = f64(math.Abs(homeRoll.GF - awayRoll.GF))
		g.FormBalanceGA = f64(math.Abs(homeRoll.GA - awayRoll.GA))
	}
	if homeSeason != nil && awaySeason != nil {
		g.SeasonPTSGap = f64(homeSeason.PTS - awaySeason.PTS)
		g.SeasonGFGap = f64(homeSeason.GF - awaySeason.GF)
		g.SeasonGAGap = f64(awaySeason.GA - homeSeason.GA)
	}
	if split.HomeHome != nil && split.AwayAway != nil {
		g.PTSGapSplit = f64(split.HomeHome.PTS - split.AwayAway.PTS)
		g.GFGapSplit = f64(split.HomeHome.GF - split.AwayAway.GF)
		g.GAGapSplit = f64(split.AwayAway.GA - split.HomeHome.GA)
	}
	return g
}

func f64(v float64) *float64 { return &v }
