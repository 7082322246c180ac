package features

import (
	"gonum.org/v1/gonum/stat"
)

// Form is a team's mean goals for, goals against and points over some set
// of earlier appearances. A nil *Form means there is no value yet.
type Form struct {
	GF  float64
	GA  float64
	PTS float64
}

// history is the ordered list of a team's past appearances within one
// partition (team, team+season or team+role).
type history struct {
	gf, ga, pts []float64
}

func (h *history) add(gf, ga, pts int) {
	h.gf = append(h.gf, float64(gf))
	h.ga = append(h.ga, float64(ga))
	h.pts = append(h.pts, float64(pts))
}

func (h *history) len() int { return len(h.pts) }

// trailing returns the mean of the last min(n, len) entries, or nil when
// fewer than minPeriods entries exist.
func (h *history) trailing(n, minPeriods int) *Form {
	count := h.len()
	if count < minPeriods || count == 0 {
		return nil
	}
	from := count - n
	if from < 0 {
		from = 0
	}
	return &Form{
		GF:  stat.Mean(h.gf[from:], nil),
		GA:  stat.Mean(h.ga[from:], nil),
		PTS: stat.Mean(h.pts[from:], nil),
	}
}

// expanding keeps running sums so the cumulative mean is O(1) per step.
type expanding struct {
	n           int
	gf, ga, pts float64
}

func (e *expanding) add(gf, ga, pts int) {
	e.n++
	e.gf += float64(gf)
	e.ga += float64(ga)
	e.pts += float64(pts)
}

// mean returns the cumulative mean, or nil before the first entry.
func (e *expanding) mean() *Form {
	if e.n == 0 {
		return nil
	}
	n := float64(e.n)
	return &Form{GF: e.gf / n, GA: e.ga / n, PTS: e.pts / n}
}
