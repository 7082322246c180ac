package telemetry

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type Counter struct {
	val atomic.Int64
}

func (c *Counter) Inc()         { c.val.Add(1) }
func (c *Counter) Add(n int64)  { c.val.Add(n) }
func (c *Counter) Value() int64 { return c.val.Load() }
func (c *Counter) Reset()       { c.val.Store(0) }

// StageTimer keeps the most recent wall-clock duration of each named
// pipeline stage.
type StageTimer struct {
	mu     sync.Mutex
	stages map[string]time.Duration
}

func NewStageTimer() *StageTimer {
	return &StageTimer{stages: make(map[string]time.Duration)}
}

// Track starts timing stage and returns the function that stops it.
//
//	defer telemetry.Metrics.Stages.Track("elo")()
func (st *StageTimer) Track(stage string) func() {
	start := time.Now()
	return func() { st.Record(stage, time.Since(start)) }
}

func (st *StageTimer) Record(stage string, d time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.stages[stage] = d
}

func (st *StageTimer) Get(stage string) (time.Duration, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	d, ok := st.stages[stage]
	return d, ok
}

// Names returns the recorded stage names in lexical order.
func (st *StageTimer) Names() []string {
	st.mu.Lock()
	defer st.mu.Unlock()
	names := make([]string, 0, len(st.stages))
	for n := range st.stages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Metrics is the global metrics registry.
var Metrics = struct {
	FilesLoaded      Counter
	FilesDownloaded  Counter
	MatchesLoaded    Counter
	BlankRowsSkipped Counter
	InvalidOdds      Counter
	UndefinedRolling Counter
	UndefinedSeason  Counter
	UndefinedSplit   Counter
	RowsWritten      Counter
	Stages           *StageTimer
}{
	Stages: NewStageTimer(),
}

// LogSummary writes one line with every counter and one per timed stage.
func LogSummary() {
	m := &Metrics
	Infof("Run summary  files=%d  downloaded=%d  matches=%d  blank_rows=%d  invalid_odds=%d  undefined_roll=%d  undefined_season=%d  undefined_split=%d  rows_written=%d",
		m.FilesLoaded.Value(),
		m.FilesDownloaded.Value(),
		m.MatchesLoaded.Value(),
		m.BlankRowsSkipped.Value(),
		m.InvalidOdds.Value(),
		m.UndefinedRolling.Value(),
		m.UndefinedSeason.Value(),
		m.UndefinedSplit.Value(),
		m.RowsWritten.Value(),
	)
	for _, name := range m.Stages.Names() {
		d, _ := m.Stages.Get(name)
		Debugf("stage %-10s %s", name, d)
	}
}
