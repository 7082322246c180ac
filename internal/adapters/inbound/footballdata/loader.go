package footballdata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charleschow/match-features/internal/core/matches"
	"github.com/charleschow/match-features/internal/core/teams"
	"github.com/charleschow/match-features/internal/telemetry"
)

var ErrNoFiles = errors.New("no CSV files found")

// LoadDir reads every *.csv in dir, in name order, tags each match with
// its file name as SeasonFile and returns the concatenated table.
func LoadDir(dir string, names *teams.Normalizer) (matches.Table, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, dir)
	}
	sort.Strings(paths)

	var all matches.Table
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		tbl, err := Parse(filepath.Base(p), data, names)
		if err != nil {
			return nil, err
		}
		telemetry.Metrics.FilesLoaded.Inc()
		telemetry.Debugf("loaded %s  matches=%d", filepath.Base(p), len(tbl))
		all = append(all, tbl...)
	}
	all.Renumber()

	telemetry.Metrics.MatchesLoaded.Add(int64(len(all)))
	telemetry.Infof("Loaded raw matches  dir=%s  files=%d  matches=%d", dir, len(paths), len(all))
	return all, nil
}
