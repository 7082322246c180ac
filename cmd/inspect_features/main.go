package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charleschow/match-features/internal/adapters/outbound/featurestore"
	"github.com/charleschow/match-features/internal/config"
)

var compactColumns = []string{
	"match_id", "date", "home_team", "away_team", "fthg", "ftag", "result",
	"p_home", "p_draw", "p_away",
	"home_pts_roll", "away_pts_roll",
	"season_pts_gap", "pts_gap_split",
	"elo_home", "elo_away", "elo_diff",
}

func main() {
	cfg := config.Load()

	n := flag.Int("n", 10, "number of most recent matches to display")
	verbose := flag.Bool("v", false, "show all feature columns")
	driver := flag.String("driver", cfg.StoreDriver, "store driver: sqlite or postgres")
	dsn := flag.String("dsn", cfg.StoreDSN, "store DSN (sqlite path or postgres connection string)")
	flag.Parse()

	if err := inspect(context.Background(), *driver, *dsn, *n, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "inspect_features: %v\n", err)
		os.Exit(1)
	}
}

func inspect(ctx context.Context, driver, dsn string, n int, verbose bool) error {
	store, err := featurestore.Open(driver, dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.LatestRun(ctx)
	if errors.Is(err, featurestore.ErrNoRuns) {
		fmt.Println("(no data)")
		return nil
	}
	if err != nil {
		return err
	}

	p := run.Params
	fmt.Printf("=== Feature run %s ===\n", run.ID)
	fmt.Printf("Started: %s  |  matches=%d  rolling=%d  split=%d/%d  elo_k=%g  elo_start=%g\n",
		run.StartedAt.Format("2006-01-02 15:04:05 MST"), run.Matches,
		p.RollingWindow, p.SplitWindow, p.SplitMinPeriods, p.Elo.K, p.Elo.Start)

	count, err := store.CountRows(ctx, run.ID)
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Println("(no data)")
		return nil
	}

	var cols []string
	if !verbose {
		cols = compactColumns
	}
	grid, err := store.Select(ctx, run.ID, cols, n)
	if err != nil {
		return err
	}

	fmt.Printf("Rows: %d  |  Showing last %d:\n", count, min(n, count))
	printGrid(grid)
	return nil
}

func printGrid(g featurestore.Grid) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(g.Columns, "\t"))
	fmt.Fprintln(w, strings.Repeat("----\t", len(g.Columns)))

	// Select returns newest first; print oldest first.
	for i := len(g.Rows) - 1; i >= 0; i-- {
		cells := make([]string, len(g.Rows[i]))
		for j, v := range g.Rows[i] {
			cells[j] = fmtCell(v)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
}

func fmtCell(v any) string {
	if v == nil {
		return "-"
	}
	switch x := v.(type) {
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%.3f", x)
	case int64:
		return fmt.Sprintf("%d", x)
	case []byte:
		return string(x)
	case string:
		return x
	default:
		return fmt.Sprintf("%v", v)
	}
}
