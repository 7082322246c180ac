package featurestore

import (
	"fmt"
	"strings"
)

// dialect covers the SQL differences between the supported drivers.
type dialect struct {
	driver   string
	serial   string
	real     string
	numbered bool // $1, $2 placeholders instead of ?
}

var dialects = map[string]dialect{
	"sqlite": {
		driver: "sqlite",
		serial: "INTEGER PRIMARY KEY AUTOINCREMENT",
		real:   "REAL",
	},
	"postgres": {
		driver:   "postgres",
		serial:   "BIGSERIAL PRIMARY KEY",
		real:     "DOUBLE PRECISION",
		numbered: true,
	},
}

func lookupDialect(name string) (dialect, error) {
	d, ok := dialects[strings.ToLower(name)]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported store driver %q", name)
	}
	return d, nil
}

func (d dialect) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		if d.numbered {
			parts[i] = fmt.Sprintf("$%d", i+1)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ",")
}

// rebind rewrites ? placeholders for drivers that number them.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (d dialect) columnType(k kind) string {
	switch k {
	case kindInt:
		return "INTEGER"
	case kindReal:
		return d.real
	default:
		return "TEXT"
	}
}

func (d dialect) schema() []string {
	cols := make([]string, 0, len(matchColumns))
	for _, c := range matchColumns {
		cols = append(cols, fmt.Sprintf("%s %s", c.name, d.columnType(c.kind)))
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS feature_runs (
			run_id            TEXT PRIMARY KEY,
			started_at        TEXT    NOT NULL,
			matches           INTEGER NOT NULL,
			rolling_window    INTEGER NOT NULL,
			split_window      INTEGER NOT NULL,
			split_min_periods INTEGER NOT NULL,
			elo_k             ` + d.real + ` NOT NULL,
			elo_start         ` + d.real + ` NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS match_features (
			id     ` + d.serial + `,
			run_id TEXT NOT NULL REFERENCES feature_runs(run_id) ON DELETE CASCADE,
			` + strings.Join(cols, ",\n\t\t\t") + `
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mf_run ON match_features(run_id, match_id)`,
	}
}
