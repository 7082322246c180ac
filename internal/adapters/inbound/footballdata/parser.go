package footballdata

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/charleschow/match-features/internal/core/matches"
	"github.com/charleschow/match-features/internal/core/teams"
	"github.com/charleschow/match-features/internal/telemetry"
)

// ErrMissingColumn is returned when a season file lacks a column the
// feature engine needs.
var ErrMissingColumn = errors.New("missing required column")

// football-data.co.uk column names. See https://www.football-data.co.uk/notes.txt
var requiredColumns = []string{"Date", "HomeTeam", "AwayTeam", "FTHG", "FTAG", "B365H", "B365D", "B365A"}

var dateLayouts = []string{"02/01/2006", "02/01/06", "2006-01-02"}

// rawMatch keeps every cell as text so blank trailing rows and missing
// prices can be told apart from real parse errors.
type rawMatch struct {
	Date     string `csv:"Date"`
	HomeTeam string `csv:"HomeTeam"`
	AwayTeam string `csv:"AwayTeam"`
	FTHG     string `csv:"FTHG"`
	FTAG     string `csv:"FTAG"`
	Result   string `csv:"Result"` // 0/1/2, present in preprocessed files
	FTR      string `csv:"FTR"`    // H/D/A, present in raw downloads
	B365H    string `csv:"B365H"`
	B365D    string `csv:"B365D"`
	B365A    string `csv:"B365A"`
}

// Parse decodes one season file. seasonFile is stored on every match.
// Match IDs are left at zero; the caller renumbers the combined table.
func Parse(seasonFile string, data []byte, names *teams.Normalizer) (matches.Table, error) {
	data = trimBOM(data)
	if err := checkHeader(data); err != nil {
		return nil, fmt.Errorf("%s: %w", seasonFile, err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var raws []rawMatch
	if err := gocsv.UnmarshalCSV(reader, &raws); err != nil {
		return nil, fmt.Errorf("%s: decode csv: %w", seasonFile, err)
	}

	out := make(matches.Table, 0, len(raws))
	for i, r := range raws {
		line := i + 2 // header is line 1
		if strings.TrimSpace(r.HomeTeam) == "" && strings.TrimSpace(r.AwayTeam) == "" {
			telemetry.Metrics.BlankRowsSkipped.Inc()
			continue
		}
		m, err := r.toMatch(seasonFile, names)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", seasonFile, line, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func checkHeader(data []byte) error {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	if !present["Result"] && !present["FTR"] {
		return fmt.Errorf("%w: Result or FTR", ErrMissingColumn)
	}
	return nil
}

func (r rawMatch) toMatch(seasonFile string, names *teams.Normalizer) (matches.Match, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return matches.Match{}, err
	}
	hg, err := strconv.Atoi(strings.TrimSpace(r.FTHG))
	if err != nil {
		return matches.Match{}, fmt.Errorf("FTHG %q: %w", r.FTHG, err)
	}
	ag, err := strconv.Atoi(strings.TrimSpace(r.FTAG))
	if err != nil {
		return matches.Match{}, fmt.Errorf("FTAG %q: %w", r.FTAG, err)
	}

	code := r.Result
	if strings.TrimSpace(code) == "" {
		code = r.FTR
	}
	res, err := matches.ParseResult(code)
	if err != nil {
		return matches.Match{}, err
	}

	return matches.Match{
		Date:       date,
		SeasonFile: seasonFile,
		HomeTeam:   names.Canonical(r.HomeTeam),
		AwayTeam:   names.Canonical(r.AwayTeam),
		FTHG:       hg,
		FTAG:       ag,
		Result:     res,
		B365H:      parsePrice(r.B365H),
		B365D:      parsePrice(r.B365D),
		B365A:      parsePrice(r.B365A),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if len(s) != len(layout) {
			continue
		}
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func trimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte("\ufeff"))
}

// parsePrice returns NaN for blank or malformed odds.
func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
