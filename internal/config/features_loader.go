package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type RollingSettings struct {
	Window int `yaml:"window"`
}

type SplitSettings struct {
	Window     int `yaml:"window"`
	MinPeriods int `yaml:"min_periods"`
}

type EloSettings struct {
	K     float64 `yaml:"k"`
	Start float64 `yaml:"start"`
}

// SeasonSource names one raw season file and where to download it from.
type SeasonSource struct {
	SeasonFile string `yaml:"season_file"`
	URL        string `yaml:"url"`
}

type FeatureSettings struct {
	Rolling     RollingSettings   `yaml:"rolling"`
	Split       SplitSettings     `yaml:"split"`
	Elo         EloSettings       `yaml:"elo"`
	Sources     []SeasonSource    `yaml:"sources"`
	TeamAliases map[string]string `yaml:"team_aliases"`
}

func DefaultFeatureSettings() FeatureSettings {
	return FeatureSettings{
		Rolling: RollingSettings{Window: 5},
		Split:   SplitSettings{Window: 5, MinPeriods: 3},
		Elo:     EloSettings{K: 20, Start: 1500},
	}
}

// LoadFeatureSettings reads the yaml file at path. Fields left out of the
// file keep their defaults.
func LoadFeatureSettings(path string) (FeatureSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FeatureSettings{}, fmt.Errorf("read feature settings: %w", err)
	}

	settings := DefaultFeatureSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return FeatureSettings{}, fmt.Errorf("parse feature settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return FeatureSettings{}, fmt.Errorf("feature settings %s: %w", path, err)
	}
	return settings, nil
}

func (fs FeatureSettings) Validate() error {
	if fs.Rolling.Window < 1 {
		return fmt.Errorf("rolling.window must be >= 1, got %d", fs.Rolling.Window)
	}
	if fs.Split.Window < 1 {
		return fmt.Errorf("split.window must be >= 1, got %d", fs.Split.Window)
	}
	if fs.Split.MinPeriods < 1 || fs.Split.MinPeriods > fs.Split.Window {
		return fmt.Errorf("split.min_periods must be in [1, %d], got %d", fs.Split.Window, fs.Split.MinPeriods)
	}
	if fs.Elo.K <= 0 {
		return fmt.Errorf("elo.k must be positive, got %g", fs.Elo.K)
	}
	seen := make(map[string]bool, len(fs.Sources))
	for _, src := range fs.Sources {
		if src.SeasonFile == "" || src.URL == "" {
			return fmt.Errorf("source needs season_file and url: %+v", src)
		}
		if seen[src.SeasonFile] {
			return fmt.Errorf("duplicate source season_file %q", src.SeasonFile)
		}
		seen[src.SeasonFile] = true
	}
	return nil
}
