package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charleschow/match-features/internal/adapters/inbound/footballdata"
	"github.com/charleschow/match-features/internal/adapters/outbound/csvexport"
	"github.com/charleschow/match-features/internal/adapters/outbound/featurestore"
	"github.com/charleschow/match-features/internal/config"
	"github.com/charleschow/match-features/internal/core/features"
	"github.com/charleschow/match-features/internal/core/rating"
	"github.com/charleschow/match-features/internal/core/teams"
	"github.com/charleschow/match-features/internal/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))
	telemetry.Infof("Starting feature build")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		telemetry.Errorf("Feature build failed: %v", err)
		telemetry.LogSummary()
		os.Exit(1)
	}
	telemetry.LogSummary()
}

func run(ctx context.Context, cfg *config.Config) error {
	// ── Feature settings ────────────────────────────────────────
	settings, err := config.LoadFeatureSettings(cfg.FeaturesPath)
	if err != nil {
		return err
	}
	names := teams.NewNormalizer(settings.TeamAliases)

	// ── Raw seasons ─────────────────────────────────────────────
	if cfg.FetchMissing && len(settings.Sources) > 0 {
		client := footballdata.NewClient(cfg.DownloadPerSecond, time.Duration(cfg.DownloadTimeoutS)*time.Second)
		n, err := client.FetchMissing(ctx, cfg.RawDataDir, seasonSources(settings.Sources))
		if err != nil {
			return err
		}
		if n > 0 {
			telemetry.Infof("Fetched missing seasons  count=%d", n)
		}
	}

	table, err := footballdata.LoadDir(cfg.RawDataDir, names)
	if err != nil {
		return err
	}

	// ── Features ────────────────────────────────────────────────
	params := featureParams(settings)
	rows, err := features.Build(table, params)
	if err != nil {
		return err
	}

	// ── Outputs ─────────────────────────────────────────────────
	if err := csvexport.WriteFile(cfg.FeaturesCSVPath, rows); err != nil {
		return err
	}

	if cfg.StoreDriver == "" {
		telemetry.Debugf("Feature store disabled")
		return nil
	}
	store, err := featurestore.Open(cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.WriteRun(ctx, params, rows)
	return err
}

func featureParams(s config.FeatureSettings) features.Params {
	return features.Params{
		RollingWindow:   s.Rolling.Window,
		SplitWindow:     s.Split.Window,
		SplitMinPeriods: s.Split.MinPeriods,
		Elo:             rating.EloParams{K: s.Elo.K, Start: s.Elo.Start},
	}
}

func seasonSources(in []config.SeasonSource) []footballdata.Source {
	out := make([]footballdata.Source, len(in))
	for i, s := range in {
		out[i] = footballdata.Source{SeasonFile: s.SeasonFile, URL: s.URL}
	}
	return out
}
