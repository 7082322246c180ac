package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Raw match CSVs, one file per season.
	RawDataDir string

	// Feature parameters, season sources and team aliases.
	FeaturesPath string

	// Outputs
	FeaturesCSVPath string
	StoreDriver     string // "sqlite" or "postgres"; empty disables the store
	StoreDSN        string

	// football-data.co.uk downloads
	FetchMissing      bool
	DownloadPerSecond int
	DownloadTimeoutS  int

	// Telemetry
	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		RawDataDir:   envStr("RAW_DATA_DIR", "data/raw"),
		FeaturesPath: envStr("FEATURES_CONFIG_PATH", "internal/config/features.yaml"),

		FeaturesCSVPath: envStr("FEATURES_CSV_PATH", "data/processed/features.csv"),
		StoreDriver:     envStr("FEATURE_STORE_DRIVER", "sqlite"),
		StoreDSN:        envStr("FEATURE_STORE_DSN", "data/features.db"),

		FetchMissing:      envStr("FETCH_MISSING_SEASONS", "true") == "true",
		DownloadPerSecond: envInt("DOWNLOAD_PER_SECOND", 2),
		DownloadTimeoutS:  envInt("DOWNLOAD_TIMEOUT_SEC", 30),

		LogLevel: envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
