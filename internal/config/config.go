// Package config resolves where the library lives and how the app runs.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables understood by the app.
const (
	EnvDataDir         = "BOOKREADER_DATA_DIR"
	EnvLogLevel        = "BOOKREADER_LOG_LEVEL"
	EnvCompactSchedule = "BOOKREADER_COMPACT_SCHEDULE"
)

// DefaultCompactSchedule compacts the library once a day.
const DefaultCompactSchedule = "@daily"

// Config holds runtime settings.
type Config struct {
	DataDir         string
	LogLevel        string
	CompactSchedule string
}

// DBPath is the SQLite file holding the library.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "library.db")
}

// Load builds the configuration from defaults, an optional .env file in the
// data directory, and the process environment (which wins).
func Load() (Config, error) {
	dataDir := os.Getenv(EnvDataDir)
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		dataDir = filepath.Join(homeDir, ".local", "share", "bookreader")
	}

	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(filepath.Join(dataDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	cfg := Config{
		DataDir:         dataDir,
		LogLevel:        "info",
		CompactSchedule: DefaultCompactSchedule,
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvCompactSchedule); ok {
		cfg.CompactSchedule = v
	}
	return cfg, nil
}
