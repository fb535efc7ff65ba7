// Package daemon assembles and runs the aircast engagement core: config,
// storage, services, event ingest, HTTP API, and the weekly sweep.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the daemon configuration, loaded from TOML.
type Config struct {
	API       APIConfig       `toml:"api"`
	Rewards   RewardsConfig   `toml:"rewards"`
	Analytics AnalyticsConfig `toml:"analytics"`
	Storage   StorageConfig   `toml:"storage"`
	Log       LogConfig       `toml:"log"`
}

// APIConfig controls the HTTP listener.
type APIConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Metrics bool   `toml:"metrics"`
}

// RewardsConfig controls reward bounds and the weekly sweep.
type RewardsConfig struct {
	LedgerCap       int    `toml:"ledger_cap"`
	LeaderboardSize int    `toml:"leaderboard_size"`
	SweepInterval   string `toml:"sweep_interval"` // weekly boundary check cadence
}

// AnalyticsConfig controls analytics bounds.
type AnalyticsConfig struct {
	SessionHistoryCap int `toml:"session_history_cap"`
	HistoryDays       int `toml:"history_days"`
	TopSongs          int `toml:"top_songs"`
}

// StorageConfig controls the sqlite-backed replay log and registry.
type StorageConfig struct {
	Dir           string `toml:"dir"`
	ReplayOnStart bool   `toml:"replay_on_start"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns the daemon defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:    "127.0.0.1",
			Port:    8808,
			Metrics: true,
		},
		Rewards: RewardsConfig{
			LedgerCap:       100,
			LeaderboardSize: 20,
			SweepInterval:   "1m",
		},
		Analytics: AnalyticsConfig{
			SessionHistoryCap: 1000,
			HistoryDays:       7,
			TopSongs:          10,
		},
		Storage: StorageConfig{
			Dir:           defaultStorageDir(),
			ReplayOnStart: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the config file at path over the defaults. A missing file is
// not an error — defaults apply.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultConfigPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfigPath returns ~/.aircast/config.toml, honoring AIRCAST_HOME.
func DefaultConfigPath() string {
	return filepath.Join(homeDir(), "config.toml")
}

// SweepIntervalDuration parses the weekly boundary check cadence, falling
// back to one minute on a bad value.
func (c RewardsConfig) SweepIntervalDuration() time.Duration {
	d, err := time.ParseDuration(c.SweepInterval)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// Addr returns the host:port the API listens on.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func defaultStorageDir() string {
	return filepath.Join(homeDir(), "data")
}

func homeDir() string {
	if env := os.Getenv("AIRCAST_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".aircast")
}
