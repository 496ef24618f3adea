// Package config loads runtime settings from the environment and the
// optional balance file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/nathoo/dailyquest/engine/progression"
	"github.com/nathoo/dailyquest/types"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// DefaultSaveKey is the slot key the save record is written under.
const DefaultSaveKey = "solo_leveling_save"

// Config holds settings read from DAILYQUEST_* variables.
type Config struct {
	Backend     string `env:"DAILYQUEST_BACKEND" envDefault:"file"`
	DataDir     string `env:"DAILYQUEST_DATA_DIR"`
	SQLitePath  string `env:"DAILYQUEST_SQLITE_PATH"`
	PostgresDSN string `env:"DAILYQUEST_POSTGRES_DSN"`
	SaveKey     string `env:"DAILYQUEST_SAVE_KEY" envDefault:"solo_leveling_save"`
	QuestFile   string `env:"DAILYQUEST_QUEST_FILE"`
	BalanceFile string `env:"DAILYQUEST_BALANCE_FILE"`
	Seed        int64  `env:"DAILYQUEST_SEED" envDefault:"0"`
	Plain       bool   `env:"DAILYQUEST_PLAIN"`
	Verbose     bool   `env:"DAILYQUEST_VERBOSE"`
}

// FromEnv parses the environment and fills derived defaults.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.SaveKey = strings.TrimSpace(cfg.SaveKey); cfg.SaveKey == "" {
		cfg.SaveKey = DefaultSaveKey
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".dailyquest")
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.DataDir, "dailyquest.sqlite")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the backend selection.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
		return nil
	case BackendPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return fmt.Errorf("DAILYQUEST_BACKEND=postgres requires DAILYQUEST_POSTGRES_DSN")
		}
		return nil
	default:
		return fmt.Errorf("unsupported DAILYQUEST_BACKEND %q", c.Backend)
	}
}

// LoadBalance reads the YAML balance file at path over the stock economy.
// An empty path returns the defaults.
func LoadBalance(path string) (types.Balance, error) {
	b := progression.DefaultBalance()
	if path == "" {
		return b, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Balance{}, fmt.Errorf("reading balance file: %w", err)
	}
	if err := yaml.Unmarshal(data, &b); err != nil {
		return types.Balance{}, fmt.Errorf("parsing balance file %s: %w", path, err)
	}
	if err := ValidateBalance(b); err != nil {
		return types.Balance{}, fmt.Errorf("balance file %s: %w", path, err)
	}
	return b, nil
}

// ValidateBalance rejects non-positive economy values.
func ValidateBalance(b types.Balance) error {
	switch {
	case b.TaskXP <= 0:
		return fmt.Errorf("task_xp must be positive, got %v", b.TaskXP)
	case b.QuestXP <= 0:
		return fmt.Errorf("quest_xp must be positive, got %v", b.QuestXP)
	case b.StatPointsPerLevel <= 0:
		return fmt.Errorf("stat_points_per_level must be positive, got %d", b.StatPointsPerLevel)
	case b.LevelGrowth <= 0:
		return fmt.Errorf("level_growth must be positive, got %v", b.LevelGrowth)
	case b.StartingThreshold <= 0:
		return fmt.Errorf("starting_threshold must be positive, got %v", b.StartingThreshold)
	}
	return nil
}
