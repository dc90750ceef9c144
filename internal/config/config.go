package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Engine   EngineConfig   `yaml:"engine"`
}

// BusinessConfig identifies the business entity being reported on.
type BusinessConfig struct {
	Name       string `yaml:"name"`
	EntityType string `yaml:"entity_type"`
}

// EngineConfig holds the aggregation bounds. Every truncation the
// engine applies is named here rather than hard-coded.
type EngineConfig struct {
	// WindowDays is the cash-timeline lookback window, inclusive of today.
	WindowDays int `yaml:"window_days"`
	// MaxJournalLines caps the journal snapshot to the most recent N
	// lines. 0 means unbounded.
	MaxJournalLines int `yaml:"max_journal_lines"`
	// MaxTransactionsPerDay caps the drill-down list on each day bucket.
	MaxTransactionsPerDay int `yaml:"max_transactions_per_day"`
	// BalanceTolerance is the trial-balance match tolerance.
	BalanceTolerance float64 `yaml:"balance_tolerance"`
	// OverdueDays is the aging threshold separating current from overdue.
	OverdueDays int `yaml:"overdue_days"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the standard engine bounds.
func Default(businessName, entityType string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:       businessName,
			EntityType: entityType,
		},
		Engine: EngineConfig{
			WindowDays:            90,
			MaxJournalLines:       1000,
			MaxTransactionsPerDay: 50,
			BalanceTolerance:      0.01,
			OverdueDays:           30,
		},
	}
}
