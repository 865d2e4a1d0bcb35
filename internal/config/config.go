// Package config loads run configuration: which accounts are enabled and
// which tolerances reconciliation should use. Values come from an optional
// YAML file, with a .env file and environment variables layered on top.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AccountsEnv overrides the enabled-accounts list with a comma-separated
// value, e.g. BUDGETBRIDGE_ACCOUNTS=isracard,leumi.
const AccountsEnv = "BUDGETBRIDGE_ACCOUNTS"

// Config is the full run configuration.
type Config struct {
	// Accounts enables scraped accounts by name. Empty means all accounts.
	Accounts []string `yaml:"accounts"`

	Reconcile ReconcileConfig `yaml:"reconcile"`
}

// ReconcileConfig tunes the matcher; zero values fall back to the standard
// tolerances (0.01 amount, 2 days).
type ReconcileConfig struct {
	AmountTolerance   float64 `yaml:"amount_tolerance"`
	DateToleranceDays int     `yaml:"date_tolerance_days"`
}

// Load reads configuration from the given YAML path (skipped when empty),
// then applies .env and environment overrides. A missing .env file is not
// an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse %s: %w", path, err)
		}
	}

	_ = godotenv.Load()

	if v := os.Getenv(AccountsEnv); v != "" {
		cfg.Accounts = cfg.Accounts[:0]
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Accounts = append(cfg.Accounts, name)
			}
		}
	}

	return cfg, nil
}

// AccountEnabled reports whether the named account should be processed.
// With no configured list every account is enabled.
func (c *Config) AccountEnabled(name string) bool {
	if len(c.Accounts) == 0 {
		return true
	}
	for _, enabled := range c.Accounts {
		if strings.EqualFold(strings.TrimSpace(name), enabled) {
			return true
		}
	}
	return false
}
