// Package config loads the optional ledgerd.yaml configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level ledgerd.yaml configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Ledger LedgerConfig `yaml:"ledger"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LedgerConfig controls storage and reference allocation.
type LedgerConfig struct {
	DBPath          string `yaml:"db_path"`
	ReferencePrefix string `yaml:"reference_prefix"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Ledger: LedgerConfig{DBPath: "ledger.db", ReferencePrefix: "TXN"},
	}
}

// Load reads a YAML config file from disk, filling unset fields with
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Ledger.DBPath == "" {
		cfg.Ledger.DBPath = "ledger.db"
	}
	if cfg.Ledger.ReferencePrefix == "" {
		cfg.Ledger.ReferencePrefix = "TXN"
	}
	return cfg, nil
}
