// Package commands defines the ledgerd CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/granary/ledger-engine/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ledgerd",
		Short:   "Double-entry ledger engine",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newVerifyCommand())

	return rootCmd
}

// loadConfig resolves flags into a configuration: an explicit config
// file wins, then flag overrides are applied on top.
func loadConfig(configPath, addr, dbPath, refPrefix string) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if dbPath != "" {
		cfg.Ledger.DBPath = dbPath
	}
	if refPrefix != "" {
		cfg.Ledger.ReferencePrefix = refPrefix
	}
	return cfg, nil
}
