package commands

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/granary/ledger-engine/ledger"
	"github.com/granary/ledger-engine/store/sqlite"
)

func newSeedCommand() *cobra.Command {
	var (
		configPath string
		dbPath     string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Install the default chart of accounts",
		Long: `Seed creates any missing accounts from the built-in five-class
chart (1xxx assets through 5xxx expenses). Existing accounts are left
untouched, so seeding is safe to repeat.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, "", dbPath, "")
			if err != nil {
				return err
			}

			store, err := sqlite.New(cfg.Ledger.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			registry := ledger.NewRegistry(store)
			created, err := registry.SeedDefaultChart(context.Background())
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"created": created,
				"db":      cfg.Ledger.DBPath,
			}).Info("chart of accounts seeded")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to ledgerd.yaml")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default ledger.db)")

	return cmd
}
