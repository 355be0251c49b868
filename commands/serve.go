package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/granary/ledger-engine/api"
	"github.com/granary/ledger-engine/ledger"
	"github.com/granary/ledger-engine/store/sqlite"
)

func newServeCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		dbPath     string
		refPrefix  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the ledger HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, addr, dbPath, refPrefix)
			if err != nil {
				return err
			}

			store, err := sqlite.New(cfg.Ledger.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			handler := api.NewHandler(store, ledger.NewReferenceAllocator(cfg.Ledger.ReferencePrefix))
			router := api.NewRouter(handler)

			server := &http.Server{
				Addr:         cfg.Server.Addr,
				Handler:      router,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.WithFields(log.Fields{
					"addr": cfg.Server.Addr,
					"db":   cfg.Ledger.DBPath,
				}).Info("ledger server starting")
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-quit:
				log.WithField("signal", sig.String()).Info("shutting down")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return err
			}
			log.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to ledgerd.yaml")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default ledger.db)")
	cmd.Flags().StringVar(&refPrefix, "ref-prefix", "", "transaction reference prefix (default TXN)")

	return cmd
}
