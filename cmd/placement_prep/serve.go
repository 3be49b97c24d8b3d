package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/placement-prep/internal/db"
	"github.com/jonathan/placement-prep/internal/ingestion"
	"github.com/jonathan/placement-prep/internal/server"
	"github.com/jonathan/placement-prep/internal/server/ratelimit"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: "Start an HTTP server exposing the rule catalogue, scoring, evaluation, suggestions, " +
			"job-context ingestion and resume storage. DATABASE_URL selects the store " +
			"(memory://, postgres://, redis://, sqlite://).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = a.cfg.ListenAddr
			}

			// Fail fast on a broken rule bundle instead of on the first request
			if err := a.loader.Preload(ctx); err != nil {
				return fmt.Errorf("failed to load rule bundles: %w", err)
			}

			store, err := db.Open(ctx, a.cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to open resume store: %w", err)
			}

			opts := ingestion.DefaultFetchOptions()
			if timeout := a.cfg.FetchTimeout(); timeout > 0 {
				opts.Timeout = timeout
			}

			srv := server.New(server.Config{
				Addr:           addr,
				Store:          store,
				Loader:         a.loader,
				Ingester:       ingestion.NewIngester(a.logger, opts),
				RateLimit:      ratelimit.LoadConfig(),
				AllowedOrigins: a.cfg.AllowedOrigins,
				Level:          a.cfg.LevelOrDefault(),
				Strategy:       a.cfg.Strategy,
				Logger:         a.logger,
			})
			return srv.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	return cmd
}
