package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Cordxll/Resume-Builder/internal/db"
	"github.com/Cordxll/Resume-Builder/internal/server"
	"github.com/Cordxll/Resume-Builder/internal/server/ratelimit"
	"github.com/Cordxll/Resume-Builder/internal/session"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start an HTTP server that exposes the parse, analyze, tailor and export endpoints
used by the web UI. SESSION_SECRET is required. When DATABASE_URL is set, editing
sessions are also stored in PostgreSQL and survive restarts.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// --port has its own binding so it only overrides PORT when given
			if cmd.Flags().Changed("port") {
				port, _ := cmd.Flags().GetInt("port")
				a.cfg.Port = port
			}
			cfg := a.cfg
			log := a.log
			ctx := cmd.Context()

			sessionOpts := []session.Option{session.WithTTL(cfg.SessionTTL), session.WithLogger(log)}
			if cfg.DatabaseURL != "" {
				database, err := db.Connect(ctx, cfg.DatabaseURL)
				if err != nil {
					return err
				}
				defer database.Close()
				if err := database.EnsureSchema(ctx); err != nil {
					return err
				}
				sessionOpts = append(sessionOpts, session.WithPersister(database))
				log.Info("persisting sessions to database")
			}

			rewriter, err := a.rewriter(ctx, "")
			if err != nil {
				return err
			}

			srv, err := server.New(server.Options{
				Config:    cfg,
				Logger:    log,
				Rewriter:  rewriter,
				Sessions:  session.NewManager(sessionOpts...),
				RateLimit: ratelimit.LoadConfig(),
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			log.Info("starting server", zap.Int("port", cfg.Port), zap.Bool("llm", rewriter != nil))
			return srv.Start(ctx)
		},
	}

	cmd.Flags().Int("port", 0, "Port to listen on (default $PORT or 8080)")
	return cmd
}
