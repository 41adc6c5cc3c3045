package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Cordxll/Resume-Builder/internal/db"
)

func newMigrateCmd(a *app) *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the session tables in PostgreSQL",
		Long: `Create the tables used to persist editing sessions. With --purge-expired, also delete
sessions idle for longer than the session TTL. Requires DATABASE_URL.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL environment variable is required")
			}
			ctx := cmd.Context()

			database, err := db.Connect(ctx, a.cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.EnsureSchema(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")

			if !purge {
				return nil
			}
			cutoff := time.Now().Add(-a.cfg.SessionTTL)
			n, err := database.DeleteSessionsBefore(ctx, cutoff)
			if err != nil {
				return err
			}
			a.log.Info("expired sessions purged", zap.Int64("deleted", n), zap.Time("cutoff", cutoff))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d expired sessions\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&purge, "purge-expired", false, "Delete sessions idle longer than the session TTL")
	return cmd
}
