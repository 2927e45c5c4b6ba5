package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/quizbot/internal/database"
	"github.com/at-ishikawa/quizbot/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			applied, err := database.Migrate(cmd.Context(), db, schemas.Migrations)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				_, err = fmt.Fprintln(out, "Database is up to date.")
				return err
			}
			for _, version := range applied {
				if _, err := fmt.Fprintf(out, "  [APPLIED]  %s\n", version); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
