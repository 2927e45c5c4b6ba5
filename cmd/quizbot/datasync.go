package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/quizbot/internal/database"
	"github.com/at-ishikawa/quizbot/internal/datasync"
	"github.com/at-ishikawa/quizbot/internal/question"
)

func newImportCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import questions from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := datasync.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read questions: %w", err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			out := cmd.OutOrStdout()
			importer := datasync.NewImporter(question.NewDBRepository(db), out)
			result, err := importer.Import(cmd.Context(), questions, datasync.ImportOptions{DryRun: dryRun})
			if err != nil {
				return fmt.Errorf("import questions: %w", err)
			}

			fmt.Fprintln(out, "\nImport Summary:")
			if dryRun {
				fmt.Fprintln(out, "  (dry-run mode, no changes made)")
			}
			fmt.Fprintf(out, "  Questions:  %d new, %d updated\n", result.New, result.Updated)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be imported without writing")
	return cmd
}
