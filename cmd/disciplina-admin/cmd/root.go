package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"disciplina/internal/cli"
	"disciplina/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "disciplina-admin",
	Short: "Admin tooling for the disciplina trading tracker",
	Long: `disciplina-admin operates directly on the SQLite database used by the
disciplina server: it runs migrations on open, seeds habits, and prints
aggregates from the terminal.

Examples:
  disciplina-admin habits
  disciplina-admin seed habits.yaml
  disciplina-admin monthly 2024 3
  disciplina-admin trading 2024-03-01 2024-03-31`,
}

var dbPath string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(cli.LoadEnvFile)
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "./data/disciplina.db", "path to the SQLite database")
}

// openRepo opens the database, running migrations as a side effect.
func openRepo() (*storage.SQLiteRepository, error) {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return repo, nil
}
