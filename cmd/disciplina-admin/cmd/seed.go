package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"disciplina/internal/core"
)

var seedCmd = &cobra.Command{
	Use:   "seed <habits.yaml>",
	Short: "Seed habits into the database from a YAML file",
	Long: `Seed reads a YAML list of habits and inserts them. Existing habits with
the same id are left untouched.

File format:
  - id: habit-premarket
    name: Pre-market plan written
    category: preparation`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
}

func runSeed(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var entries []seedEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("seed file %s contains no habits", args[0])
	}

	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx := cmd.Context()
	now := time.Now().UTC()
	created := 0
	skipped := 0

	for _, e := range entries {
		h := core.Habit{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Category:    e.Category,
			Active:      true,
			CreatedAt:   now,
		}
		if err := h.Validate(); err != nil {
			return fmt.Errorf("invalid habit %q: %w", e.ID, err)
		}

		if _, exists, err := repo.GetHabit(ctx, h.ID); err != nil {
			return fmt.Errorf("check habit %s: %w", h.ID, err)
		} else if exists {
			skipped++
			continue
		}

		if err := repo.CreateHabit(ctx, h); err != nil {
			return fmt.Errorf("create habit %s: %w", h.ID, err)
		}
		created++
	}

	fmt.Printf("Seeded %d habits (%d already present)\n", created, skipped)
	return nil
}
