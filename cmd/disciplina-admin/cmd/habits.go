package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"disciplina/internal/analytics"
	"disciplina/internal/core"
)

var habitsCmd = &cobra.Command{
	Use:   "habits",
	Short: "List habits with current streak and monthly completion rate",
	Args:  cobra.NoArgs,
	RunE:  runHabits,
}

var habitsAll bool

func init() {
	rootCmd.AddCommand(habitsCmd)
	habitsCmd.Flags().BoolVarP(&habitsAll, "all", "a", false, "include deactivated habits")
}

func runHabits(cmd *cobra.Command, _ []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx := cmd.Context()
	habits, err := repo.ListHabits(ctx, !habitsAll)
	if err != nil {
		return fmt.Errorf("list habits: %w", err)
	}

	agg := analytics.New(repo)
	today := core.DayOf(time.Now())

	fmt.Printf("%-20s %-30s %-12s %8s %6s\n", "ID", "NAME", "CATEGORY", "STREAK", "RATE")
	for _, h := range habits {
		stats, err := agg.HabitStats(ctx, h.ID, today)
		if err != nil {
			return fmt.Errorf("habit stats for %s: %w", h.ID, err)
		}
		name := h.Name
		if !h.Active {
			name += " (inactive)"
		}
		fmt.Printf("%-20s %-30s %-12s %8d %5d%%\n", h.ID, name, h.Category, stats.CurrentStreak, stats.CompletionRate)
	}
	return nil
}
