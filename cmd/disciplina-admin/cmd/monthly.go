package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"disciplina/internal/analytics"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly <year> <month>",
	Short: "Print the monthly habit summary",
	Args:  cobra.ExactArgs(2),
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(cmd *cobra.Command, args []string) error {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid year %q: %w", args[0], err)
	}
	month, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid month %q: %w", args[1], err)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range", month)
	}

	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	summary, err := analytics.New(repo).MonthlySummary(cmd.Context(), year, month)
	if err != nil {
		return fmt.Errorf("monthly summary: %w", err)
	}

	fmt.Printf("Summary for %04d-%02d\n", summary.Year, summary.Month)
	fmt.Printf("  Active habits:   %d\n", summary.TotalHabits)
	fmt.Printf("  Completion rate: %d%%\n", summary.CompletionRate)
	fmt.Printf("  Best streak:     %d days\n", summary.BestStreak)
	fmt.Printf("  Perfect days:    %d\n", summary.PerfectDays)
	return nil
}
