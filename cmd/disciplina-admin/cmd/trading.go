package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"disciplina/internal/analytics"
	"disciplina/internal/core"
)

var tradingCmd = &cobra.Command{
	Use:   "trading <from> <to>",
	Short: "Print trading performance stats for a day range",
	Long: `Trading aggregates the trade reviews recorded between two days
(inclusive, YYYY-MM-DD) into win rate, PnL totals, and the emotional
state distribution.`,
	Args: cobra.ExactArgs(2),
	RunE: runTrading,
}

func init() {
	rootCmd.AddCommand(tradingCmd)
}

func runTrading(cmd *cobra.Command, args []string) error {
	from, err := core.ParseDay(args[0])
	if err != nil {
		return fmt.Errorf("invalid from day %q: %w", args[0], err)
	}
	to, err := core.ParseDay(args[1])
	if err != nil {
		return fmt.Errorf("invalid to day %q: %w", args[1], err)
	}

	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	stats, err := analytics.New(repo).TradingStats(cmd.Context(), from, to)
	if err != nil {
		return fmt.Errorf("trading stats: %w", err)
	}

	fmt.Printf("Trading stats %s .. %s\n", from, to)
	fmt.Printf("  Trades:        %d (%d wins, %d losses)\n", stats.TotalTrades, stats.WinningTrades, stats.LosingTrades)
	fmt.Printf("  Win rate:      %d%%\n", stats.WinRate)
	fmt.Printf("  Total PnL:     %.2f\n", stats.TotalPnL)
	fmt.Printf("  Avg win:       %.2f\n", stats.AvgWin)
	fmt.Printf("  Avg loss:      %.2f\n", stats.AvgLoss)
	fmt.Printf("  Profit factor: %.2f\n", stats.ProfitFactor)

	if len(stats.EmotionalStates) > 0 {
		fmt.Println("  Emotional states:")
		states := make([]string, 0, len(stats.EmotionalStates))
		for s := range stats.EmotionalStates {
			states = append(states, s)
		}
		sort.Strings(states)
		for _, s := range states {
			fmt.Printf("    %-12s %d\n", s, stats.EmotionalStates[s])
		}
	}
	return nil
}
