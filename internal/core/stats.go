package core

type (
	// HabitStats is the per-habit snapshot for a reference day.
	HabitStats struct {
		HabitID            string `json:"habitId"`
		CurrentStreak      int    `json:"currentStreak"`
		CompletionRate     int    `json:"completionRate"`
		CompletedToday     bool   `json:"completedToday"`
		MonthlyCompletions int    `json:"monthlyCompletions"`
		TotalDaysThisMonth int    `json:"totalDaysThisMonth"`
	}

	// DailyRate is one point of a daily completion-rate series.
	DailyRate struct {
		Day            Day `json:"date"`
		CompletionRate int `json:"completionRate"`
	}

	// MonthlySummary is the whole-month discipline rollup. BestStreak is
	// the longest run of consecutive all-habits-completed days, a coarser
	// metric than any single habit's own streak.
	MonthlySummary struct {
		Year           int `json:"year"`
		Month          int `json:"month"`
		BestStreak     int `json:"bestStreak"`
		TotalHabits    int `json:"totalHabits"`
		CompletionRate int `json:"completionRate"`
		PerfectDays    int `json:"perfectDays"`
	}

	// TradingStats summarizes trade reviews over a date range. Only trades
	// with a parseable PnL enter the win/loss partition; ProfitFactor is
	// 999 when there are wins but no losses and 0 when there are no wins.
	TradingStats struct {
		TotalTrades     int            `json:"totalTrades"`
		WinningTrades   int            `json:"winningTrades"`
		LosingTrades    int            `json:"losingTrades"`
		WinRate         int            `json:"winRate"`
		TotalPnL        float64        `json:"totalPnL"`
		AvgWin          float64        `json:"avgWin"`
		AvgLoss         float64        `json:"avgLoss"`
		ProfitFactor    float64        `json:"profitFactor"`
		EmotionalStates map[string]int `json:"emotionalStates"`
	}
)
