package analytics

import (
	"context"
	"fmt"

	"disciplina/internal/core"
)

// HabitStats reports the habit's streak and monthly completion figures as
// of the reference day. A habit with no completion records yields all
// zeroes; an unknown habit id behaves the same way, it is not an error.
func (a *Aggregator) HabitStats(ctx context.Context, habitID string, ref core.Day) (core.HabitStats, error) {
	if err := ref.Validate(); err != nil {
		return core.HabitStats{}, err
	}

	comps, err := a.store.ListHabitCompletions(ctx, habitID)
	if err != nil {
		return core.HabitStats{}, fmt.Errorf("list habit completions: %w", err)
	}

	completed := make(map[core.Day]bool, len(comps))
	for _, c := range comps {
		if c.Completed {
			completed[c.Day] = true
		}
	}

	stats := core.HabitStats{
		HabitID:            habitID,
		CompletedToday:     completed[ref],
		TotalDaysThisMonth: core.DaysInMonth(ref.Year(), ref.Month()),
	}

	first, last := core.MonthRange(ref.Year(), ref.Month())
	for d := range completed {
		if d >= first && d <= last {
			stats.MonthlyCompletions++
		}
	}
	stats.CompletionRate = roundPct(stats.MonthlyCompletions, stats.TotalDaysThisMonth)

	// Walk backward from the reference day; the first missing day ends the
	// streak, so an incomplete reference day means streak zero.
	for d := ref; stats.CurrentStreak < maxStreakDays && completed[d]; d = d.AddDays(-1) {
		stats.CurrentStreak++
	}

	return stats, nil
}

// WeeklyProgress returns one completion-rate point per calendar day in
// [from, to], ascending. The active-habit set is the denominator and is
// evaluated once for the whole series; with zero active habits every day
// reports rate 0. An inverted range yields an empty series.
func (a *Aggregator) WeeklyProgress(ctx context.Context, from, to core.Day) ([]core.DailyRate, error) {
	if err := from.Validate(); err != nil {
		return nil, err
	}
	if err := to.Validate(); err != nil {
		return nil, err
	}

	activeCount, perDay, err := a.dailyCompletions(ctx, from, to)
	if err != nil {
		return nil, err
	}

	series := make([]core.DailyRate, 0, core.DaysBetween(from, to))
	for d := from; d <= to; d = d.AddDays(1) {
		series = append(series, core.DailyRate{
			Day:            d,
			CompletionRate: roundPct(perDay[d], activeCount),
		})
	}
	return series, nil
}

// MonthlySummary rolls the month up into whole-discipline figures. The
// best streak is the longest run of consecutive 100%-rate days in the
// month's daily series; it measures all-habits-completed days, not any
// single habit's own streak.
func (a *Aggregator) MonthlySummary(ctx context.Context, year, month int) (core.MonthlySummary, error) {
	if month < 1 || month > 12 {
		return core.MonthlySummary{}, fmt.Errorf("month %d out of range", month)
	}

	first, last := core.MonthRange(year, month)
	activeCount, perDay, err := a.dailyCompletions(ctx, first, last)
	if err != nil {
		return core.MonthlySummary{}, err
	}

	days := core.DaysInMonth(year, month)
	summary := core.MonthlySummary{
		Year:        year,
		Month:       month,
		TotalHabits: activeCount,
	}

	totalCompleted := 0
	run := 0
	for d := first; d <= last; d = d.AddDays(1) {
		n := perDay[d]
		totalCompleted += n

		// A month with zero habits has zero perfect days, not all of them.
		if activeCount > 0 && n == activeCount {
			summary.PerfectDays++
		}

		if roundPct(n, activeCount) == 100 {
			run++
			if run > summary.BestStreak {
				summary.BestStreak = run
			}
		} else {
			run = 0
		}
	}

	summary.CompletionRate = roundPct(totalCompleted, activeCount*days)
	return summary, nil
}

// dailyCompletions fetches the range once and reduces it to a per-day count
// of completed active habits, so day loops never go back to the store.
func (a *Aggregator) dailyCompletions(ctx context.Context, from, to core.Day) (int, map[core.Day]int, error) {
	habits, err := a.store.ListHabits(ctx, true)
	if err != nil {
		return 0, nil, fmt.Errorf("list active habits: %w", err)
	}
	active := make(map[string]bool, len(habits))
	for _, h := range habits {
		active[h.ID] = true
	}

	comps, err := a.store.ListCompletionsInRange(ctx, from, to)
	if err != nil {
		return 0, nil, fmt.Errorf("list completions in range: %w", err)
	}

	perDay := make(map[core.Day]int)
	for _, c := range comps {
		if c.Completed && active[c.HabitID] {
			perDay[c.Day]++
		}
	}
	return len(habits), perDay, nil
}
