// Package store defines the Record Store ports the aggregator and the
// transport layer depend on. Two interchangeable implementations exist:
// the in-memory map backend (store/memory) and the SQLite backend
// (internal/storage); one is selected at process start by the backend
// factory and injected everywhere, never reached through a global.
package store

import (
	"context"

	"disciplina/internal/core"
)

// Lookups by natural key report absence with a false second return rather
// than an error; callers branch explicitly on the missing case. Errors are
// reserved for backend failures and are propagated opaque.
type (
	HabitStore interface {
		CreateHabit(ctx context.Context, h core.Habit) error
		// GetHabit also returns deactivated habits.
		GetHabit(ctx context.Context, id string) (core.Habit, bool, error)
		// ListHabits with activeOnly excludes soft-deleted habits.
		ListHabits(ctx context.Context, activeOnly bool) ([]core.Habit, error)
		// DeactivateHabit soft-deletes: the record stays, Active flips off.
		DeactivateHabit(ctx context.Context, id string) error

		// UpsertCompletion keeps at most one record per (habit, day).
		UpsertCompletion(ctx context.Context, c core.HabitCompletion) error
		ListHabitCompletions(ctx context.Context, habitID string) ([]core.HabitCompletion, error)
		// ListCompletionsInRange returns completions for all habits with
		// from <= day <= to.
		ListCompletionsInRange(ctx context.Context, from, to core.Day) ([]core.HabitCompletion, error)
	}

	CheckInStore interface {
		// UpsertCheckIn replaces the day's mood.
		UpsertCheckIn(ctx context.Context, c core.CheckIn) error
		GetCheckIn(ctx context.Context, day core.Day) (core.CheckIn, bool, error)
	}

	JournalStore interface {
		// UpsertEntry replaces the day's content.
		UpsertEntry(ctx context.Context, e core.JournalEntry) error
		GetEntry(ctx context.Context, day core.Day) (core.JournalEntry, bool, error)
	}

	TradeStore interface {
		SaveTrade(ctx context.Context, t core.TradeReview) error
		GetTrade(ctx context.Context, id string) (core.TradeReview, bool, error)
		// ListTradesInRange returns trades with from <= day <= to,
		// ordered by day ascending.
		ListTradesInRange(ctx context.Context, from, to core.Day) ([]core.TradeReview, error)
	}

	GoalStore interface {
		SaveGoal(ctx context.Context, g core.Goal) error
		GetGoal(ctx context.Context, id string) (core.Goal, bool, error)
		ListGoals(ctx context.Context, activeOnly bool) ([]core.Goal, error)
		DeactivateGoal(ctx context.Context, id string) error
	}

	RiskStore interface {
		// UpsertRiskMetrics merges non-empty fields into the day's record.
		UpsertRiskMetrics(ctx context.Context, r core.RiskMetrics) error
		GetRiskMetrics(ctx context.Context, day core.Day) (core.RiskMetrics, bool, error)
	}

	// Store is the full Record Store capability.
	Store interface {
		HabitStore
		CheckInStore
		JournalStore
		TradeStore
		GoalStore
		RiskStore
	}
)
