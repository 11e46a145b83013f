package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disciplina/internal/analytics"
	"disciplina/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestMigrationsSeedDefaultHabits(t *testing.T) {
	repo := newTestRepo(t)

	habits, err := repo.ListHabits(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, habits, 4)
	assert.Equal(t, "habit-premarket", habits[0].ID)
}

func TestCompletionUpsert(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	c := core.HabitCompletion{HabitID: "habit-journal", Day: "2024-03-01", Completed: true}
	require.NoError(t, repo.UpsertCompletion(ctx, c))
	c.Completed = false
	require.NoError(t, repo.UpsertCompletion(ctx, c))

	got, err := repo.ListHabitCompletions(ctx, "habit-journal")
	require.NoError(t, err)
	require.Len(t, got, 1, "at most one record per habit+day")
	assert.False(t, got[0].Completed)
}

func TestHabitSoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.DeactivateHabit(ctx, "habit-journal"))

	h, ok, err := repo.GetHabit(ctx, "habit-journal")
	require.NoError(t, err)
	require.True(t, ok, "soft-deleted habit stays fetchable")
	assert.False(t, h.Active)

	active, err := repo.ListHabits(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 3)
}

func TestCheckInReplacesMood(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.UpsertCheckIn(ctx, core.CheckIn{Day: "2024-03-01", Mood: core.MoodGood}))
	require.NoError(t, repo.UpsertCheckIn(ctx, core.CheckIn{Day: "2024-03-01", Mood: core.MoodAngry}))

	c, ok, err := repo.GetCheckIn(ctx, "2024-03-01")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, core.MoodAngry, c.Mood)
}

func TestJournalEntryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, ok, err := repo.GetEntry(ctx, "2024-03-01")
	require.NoError(t, err)
	assert.False(t, ok, "absence is not an error")

	require.NoError(t, repo.UpsertEntry(ctx, core.JournalEntry{Day: "2024-03-01", Content: "sat on hands all session"}))
	e, ok, err := repo.GetEntry(ctx, "2024-03-01")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "sat on hands all session", e.Content)
}

func TestTradeRoundTripAndSyncFlag(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	tr := core.TradeReview{
		ID:             "t1",
		Day:            "2024-03-01",
		Instrument:     "EURUSD",
		Side:           core.SideShort,
		EntryPrice:     "1.0850",
		ExitPrice:      "1.0820",
		PnL:            "30",
		Tags:           []string{"breakout", "news"},
		EmotionalState: "calm",
		Rating:         4,
	}
	require.NoError(t, repo.SaveTrade(ctx, tr))

	got, ok, err := repo.GetTrade(ctx, "t1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tr, got)

	ids, err := repo.ListUnsyncedTradeIDs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, ids)

	require.NoError(t, repo.MarkTradeSynced(ctx, "t1"))
	ids, err = repo.ListUnsyncedTradeIDs(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// Re-saving the trade re-queues it for sync.
	tr.PnL = "25"
	require.NoError(t, repo.SaveTrade(ctx, tr))
	ids, err = repo.ListUnsyncedTradeIDs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, ids)
}

func TestRiskMetricsMergeUpsert(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.UpsertRiskMetrics(ctx, core.RiskMetrics{Day: "2024-03-01", AccountBalance: "10000", DailyRisk: "1"}))
	require.NoError(t, repo.UpsertRiskMetrics(ctx, core.RiskMetrics{Day: "2024-03-01", Drawdown: "2.5", DailyRisk: "0.5"}))

	m, ok, err := repo.GetRiskMetrics(ctx, "2024-03-01")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "10000", m.AccountBalance, "absent field keeps stored value")
	assert.Equal(t, "2.5", m.Drawdown)
	assert.Equal(t, "0.5", m.DailyRisk, "present field replaces stored value")
}

func TestGoalSoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	g := core.Goal{ID: "g1", Title: "Grow account", Target: "25000", Current: "21000", Unit: "USD", Active: true}
	require.NoError(t, repo.SaveGoal(ctx, g))
	require.NoError(t, repo.DeactivateGoal(ctx, "g1"))

	got, ok, err := repo.GetGoal(ctx, "g1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, got.Active)

	active, err := repo.ListGoals(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)
}

// The aggregator sees identical semantics from both backends; run the core
// streak scenario against sqlite as a cross-check.
func TestAggregatorOverSQLite(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for _, day := range []core.Day{"2024-03-01", "2024-03-02", "2024-03-03"} {
		require.NoError(t, repo.UpsertCompletion(ctx, core.HabitCompletion{HabitID: "habit-journal", Day: day, Completed: true}))
	}
	require.NoError(t, repo.UpsertCompletion(ctx, core.HabitCompletion{HabitID: "habit-journal", Day: "2024-02-29", Completed: false}))

	stats, err := analytics.New(repo).HabitStats(ctx, "habit-journal", "2024-03-03")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.MonthlyCompletions)
	assert.True(t, stats.CompletedToday)
}
