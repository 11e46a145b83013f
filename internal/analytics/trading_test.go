package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disciplina/internal/core"
	"disciplina/internal/store/memory"
)

func saveTrades(t *testing.T, m *memory.Memory, trades ...core.TradeReview) {
	t.Helper()
	for i := range trades {
		tr := trades[i]
		if tr.Instrument == "" {
			tr.Instrument = "EURUSD"
		}
		if tr.Side == "" {
			tr.Side = core.SideLong
		}
		require.NoError(t, m.SaveTrade(context.Background(), tr))
	}
}

func TestTradingStatsWorkedExample(t *testing.T) {
	// Trades [100, -50, -50]: winRate 33, totalPnL 0, avgWin 100,
	// avgLoss 50, profitFactor 1.
	m := memory.New()
	saveTrades(t, m,
		core.TradeReview{ID: "t1", Day: "2024-03-01", PnL: "100"},
		core.TradeReview{ID: "t2", Day: "2024-03-02", PnL: "-50"},
		core.TradeReview{ID: "t3", Day: "2024-03-03", PnL: "-50"},
	)

	stats, err := New(m).TradingStats(context.Background(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalTrades)
	assert.Equal(t, 1, stats.WinningTrades)
	assert.Equal(t, 2, stats.LosingTrades)
	assert.Equal(t, 33, stats.WinRate)
	assert.Equal(t, 0.0, stats.TotalPnL)
	assert.Equal(t, 100.0, stats.AvgWin)
	assert.Equal(t, 50.0, stats.AvgLoss)
	assert.Equal(t, 1.0, stats.ProfitFactor)
}

func TestTradingStatsPartitionAddsUp(t *testing.T) {
	m := memory.New()
	saveTrades(t, m,
		core.TradeReview{ID: "t1", Day: "2024-03-01", PnL: "30"},
		core.TradeReview{ID: "t2", Day: "2024-03-01", PnL: "-10"},
		core.TradeReview{ID: "t3", Day: "2024-03-02", PnL: "0"},
		core.TradeReview{ID: "t4", Day: "2024-03-02", PnL: ""},
		core.TradeReview{ID: "t5", Day: "2024-03-03", PnL: "not-a-number"},
	)

	stats, err := New(m).TradingStats(context.Background(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalTrades, "unparseable PnL still counts toward the total")
	zeroOrUnparsed := stats.TotalTrades - stats.WinningTrades - stats.LosingTrades
	assert.Equal(t, 3, zeroOrUnparsed)
	// Denominator is trades with parseable PnL (3), not the total (5).
	assert.Equal(t, 33, stats.WinRate)
	assert.Equal(t, 20.0, stats.TotalPnL)
}

func TestTradingStatsProfitFactorSentinels(t *testing.T) {
	ctx := context.Background()

	// Wins, no losses: sentinel 999, never Inf.
	m := memory.New()
	saveTrades(t, m, core.TradeReview{ID: "t1", Day: "2024-03-01", PnL: "75"})
	stats, err := New(m).TradingStats(ctx, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, 999.0, stats.ProfitFactor)

	// No wins at all: 0, never NaN.
	m = memory.New()
	saveTrades(t, m, core.TradeReview{ID: "t1", Day: "2024-03-01", PnL: "0"})
	stats, err = New(m).TradingStats(ctx, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.ProfitFactor)
	assert.Equal(t, 0, stats.WinRate)
}

func TestTradingStatsEmptyRange(t *testing.T) {
	stats, err := New(memory.New()).TradingStats(context.Background(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalTrades)
	assert.Equal(t, 0, stats.WinRate)
	assert.Equal(t, 0.0, stats.ProfitFactor)
	assert.Empty(t, stats.EmotionalStates)
}

func TestTradingStatsEmotionalStates(t *testing.T) {
	m := memory.New()
	saveTrades(t, m,
		core.TradeReview{ID: "t1", Day: "2024-03-01", PnL: "10", EmotionalState: "calm"},
		core.TradeReview{ID: "t2", Day: "2024-03-02", PnL: "-5", EmotionalState: "calm"},
		core.TradeReview{ID: "t3", Day: "2024-03-03", PnL: "7", EmotionalState: "fomo"},
		core.TradeReview{ID: "t4", Day: "2024-03-04", PnL: "3"}, // untagged
	)

	stats, err := New(m).TradingStats(context.Background(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"calm": 2, "fomo": 1}, stats.EmotionalStates)
	assert.Equal(t, 4, stats.TotalTrades)
}

func TestTradingStatsRangeIsInclusive(t *testing.T) {
	m := memory.New()
	saveTrades(t, m,
		core.TradeReview{ID: "t1", Day: "2024-02-29", PnL: "1"},
		core.TradeReview{ID: "t2", Day: "2024-03-01", PnL: "1"},
		core.TradeReview{ID: "t3", Day: "2024-03-31", PnL: "1"},
		core.TradeReview{ID: "t4", Day: "2024-04-01", PnL: "1"},
	)

	stats, err := New(m).TradingStats(context.Background(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalTrades)
}

func TestTradingStatsAvgRounding(t *testing.T) {
	m := memory.New()
	saveTrades(t, m,
		core.TradeReview{ID: "t1", Day: "2024-03-01", PnL: "10"},
		core.TradeReview{ID: "t2", Day: "2024-03-01", PnL: "11"},
		core.TradeReview{ID: "t3", Day: "2024-03-01", PnL: "12"},
		core.TradeReview{ID: "t4", Day: "2024-03-02", PnL: "-7"},
		core.TradeReview{ID: "t5", Day: "2024-03-02", PnL: "-8"},
	)

	stats, err := New(m).TradingStats(context.Background(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)

	assert.Equal(t, 11.0, stats.AvgWin)
	assert.Equal(t, 7.5, stats.AvgLoss)
	assert.Equal(t, 2.2, stats.ProfitFactor) // 33/15
	assert.Equal(t, 18.0, stats.TotalPnL)
}
