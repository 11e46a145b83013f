package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"disciplina/internal/core"
)

// profitFactorCap is the sentinel reported when there are winning trades
// and no losing ones: the ratio has no finite value, and 999 signals "no
// downside observed" without leaking Inf or NaN to callers. Both backends
// go through this one implementation, so the convention cannot drift.
const profitFactorCap = 999

// TradingStats aggregates trade reviews with from <= day <= to. Every
// trade in range counts toward TotalTrades; only trades whose PnL parses
// as a decimal enter the win/loss partition, and WinRate's denominator is
// that parseable subset. Trades without an emotional-state tag are left
// out of the frequency map entirely.
func (a *Aggregator) TradingStats(ctx context.Context, from, to core.Day) (core.TradingStats, error) {
	if err := from.Validate(); err != nil {
		return core.TradingStats{}, err
	}
	if err := to.Validate(); err != nil {
		return core.TradingStats{}, err
	}

	trades, err := a.store.ListTradesInRange(ctx, from, to)
	if err != nil {
		return core.TradingStats{}, fmt.Errorf("list trades in range: %w", err)
	}

	stats := core.TradingStats{
		TotalTrades:     len(trades),
		EmotionalStates: make(map[string]int),
	}

	var (
		withPnL    int
		totalPnL   decimal.Decimal
		sumWins    decimal.Decimal
		sumLossAbs decimal.Decimal
	)

	for _, t := range trades {
		if t.EmotionalState != "" {
			stats.EmotionalStates[t.EmotionalState]++
		}

		pnl, ok := core.ParsePnL(t.PnL)
		if !ok {
			continue
		}
		withPnL++
		totalPnL = totalPnL.Add(pnl)

		switch pnl.Sign() {
		case 1:
			stats.WinningTrades++
			sumWins = sumWins.Add(pnl)
		case -1:
			stats.LosingTrades++
			sumLossAbs = sumLossAbs.Add(pnl.Abs())
		}
		// Zero PnL counts toward the denominator but neither partition.
	}

	stats.WinRate = roundPct(stats.WinningTrades, withPnL)
	stats.TotalPnL = round2(totalPnL)

	if stats.WinningTrades > 0 {
		stats.AvgWin = round2(sumWins.Div(decimal.NewFromInt(int64(stats.WinningTrades))))
	}
	if stats.LosingTrades > 0 {
		stats.AvgLoss = round2(sumLossAbs.Div(decimal.NewFromInt(int64(stats.LosingTrades))))
	}

	switch {
	case sumLossAbs.IsPositive():
		stats.ProfitFactor = round2(sumWins.Div(sumLossAbs))
	case stats.WinningTrades > 0:
		stats.ProfitFactor = profitFactorCap
	default:
		stats.ProfitFactor = 0
	}

	return stats, nil
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
