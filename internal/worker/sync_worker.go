// Package worker synchronizes trade reviews from SQLite to the
// external trading log.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"disciplina/internal/amqp"
	"disciplina/internal/sheets"
	"disciplina/internal/storage"
)

// SyncWorker exports saved trade reviews to the trading log sheet and
// marks them synced in storage.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	sheet     sheets.TradeAppender
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, sheet sheets.TradeAppender, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		sheet:     sheet,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single trade sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TradeSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "trade_id", msg.TradeID)

	return w.syncTrade(ctx, msg.TradeID)
}

// ProcessPendingTrades exports trades that have not been synced yet.
// This is a backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) ProcessPendingTrades(ctx context.Context) error {
	pending, err := w.storage.ListUnsyncedTradeIDs(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unsynced trades: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending trades", "count", len(pending))

	for _, id := range pending {
		if err := w.syncTrade(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to sync trade", "trade_id", id, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck drains the pending backlog at worker startup.
// Useful to recover from missed AMQP messages or worker downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.ListUnsyncedTradeIDs(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("list unsynced trades for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending trades found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending trades on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, id := range pending {
		if err := w.syncTrade(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to sync trade during startup",
				"trade_id", id, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync check complete",
		"synced", successCount, "errors", errorCount)

	return nil
}

func (w *SyncWorker) syncTrade(ctx context.Context, id string) error {
	trade, found, err := w.storage.GetTrade(ctx, id)
	if err != nil {
		return fmt.Errorf("get trade from storage: %w", err)
	}
	if !found {
		// The trade was removed after the message was published.
		slog.WarnContext(ctx, "Trade not found, skipping sync", "trade_id", id)
		return nil
	}

	ref, err := w.sheet.AppendTradeRow(ctx, trade)
	if err != nil {
		return fmt.Errorf("append trade to log: %w", err)
	}

	if err := w.storage.MarkTradeSynced(ctx, id); err != nil {
		return fmt.Errorf("mark trade synced: %w", err)
	}

	slog.InfoContext(ctx, "Trade synced", "trade_id", id, "ref", ref)
	return nil
}
