// Package services orchestrates writes that span the local store and the
// async export pipeline.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"disciplina/internal/amqp"
	"disciplina/internal/core"
	"disciplina/internal/storage"
)

// TradeService saves trade reviews locally and queues them for export to
// the trading log. The local save is the source of truth; a failed publish
// is logged and left to the worker's periodic reconciliation.
type TradeService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewTradeService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *TradeService {
	return &TradeService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// RecordTrade saves the review and publishes a sync message.
func (s *TradeService) RecordTrade(ctx context.Context, t core.TradeReview) error {
	if err := s.storage.SaveTrade(ctx, t); err != nil {
		return fmt.Errorf("save trade: %w", err)
	}

	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping sync message", "trade_id", t.ID)
		return nil
	}

	if err := s.amqpClient.PublishTradeSync(ctx, t.ID); err != nil {
		// The trade is saved; the reconciler will pick it up.
		slog.ErrorContext(ctx, "Failed to publish trade sync message",
			"trade_id", t.ID, "error", err)
	}

	return nil
}

// Close closes both the storage and AMQP connections.
func (s *TradeService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close trade service: %v", errs)
	}
	return nil
}
