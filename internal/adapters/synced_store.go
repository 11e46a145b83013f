// Package adapters composes the sqlite repository with the trade service so
// the transport layer sees one store.Store regardless of whether async
// export is configured.
package adapters

import (
	"context"

	"disciplina/internal/core"
	"disciplina/internal/services"
	"disciplina/internal/store"
)

// SyncedStore is a store.Store whose trade writes go through the trade
// service, which layers AMQP sync publication on top of the local save.
// Every other operation passes straight through to the repository.
type SyncedStore struct {
	store.Store
	trades *services.TradeService
}

var _ store.Store = (*SyncedStore)(nil)

func NewSyncedStore(s store.Store, trades *services.TradeService) *SyncedStore {
	return &SyncedStore{Store: s, trades: trades}
}

func (a *SyncedStore) SaveTrade(ctx context.Context, t core.TradeReview) error {
	return a.trades.RecordTrade(ctx, t)
}
