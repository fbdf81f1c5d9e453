package app

import (
	"context"
	"time"

	"watchtiles/internal/state"
)

// Store is the navigation history the app writes through.
type Store interface {
	EnsureSchema(ctx context.Context) error
	StartSession(ctx context.Context, session state.Session) (int64, error)
	EndSession(ctx context.Context, runID int64, at time.Time) error
	RecordVisit(ctx context.Context, visit state.Visit) error
	LastPage(ctx context.Context, deckID string) (*state.LastPage, error)
	Close() error
}

var _ Store = (*state.SQLiteStore)(nil)
