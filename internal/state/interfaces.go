package state

import (
	"context"
	"time"
)

type Store interface {
	EnsureSchema(ctx context.Context) error
	StartSession(ctx context.Context, session Session) (int64, error)
	EndSession(ctx context.Context, runID int64, at time.Time) error
	RecordVisit(ctx context.Context, visit Visit) error
	LastPage(ctx context.Context, deckID string) (*LastPage, error)
	PageStats(ctx context.Context, deckID string) (map[string]PageStat, error)
	GetSummary(ctx context.Context) (Summary, error)
	Close() error
}

type Session struct {
	SessionID string
	DeckID    string
	StartTS   time.Time
}

type Visit struct {
	SessionID string
	DeckID    string
	PageID    string
	PageIndex int
	VisitTS   time.Time
}

type LastPage struct {
	SessionID string
	PageID    string
	PageIndex int
	VisitTS   time.Time
}

type PageStat struct {
	PageID      string
	Visits      int
	LastVisitTS time.Time
}

type Summary struct {
	Sessions int
	Visits   int
	Pages    int
}
