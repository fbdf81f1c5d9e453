package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "nested", "state.db"))
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	store := openStore(t)
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("second ensure schema: %v", err)
	}
}

func TestLastPageTracksMostRecentVisit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	last, err := store.LastPage(ctx, "watch-face")
	if err != nil {
		t.Fatalf("last page on empty store: %v", err)
	}
	if last != nil {
		t.Fatalf("expected no last page, got %+v", last)
	}

	base := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)
	visits := []Visit{
		{SessionID: "s1", DeckID: "watch-face", PageID: "heart", PageIndex: 2, VisitTS: base},
		{SessionID: "s1", DeckID: "other-deck", PageID: "home", PageIndex: 0, VisitTS: base.Add(time.Second)},
		{SessionID: "s1", DeckID: "watch-face", PageID: "steps", PageIndex: 0, VisitTS: base.Add(2 * time.Second)},
	}
	for _, v := range visits {
		if err := store.RecordVisit(ctx, v); err != nil {
			t.Fatalf("record visit: %v", err)
		}
	}

	last, err = store.LastPage(ctx, "watch-face")
	if err != nil {
		t.Fatalf("last page: %v", err)
	}
	if last == nil || last.PageID != "steps" || last.PageIndex != 0 {
		t.Fatalf("expected steps as last page, got %+v", last)
	}
	if !last.VisitTS.Equal(base.Add(2 * time.Second)) {
		t.Fatalf("unexpected visit timestamp %v", last.VisitTS)
	}
}

func TestPageStatsCountsVisits(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	for _, page := range []string{"clock", "heart", "clock", "clock"} {
		if err := store.RecordVisit(ctx, Visit{SessionID: "s1", DeckID: "watch-face", PageID: page}); err != nil {
			t.Fatalf("record visit: %v", err)
		}
	}
	// Blank ids are ignored.
	if err := store.RecordVisit(ctx, Visit{DeckID: "watch-face"}); err != nil {
		t.Fatalf("record blank visit: %v", err)
	}

	stats, err := store.PageStats(ctx, "watch-face")
	if err != nil {
		t.Fatalf("page stats: %v", err)
	}
	if stats["clock"].Visits != 3 || stats["heart"].Visits != 1 || len(stats) != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats["clock"].LastVisitTS.IsZero() {
		t.Fatalf("expected last visit timestamp")
	}
}

func TestSessionsAndSummary(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	runID, err := store.StartSession(ctx, Session{SessionID: "s1", DeckID: "watch-face"})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if runID <= 0 {
		t.Fatalf("expected positive run id, got %d", runID)
	}
	if err := store.RecordVisit(ctx, Visit{SessionID: "s1", DeckID: "watch-face", PageID: "clock", PageIndex: 1}); err != nil {
		t.Fatalf("record visit: %v", err)
	}
	if err := store.EndSession(ctx, runID, time.Time{}); err != nil {
		t.Fatalf("end session: %v", err)
	}

	sum, err := store.GetSummary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Sessions != 1 || sum.Visits != 1 || sum.Pages != 1 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}
