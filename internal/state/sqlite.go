package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DBFileName is the history database inside a data directory.
const DBFileName = "state.db"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			deck_id TEXT NOT NULL,
			start_ts TEXT NOT NULL,
			end_ts TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS page_visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			deck_id TEXT NOT NULL,
			page_id TEXT NOT NULL,
			page_index INTEGER NOT NULL,
			visit_ts TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_page_visits_deck ON page_visits(deck_id, id);`,
		`CREATE TABLE IF NOT EXISTS page_stats (
			deck_id TEXT NOT NULL,
			page_id TEXT NOT NULL,
			visits INTEGER NOT NULL DEFAULT 0,
			last_visit_ts TEXT NOT NULL DEFAULT '',
			PRIMARY KEY(deck_id, page_id)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) StartSession(ctx context.Context, session Session) (int64, error) {
	start := session.StartTS
	if start.IsZero() {
		start = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions(session_id, deck_id, start_ts) VALUES(?,?,?)`,
		session.SessionID,
		strings.TrimSpace(session.DeckID),
		start.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) EndSession(ctx context.Context, runID int64, at time.Time) error {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `UPDATE sessions SET end_ts = ? WHERE id = ?`, at.UTC().Format(timeLayout), runID)
	return err
}

// RecordVisit appends to the visit log and bumps the page's counters in one
// transaction.
func (s *SQLiteStore) RecordVisit(ctx context.Context, visit Visit) (err error) {
	deckID := strings.TrimSpace(visit.DeckID)
	pageID := strings.TrimSpace(visit.PageID)
	if deckID == "" || pageID == "" {
		return nil
	}
	ts := visit.VisitTS
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	stamp := ts.UTC().Format(timeLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO page_visits(session_id, deck_id, page_id, page_index, visit_ts) VALUES(?,?,?,?,?)`,
		visit.SessionID, deckID, pageID, visit.PageIndex, stamp,
	); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO page_stats(deck_id, page_id, visits, last_visit_ts)
		VALUES(?, ?, 1, ?)
		ON CONFLICT(deck_id, page_id) DO UPDATE SET
			visits = page_stats.visits + 1,
			last_visit_ts = excluded.last_visit_ts
	`, deckID, pageID, stamp); err != nil {
		return err
	}
	return tx.Commit()
}

// LastPage returns the most recent visit for deckID, or nil when the deck
// has never been opened.
func (s *SQLiteStore) LastPage(ctx context.Context, deckID string) (*LastPage, error) {
	deckID = strings.TrimSpace(deckID)
	if deckID == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT session_id, page_id, page_index, visit_ts
		FROM page_visits
		WHERE deck_id = ?
		ORDER BY id DESC
		LIMIT 1
	`, deckID)
	var (
		out   LastPage
		tsRaw string
	)
	if err := row.Scan(&out.SessionID, &out.PageID, &out.PageIndex, &tsRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if t, err := time.Parse(timeLayout, tsRaw); err == nil {
		out.VisitTS = t
	}
	return &out, nil
}

func (s *SQLiteStore) PageStats(ctx context.Context, deckID string) (map[string]PageStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT page_id, visits, last_visit_ts
		FROM page_stats
		WHERE deck_id = ?
	`, strings.TrimSpace(deckID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]PageStat{}
	for rows.Next() {
		var (
			stat  PageStat
			tsRaw string
		)
		if err := rows.Scan(&stat.PageID, &stat.Visits, &tsRaw); err != nil {
			return nil, err
		}
		if t, err := time.Parse(timeLayout, tsRaw); err == nil {
			stat.LastVisitTS = t
		}
		out[stat.PageID] = stat
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) GetSummary(ctx context.Context) (Summary, error) {
	var out Summary
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&out.Sessions); err != nil {
		return out, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM page_visits`).Scan(&out.Visits); err != nil {
		return out, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM page_stats`).Scan(&out.Pages); err != nil {
		return out, err
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"
