package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"watchtiles/internal/deck"
	"watchtiles/internal/devtools"
	"watchtiles/internal/state"
	"watchtiles/internal/telemetry"
	"watchtiles/internal/tileview"
	"watchtiles/internal/ui"

	"github.com/google/uuid"
)

type App struct {
	cfg Config

	logger *telemetry.JSONLogger
	store  Store
	loader *deck.FSLoader
	demo   *devtools.Manager

	view   *ui.Root
	engine *tileview.View
	deck   deck.Deck

	sessionID string
	runID     int64
	resumed   bool
	mainCount int
	startTime time.Time

	mu      sync.Mutex
	current ui.PageInfo
	changes int
	rejects int

	devServer *http.Server
}

func New(cfg Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	logger, err := telemetry.NewJSONLogger(cfg.LogPath)
	if err != nil {
		return nil, err
	}
	logger = logger.With(map[string]any{"session_id": sessionID})

	store, err := state.NewSQLite(filepath.Join(cfg.DataDir, state.DBFileName))
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	if err := store.EnsureSchema(context.Background()); err != nil {
		_ = store.Close()
		_ = logger.Close()
		return nil, err
	}

	a := &App{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		loader:    deck.NewLoader(),
		demo:      devtools.NewManager(),
		sessionID: sessionID,
	}
	if err := a.build(); err != nil {
		_ = store.Close()
		_ = logger.Close()
		return nil, err
	}
	return a, nil
}

// build loads the deck and wires it onto a fresh engine and view.
func (a *App) build() error {
	d, err := a.loadDeck()
	if err != nil {
		return err
	}
	a.deck = d

	view := ui.New(ui.Options{
		ASCIIOnly:    a.cfg.ASCIIOnly,
		Debug:        a.cfg.Debug,
		StyleVariant: a.cfg.UI.StyleVariant,
		MotionLevel:  a.cfg.UI.MotionLevel,
		MouseScope:   a.cfg.UI.MouseScope,
		MinCols:      d.UI.MinCols,
		MinRows:      d.UI.MinRows,
		PlainBodies:  a.cfg.PlainBodies,
	})
	w, h := view.ContentSize()
	gridCfg, err := d.GridConfig(w, h)
	if err != nil {
		return fmt.Errorf("deck %s: %w", d.DeckID, err)
	}
	engine, err := tileview.New(gridCfg, tileview.Options{Logger: view.Logger()})
	if err != nil {
		return fmt.Errorf("deck %s: %w", d.DeckID, err)
	}

	cards := d.Cards()
	pages := engine.Pages()
	if len(cards) != len(pages) {
		return fmt.Errorf("deck %s: %d cards for %d pages", d.DeckID, len(cards), len(pages))
	}
	for i, p := range pages {
		c := cards[i]
		p.SetContent(ui.Card{ID: c.ID, Title: c.Title, BodyMD: c.BodyMD, Accent: c.Accent})
	}

	start := a.startIndex(d)
	if start >= 0 && pages[start] != engine.Active() {
		if err := engine.SetStartTile(pages[start]); err != nil {
			return fmt.Errorf("start page %q: %w", cards[start].ID, err)
		}
	}

	a.engine = engine
	a.view = view
	a.mainCount = engine.MainCount()
	a.current = pageInfo(engine.Active())

	view.Attach(engine)
	view.SetController(a)
	view.SetHeader(ui.HeaderState{DeckName: d.Name, SessionID: a.sessionID, Resumed: a.resumed})
	return nil
}

func (a *App) loadDeck() (deck.Deck, error) {
	if strings.TrimSpace(a.cfg.DeckPath) == "" {
		return a.loader.Default()
	}
	return a.loader.Load(a.cfg.DeckPath)
}

// startIndex picks the deck's start card, or with Resume the page last
// active for this deck.
func (a *App) startIndex(d deck.Deck) int {
	idx := d.IndexOf(d.Start)
	if !a.cfg.Resume {
		return idx
	}
	last, err := a.store.LastPage(context.Background(), d.DeckID)
	if err != nil {
		a.logger.Error("state.last_page_failed", map[string]any{"deck": d.DeckID, "error": err.Error()})
		return idx
	}
	if last == nil {
		return idx
	}
	if i := d.IndexOf(last.PageID); i >= 0 {
		a.resumed = true
		return i
	}
	a.logger.Info("state.last_page_unknown", map[string]any{"deck": d.DeckID, "page": last.PageID})
	return idx
}

func (a *App) Run(ctx context.Context) error {
	a.startTime = time.Now()
	runID, err := a.store.StartSession(ctx, state.Session{SessionID: a.sessionID, DeckID: a.deck.DeckID, StartTS: a.startTime})
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	a.runID = runID

	start := a.snapshot()
	a.logger.Info("app.start", map[string]any{
		"deck":    a.deck.DeckID,
		"pages":   len(a.deck.Cards()),
		"start":   start.Card.ID,
		"resumed": a.resumed,
	})
	a.recordVisit(start)

	if a.cfg.Dev {
		if err := a.startDevHTTP(); err != nil {
			return err
		}
	}
	if a.cfg.Demo != "" {
		a.playDemo(a.cfg.Demo)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			a.view.Stop()
		case <-done:
		}
	}()

	runErr := a.view.Run()

	a.mu.Lock()
	changes, rejects := a.changes, a.rejects
	a.mu.Unlock()
	a.logger.Info("app.stop", map[string]any{
		"duration_ms": time.Since(a.startTime).Milliseconds(),
		"changes":     changes,
		"rejects":     rejects,
	})
	if err := a.store.EndSession(context.Background(), a.runID, time.Now()); err != nil {
		a.logger.Error("state.end_session_failed", map[string]any{"error": err.Error()})
	}
	return runErr
}

func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.devServer != nil {
		_ = a.devServer.Shutdown(ctx)
	}
	_ = a.store.Close()
	_ = a.logger.Close()
}

func (a *App) OnPageChanged(info ui.PageInfo) {
	a.mu.Lock()
	a.current = info
	a.changes++
	a.mu.Unlock()

	a.logger.Info("tile.changed", map[string]any{
		"page":  info.Card.ID,
		"index": info.Index,
		"col":   info.Col,
		"row":   info.Row,
		"hub":   info.Hub,
	})
	a.recordVisit(info)
}

func (a *App) OnRejected(action string, err error) {
	a.mu.Lock()
	a.rejects++
	a.mu.Unlock()

	fields := map[string]any{"action": action}
	if err != nil {
		fields["error"] = err.Error()
	}
	a.logger.Info("tile.rejected", fields)
}

func (a *App) OnQuit() {
	a.view.Stop()
}

func (a *App) recordVisit(info ui.PageInfo) {
	err := a.store.RecordVisit(context.Background(), state.Visit{
		SessionID: a.sessionID,
		DeckID:    a.deck.DeckID,
		PageID:    info.Card.ID,
		PageIndex: info.Index,
		VisitTS:   time.Now(),
	})
	if err != nil {
		a.logger.Error("state.record_visit_failed", map[string]any{"page": info.Card.ID, "error": err.Error()})
		a.view.FlashStatus("history not saved: " + err.Error())
	}
}

func (a *App) snapshot() ui.PageInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// playDemo resolves name against the deck and hands it to the view. It
// returns the resolved scenario name.
func (a *App) playDemo(name string) string {
	scenario := a.demo.Resolve(name, a.mainCount)
	a.logger.Info("dev.demo.start", map[string]any{"requested": name, "resolved": scenario.Name, "steps": len(scenario.Steps)})
	a.view.PlayDemo(a.demo, scenario)
	return scenario.Name
}

func pageInfo(p *tileview.Page) ui.PageInfo {
	if p == nil {
		return ui.PageInfo{}
	}
	card, _ := p.Content().(ui.Card)
	col, row := p.Coord()
	return ui.PageInfo{Index: p.ID(), Card: card, Col: col, Row: row, Hub: p.IsHub()}
}

func (a *App) devMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/__dev/ready", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		cur := a.snapshot()
		a.mu.Lock()
		changes := a.changes
		a.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":      true,
			"deck":    a.deck.DeckID,
			"page":    cur.Card.ID,
			"index":   cur.Index,
			"hub":     cur.Hub,
			"changes": changes,
			"demos":   a.demo.Names(),
		})
	})
	mux.HandleFunc("/__dev/demo", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		var req struct {
			Demo string `json:"demo"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "invalid json"})
			return
		}
		req.Demo = strings.TrimSpace(req.Demo)
		if req.Demo == "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "demo is required"})
			return
		}
		resolved := a.playDemo(req.Demo)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "state": resolved, "requested": req.Demo})
	})
	return mux
}

func (a *App) startDevHTTP() error {
	a.devServer = &http.Server{Addr: a.cfg.DevHTTP, Handler: a.devMux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := a.devServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("dev_http.listen_failed", map[string]any{"error": err.Error(), "addr": a.cfg.DevHTTP})
		}
	}()
	a.logger.Info("dev_http.listening", map[string]any{"addr": a.cfg.DevHTTP})
	return nil
}
