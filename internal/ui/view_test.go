package ui

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"watchtiles/internal/devtools"
	"watchtiles/internal/tileview"
)

type mockController struct {
	mu       sync.Mutex
	changed  []PageInfo
	rejected []string
	quits    int
}

func (m *mockController) OnPageChanged(info PageInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changed = append(m.changed, info)
}

func (m *mockController) OnRejected(action string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if errors.Is(err, tileview.ErrInvalidState) {
		m.rejected = append(m.rejected, action)
	}
}

func (m *mockController) OnQuit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quits++
}

// waitFor polls cond until it holds or a second passes. Controller calls
// arrive on their own goroutine.
func (m *mockController) waitFor(t *testing.T, what string, cond func(*mockController) bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		m.mu.Lock()
		ok := cond(m)
		m.mu.Unlock()
		if ok {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func newAttachedRoot(t *testing.T, cfg tileview.Config, opts Options) (*Root, *tileview.View, *mockController) {
	t.Helper()
	opts.PlainBodies = true
	opts.LogOutput = io.Discard
	r := New(opts)
	r.resize(60, 20)
	cfg.Width, cfg.Height = r.ContentSize()
	v, err := tileview.New(cfg, tileview.Options{Logger: r.Logger()})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	for _, p := range v.Pages() {
		p.SetContent(Card{ID: "card", Title: "Card " + string(rune('A'+p.ID())), BodyMD: "body"})
	}
	r.Attach(v)
	ctrl := &mockController{}
	r.SetController(ctrl)
	return r, v, ctrl
}

// runFrames drives the settle animation to completion.
func runFrames(t *testing.T, r *Root) {
	t.Helper()
	for i := 0; i < 2000 && r.scroller.active; i++ {
		_, _ = r.Update(animateMsg(time.Now()))
	}
	if r.scroller.active {
		t.Fatalf("animation did not finish")
	}
}

func press(r *Root, code rune, text string) tea.Cmd {
	_, cmd := r.Update(tea.KeyPressMsg{Code: code, Text: text})
	return cmd
}

func TestWindowSizeResizesEngine(t *testing.T) {
	r, v, _ := newAttachedRoot(t, tileview.Config{Right: 1}, Options{})

	_, _ = r.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	if w, h := v.Size(); w != 80 || h != 28 {
		t.Fatalf("expected 80x28 tiles, got %dx%d", w, h)
	}
	if v.Offset() != (tileview.Point{}) {
		t.Fatalf("expected hub to stay at the origin, got %v", v.Offset())
	}
}

func TestTooSmallLayout(t *testing.T) {
	r, v, _ := newAttachedRoot(t, tileview.Config{Right: 1}, Options{MinCols: 40, MinRows: 14})

	_, _ = r.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	if r.layout != LayoutTooSmall {
		t.Fatalf("expected too-small layout, got %v", r.layout)
	}
	if !strings.Contains(r.render(), "too small") {
		t.Fatalf("expected too-small message")
	}
	if w, _ := v.Size(); w != 60 {
		t.Fatalf("expected engine size untouched, got width %d", w)
	}
}

func TestRightKeyAnimatesToNeighbour(t *testing.T) {
	r, v, ctrl := newAttachedRoot(t, tileview.Config{Left: 1, Right: 1}, Options{})

	if cmd := press(r, tea.KeyRight, ""); cmd == nil {
		t.Fatalf("expected an animation tick")
	}
	if v.State() != tileview.StateSettling {
		t.Fatalf("expected settling, got %v", v.State())
	}
	runFrames(t, r)
	if v.State() != tileview.StateIdle || v.Active().ID() != 2 {
		t.Fatalf("expected idle on page 2, got %v on %d", v.State(), v.Active().ID())
	}
	ctrl.waitFor(t, "page change", func(m *mockController) bool {
		return len(m.changed) == 1 && m.changed[0].Index == 2
	})
}

func TestMotionOffJumpsImmediately(t *testing.T) {
	r, v, _ := newAttachedRoot(t, tileview.Config{Left: 1, Right: 1}, Options{MotionLevel: "off"})

	press(r, 'h', "h")
	if v.State() != tileview.StateIdle || v.Active().ID() != 0 {
		t.Fatalf("expected immediate jump to page 0, got %v on %d", v.State(), v.Active().ID())
	}
	if v.Offset() != (tileview.Point{}) {
		t.Fatalf("expected offset at origin, got %v", v.Offset())
	}
}

func TestMissingNeighbourFlashes(t *testing.T) {
	r, v, _ := newAttachedRoot(t, tileview.Config{Left: 1}, Options{})

	press(r, tea.KeyRight, "")
	if v.Active().ID() != 1 {
		t.Fatalf("expected to stay on hub")
	}
	if !strings.Contains(r.statusFlash, "no page") {
		t.Fatalf("expected flash about the missing page, got %q", r.statusFlash)
	}
}

func TestHomeKeyReturnsToHub(t *testing.T) {
	r, v, _ := newAttachedRoot(t, tileview.Config{Right: 2, Down: 1, Overlap: true}, Options{MotionLevel: "off"})

	press(r, tea.KeyDown, "")
	if v.Active().ID() != 3 {
		t.Fatalf("expected page below hub, got %d", v.Active().ID())
	}
	press(r, tea.KeyHome, "")
	if v.Active() != v.Hub() || v.ScrollDir() != tileview.DirAll {
		t.Fatalf("expected hub with all directions, got %d %v", v.Active().ID(), v.ScrollDir())
	}
}

func TestQuitKeyCallsController(t *testing.T) {
	r, _, ctrl := newAttachedRoot(t, tileview.Config{Right: 1}, Options{})

	press(r, 'q', "q")
	ctrl.waitFor(t, "quit", func(m *mockController) bool { return m.quits == 1 })
}

func TestHelpKeyTogglesFullHelp(t *testing.T) {
	r, _, _ := newAttachedRoot(t, tileview.Config{Right: 1}, Options{})

	press(r, '?', "?")
	if !r.help.ShowAll {
		t.Fatalf("expected full help")
	}
	press(r, '?', "?")
	if r.help.ShowAll {
		t.Fatalf("expected short help")
	}
}

func TestMouseDragSwipesToNextPage(t *testing.T) {
	r, v, ctrl := newAttachedRoot(t, tileview.Config{Right: 1}, Options{})

	_, _ = r.Update(tea.MouseClickMsg{X: 40, Y: 5, Button: tea.MouseLeft})
	_, _ = r.Update(tea.MouseMotionMsg{X: 20, Y: 5, Button: tea.MouseLeft})
	_, _ = r.Update(tea.MouseMotionMsg{X: 5, Y: 6, Button: tea.MouseLeft})
	if v.State() != tileview.StateDragging || v.Offset() != (tileview.Point{X: 35}) {
		t.Fatalf("expected dragging at x=35, got %v at %v", v.State(), v.Offset())
	}
	_, cmd := r.Update(tea.MouseReleaseMsg{X: 5, Y: 6, Button: tea.MouseLeft})
	if cmd == nil {
		t.Fatalf("expected settle animation")
	}
	runFrames(t, r)
	if v.Active().ID() != 1 || v.Offset() != (tileview.Point{X: 60}) {
		t.Fatalf("expected page 1 at x=60, got %d at %v", v.Active().ID(), v.Offset())
	}
	ctrl.waitFor(t, "page change", func(m *mockController) bool { return len(m.changed) == 1 })
}

func TestDragOnLockedAxisIsRejected(t *testing.T) {
	r, v, ctrl := newAttachedRoot(t, tileview.Config{Right: 1}, Options{})

	_, _ = r.Update(tea.MouseClickMsg{X: 30, Y: 5, Button: tea.MouseLeft})
	_, _ = r.Update(tea.MouseMotionMsg{X: 30, Y: 12, Button: tea.MouseLeft})
	if v.State() != tileview.StateIdle {
		t.Fatalf("expected no drag, got %v", v.State())
	}
	ctrl.waitFor(t, "rejection", func(m *mockController) bool {
		return len(m.rejected) == 1 && m.rejected[0] == "drag"
	})
	_, _ = r.Update(tea.MouseMotionMsg{X: 0, Y: 5, Button: tea.MouseLeft})
	if v.State() != tileview.StateIdle {
		t.Fatalf("expected rejected drag to stay inert")
	}
	_, _ = r.Update(tea.MouseReleaseMsg{X: 0, Y: 5})
}

func TestScopedMouseIgnoresChrome(t *testing.T) {
	r, _, _ := newAttachedRoot(t, tileview.Config{Right: 1}, Options{})

	_, _ = r.Update(tea.MouseClickMsg{X: 10, Y: 0, Button: tea.MouseLeft})
	if r.drag.pressed {
		t.Fatalf("expected header click ignored")
	}
	_, _ = r.Update(tea.MouseClickMsg{X: 10, Y: 19, Button: tea.MouseLeft})
	if r.drag.pressed {
		t.Fatalf("expected status bar click ignored")
	}
}

func TestKeyJumpDuringDragIsRejected(t *testing.T) {
	r, v, ctrl := newAttachedRoot(t, tileview.Config{Left: 1, Right: 1}, Options{})

	_, _ = r.Update(tea.MouseClickMsg{X: 30, Y: 5, Button: tea.MouseLeft})
	_, _ = r.Update(tea.MouseMotionMsg{X: 25, Y: 5, Button: tea.MouseLeft})
	press(r, tea.KeyRight, "")
	if v.State() != tileview.StateDragging {
		t.Fatalf("expected drag to continue, got %v", v.State())
	}
	ctrl.waitFor(t, "rejection", func(m *mockController) bool {
		return len(m.rejected) == 1 && m.rejected[0] == "jump"
	})
}

func TestResizeDuringDragIsDeferred(t *testing.T) {
	r, v, _ := newAttachedRoot(t, tileview.Config{Right: 1}, Options{MotionLevel: "off"})

	_, _ = r.Update(tea.MouseClickMsg{X: 30, Y: 5, Button: tea.MouseLeft})
	_, _ = r.Update(tea.MouseMotionMsg{X: 25, Y: 5, Button: tea.MouseLeft})
	_, _ = r.Update(tea.WindowSizeMsg{Width: 70, Height: 20})
	if w, _ := v.Size(); w != 60 {
		t.Fatalf("expected resize deferred while dragging, got width %d", w)
	}
	_, _ = r.Update(tea.MouseReleaseMsg{X: 25, Y: 5})
	runFrames(t, r)
	if w, _ := v.Size(); w != 70 {
		t.Fatalf("expected resize applied after release, got width %d", w)
	}
}

func TestRenderShowsActiveCard(t *testing.T) {
	r, _, _ := newAttachedRoot(t, tileview.Config{Left: 1, Right: 1}, Options{ASCIIOnly: true})
	r.SetHeader(HeaderState{DeckName: "Test Deck"})

	out := r.render()
	if !strings.Contains(out, "Card B") {
		t.Fatalf("expected hub card title in view:\n%s", out)
	}
	if !strings.Contains(out, "Test Deck") {
		t.Fatalf("expected deck name in header")
	}
	if strings.Contains(out, "Card A") {
		t.Fatalf("expected off-screen page not painted")
	}
	if lines := strings.Split(out, "\n"); len(lines) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(lines))
	}
}

func TestDemoScenarioDrivesEngine(t *testing.T) {
	r, v, _ := newAttachedRoot(t, tileview.Config{Left: 1, Right: 2, Wraparound: true}, Options{MotionLevel: "off"})
	demo := devtools.NewManager()
	r.PlayDemo(demo, demo.Resolve("wrap_forward", v.MainCount()))

	var visited []int
	for i := 0; i < 10 && r.demo != nil; i++ {
		_, _ = r.Update(demoStepMsg{index: r.demo.next})
		runFrames(t, r)
		visited = append(visited, v.Active().ID())
	}
	want := []int{2, 3, 0, 1}
	if len(visited) != len(want) {
		t.Fatalf("expected %v, got %v", want, visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, visited)
		}
	}
}

func TestPaintRow(t *testing.T) {
	cases := []struct {
		src  string
		x    int
		want string
	}{
		{"bbb", 3, "aaabbbaaaa"},
		{"bbb", -1, "bbaaaaaaaa"},
		{"bbb", 9, "aaaaaaaaab"},
		{"bbb", 12, "aaaaaaaaaa"},
	}
	for _, tc := range cases {
		if got := paintRow("aaaaaaaaaa", tc.src, tc.x, 10); got != tc.want {
			t.Fatalf("paint %q at %d: expected %q, got %q", tc.src, tc.x, tc.want, got)
		}
	}
}

func TestFitWidth(t *testing.T) {
	if got := fitWidth("abc", 5); got != "abc  " {
		t.Fatalf("expected padding, got %q", got)
	}
	if got := fitWidth("abcdef", 4); got != "abcd" {
		t.Fatalf("expected truncation, got %q", got)
	}
	if got := fitWidth("abc", 0); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestViewportDir(t *testing.T) {
	if got := viewportDir(tileview.DirHor, -3, 2); got != tileview.DirRight {
		t.Fatalf("expected right, got %v", got)
	}
	if got := viewportDir(tileview.DirVer, 1, 4); got != tileview.DirTop {
		t.Fatalf("expected top, got %v", got)
	}
	if got := viewportDir(tileview.DirAll, 2, -2); got != tileview.DirLeft|tileview.DirBottom {
		t.Fatalf("expected left|bottom, got %v", got)
	}
}
