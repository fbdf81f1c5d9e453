package ui

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	clog "github.com/charmbracelet/log"

	"watchtiles/internal/devtools"
	"watchtiles/internal/tileview"
)

type applyMsg struct {
	fn func(*Root)
}

type animateMsg time.Time

type demoStepMsg struct {
	index int
}

type navKeyMap struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Home  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k navKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Home, k.Help, k.Quit}
}

func (k navKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Left, k.Right, k.Up, k.Down}, {k.Home, k.Help, k.Quit}}
}

type demoState struct {
	demo      devtools.Demo
	scenario  devtools.Scenario
	next      int
	scheduled bool
}

type Root struct {
	theme        Theme
	ascii        bool
	debug        bool
	events       *dispatcher
	styleVariant string
	motionLevel  string
	mouseScope   string
	plainBodies  bool

	mu      sync.Mutex
	program *tea.Program
	running bool

	layout  LayoutMode
	cols    int
	rows    int
	minCols int
	minRows int

	engine   *tileview.View
	scroller *springScroller
	ticking  bool
	drag     dragState
	header   HeaderState
	demo     *demoState

	statusFlash string

	help      help.Model
	keymap    navKeyMap
	markdown  map[int]*glamour.TermRenderer
	bodyCache map[bodyKey][]string
	logger    *clog.Logger

	lastInputEvent string
}

type Options struct {
	ASCIIOnly    bool
	Debug        bool
	StyleVariant string
	MotionLevel  string
	MouseScope   string
	MinCols      int
	MinRows      int
	// PlainBodies skips markdown rendering of card bodies.
	PlainBodies bool
	// LogOutput receives diagnostics; stderr when nil.
	LogOutput io.Writer
}

func New(opts Options) *Root {
	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logger := clog.NewWithOptions(out, clog.Options{Prefix: "watchtiles-ui", Level: clog.WarnLevel})
	if opts.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	h := help.New()
	h.Styles = help.DefaultDarkStyles()
	motionLevel := normalizeMotionLevel(opts.MotionLevel)
	styleVariant := normalizeStyleVariant(opts.StyleVariant)
	if styleVariant == "paper" {
		h.Styles = help.DefaultLightStyles()
	}

	r := &Root{
		theme:        ThemeForVariant(styleVariant),
		ascii:        opts.ASCIIOnly,
		debug:        opts.Debug,
		styleVariant: styleVariant,
		motionLevel:  motionLevel,
		mouseScope:   normalizeMouseScope(opts.MouseScope),
		plainBodies:  opts.PlainBodies,
		events:       newDispatcher(),
		layout:       LayoutFramed,
		cols:         60,
		rows:         20,
		minCols:      max(8, opts.MinCols),
		minRows:      max(chromeRows+3, opts.MinRows),
		scroller:     newSpringScroller(motionLevel),
		help:         h,
		markdown:     map[int]*glamour.TermRenderer{},
		bodyCache:    map[bodyKey][]string{},
		logger:       logger,
	}
	r.keymap = navKeyMap{
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Home:  key.NewBinding(key.WithKeys("home", "0"), key.WithHelp("home", "hub")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	return r
}

// ContentSize is the tile size for the current terminal.
func (r *Root) ContentSize() (int, int) {
	return contentSize(r.layout, r.cols, r.rows)
}

// Logger is the diagnostics logger, shared with the engine.
func (r *Root) Logger() *clog.Logger { return r.logger }

// Attach drives engine from this model. The engine must not be used from any
// other goroutine once Run starts.
func (r *Root) Attach(engine *tileview.View) {
	r.engine = engine
	if engine == nil {
		return
	}
	engine.SetScroller(r.scroller)
	engine.SetListener(r)
	r.scroller.ScrollTo(engine.Offset(), engine.Offset(), false)
}

func (r *Root) Init() tea.Cmd {
	return r.demoTick()
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec, msg)
			model = r
			cmd = nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.resize(msg.Width, msg.Height)
		return r, r.animateIfNeeded()
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		return r, tea.Batch(r.animateIfNeeded(), r.demoTick())
	case animateMsg:
		return r, r.stepAnimation()
	case demoStepMsg:
		return r, r.playDemoStep(msg.index)
	case tea.MouseClickMsg:
		return r.handleMouseClick(msg)
	case tea.MouseMotionMsg:
		return r.handleMouseMotion(msg)
	case tea.MouseReleaseMsg:
		return r.handleMouseRelease(msg)
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *Root) View() (view tea.View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec, nil)
			width := max(1, r.cols)
			msg := "UI recovered from a rendering panic. Check logs."
			if r.statusFlash == "" {
				r.statusFlash = "Recovered UI panic"
			}
			view = tea.NewView(r.theme.Fail.Width(width).Render(trimForWidth(msg, max(1, width-1))))
		}
	}()

	v := tea.NewView(r.render())
	v.AltScreen = true
	v.MouseMode = r.currentMouseMode()
	v.WindowTitle = "watchtiles"
	return v
}

func (r *Root) render() string {
	switch r.layout {
	case LayoutTooSmall:
		return r.renderTooSmall()
	case LayoutBare:
		w, h := r.ContentSize()
		return r.renderViewport(w, h)
	}
	w, h := r.ContentSize()
	return strings.Join([]string{
		r.theme.Header.Width(r.cols).Render(trimForWidth(r.headerText(), max(1, r.cols-2))),
		r.renderViewport(w, h),
		r.theme.Status.Width(r.cols).Render(trimForWidth(r.statusText(), max(1, r.cols-2))),
	}, "\n")
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()

	// Controller writes finish before the caller tears down its stores.
	r.events.drain()
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) SetController(c Controller) {
	r.events.setController(c)
}

func (r *Root) SetHeader(state HeaderState) {
	r.apply(func(m *Root) {
		m.header = state
	})
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.statusFlash = msg
	})
}

// PlayDemo replays scenario against the attached engine, one step per tick.
func (r *Root) PlayDemo(demo devtools.Demo, scenario devtools.Scenario) {
	r.apply(func(m *Root) {
		m.demo = &demoState{demo: demo, scenario: scenario}
		m.statusFlash = "demo: " + scenario.Name
	})
}

// OnActivePageChanged runs inside Update while the engine settles or jumps.
func (r *Root) OnActivePageChanged(p *tileview.Page) {
	info := pageInfo(p)
	r.statusFlash = "→ " + info.Card.Title
	r.dispatchController(func(c Controller) { c.OnPageChanged(info) })
}

func pageInfo(p *tileview.Page) PageInfo {
	card, _ := p.Content().(Card)
	if card.Title == "" {
		card.Title = fmt.Sprintf("page %d", p.ID())
	}
	col, row := p.Coord()
	return PageInfo{Index: p.ID(), Card: card, Col: col, Row: row, Hub: p.IsHub()}
}

func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		fn(r)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

// dispatchController queues fn for the controller. Calls arrive in order
// on the dispatcher's goroutine.
func (r *Root) dispatchController(fn func(Controller)) {
	r.events.post(fn)
}

func (r *Root) resize(cols, rows int) {
	r.cols = cols
	r.rows = rows
	r.layout = DetermineLayoutMode(cols, rows, r.minCols, r.minRows)
	if r.layout == LayoutTooSmall || r.engine == nil {
		return
	}
	w, h := r.ContentSize()
	if err := r.engine.Resize(w, h); err != nil {
		// Retried on release.
		r.drag.pendingResize = true
		return
	}
	r.drag.pendingResize = false
}

func (r *Root) animateIfNeeded() tea.Cmd {
	if r.ticking || !r.scroller.active {
		return nil
	}
	r.ticking = true
	return animateTickCmd()
}

func (r *Root) stepAnimation() tea.Cmd {
	if r.engine == nil || !r.scroller.active {
		r.ticking = false
		return nil
	}
	pos, done := r.scroller.advance()
	r.engine.Step(pos)
	if done {
		r.engine.ScrollEnd(tileview.EndSignal{})
	}
	if r.scroller.active {
		return animateTickCmd()
	}
	r.ticking = false
	return nil
}

// demoTick schedules the next demo step unless one is already pending.
func (r *Root) demoTick() tea.Cmd {
	if r.demo == nil || r.demo.scheduled || r.demo.next >= len(r.demo.scenario.Steps) {
		return nil
	}
	i := r.demo.next
	r.demo.scheduled = true
	return tea.Tick(r.demo.scenario.Steps[i].After, func(time.Time) tea.Msg { return demoStepMsg{index: i} })
}

func (r *Root) playDemoStep(i int) tea.Cmd {
	if r.demo == nil || r.engine == nil || i != r.demo.next {
		return nil
	}
	step := r.demo.scenario.Steps[i]
	r.demo.next++
	r.demo.scheduled = false
	if err := r.demo.demo.Play(r.engine, step); err != nil {
		r.statusFlash = fmt.Sprintf("demo step %d: %v", i+1, err)
		r.dispatchController(func(c Controller) { c.OnRejected("demo."+step.Kind.String(), err) })
	}
	if r.demo.next >= len(r.demo.scenario.Steps) {
		r.logger.Debug("ui.demo_done", "scenario", r.demo.scenario.Name)
		r.demo = nil
		return r.animateIfNeeded()
	}
	return tea.Batch(r.animateIfNeeded(), r.demoTick())
}

func (r *Root) headerText() string {
	name := r.header.DeckName
	if name == "" {
		name = "watchtiles"
	}
	parts := []string{name}
	if r.engine != nil {
		if p := r.engine.Active(); p != nil {
			info := pageInfo(p)
			parts = append(parts, fmt.Sprintf("%s (%d/%d)", info.Card.Title, info.Index+1, len(r.engine.Pages())))
		}
		if st := r.engine.State(); st != tileview.StateIdle {
			parts = append(parts, st.String())
		}
	}
	if r.header.Resumed {
		parts = append(parts, "resumed")
	}
	if r.debug && r.header.SessionID != "" {
		parts = append(parts, r.header.SessionID)
	}
	return strings.Join(parts, " · ")
}

func (r *Root) statusText() string {
	keys := r.help.View(r.keymap)
	if r.statusFlash == "" {
		return keys
	}
	if r.help.ShowAll {
		return r.statusFlash + "  " + strings.ReplaceAll(keys, "\n", "  ")
	}
	return r.statusFlash + "  " + keys
}

func (r *Root) renderTooSmall() string {
	msg := fmt.Sprintf("Terminal too small: %dx%d (need %dx%d)", r.cols, r.rows, r.minCols, r.minRows-chromeRows)
	return r.theme.Fail.Render(trimForWidth(msg, max(1, r.cols)))
}

func animateTickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return animateMsg(t) })
}

func (r *Root) currentMouseMode() tea.MouseMode {
	if r.mouseScope == "off" {
		return tea.MouseModeNone
	}
	return tea.MouseModeCellMotion
}

func normalizeStyleVariant(v string) string {
	switch strings.TrimSpace(v) {
	case "midnight", "paper", "retro_lcd":
		return strings.TrimSpace(v)
	default:
		return "midnight"
	}
}

func normalizeMotionLevel(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "reduced", "full":
		return strings.TrimSpace(v)
	default:
		return "full"
	}
}

func normalizeMouseScope(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "scoped", "full":
		return strings.TrimSpace(v)
	default:
		return "scoped"
	}
}

func (r *Root) recordInputEvent(event string) {
	r.lastInputEvent = trimForWidth(strings.TrimSpace(event), 160)
}

func (r *Root) onModelPanic(where string, recovered any, msg tea.Msg) {
	if r.statusFlash == "" {
		r.statusFlash = "Recovered UI panic"
	}

	msgType := ""
	if msg != nil {
		msgType = fmt.Sprintf("%T", msg)
	}
	r.logger.Error("ui.panic_recovered",
		"where", where,
		"panic", fmt.Sprintf("%v", recovered),
		"message_type", msgType,
		"layout", r.layout,
		"cols", r.cols,
		"rows", r.rows,
		"last_input", r.lastInputEvent,
		"stack", string(debug.Stack()),
	)
}

var _ tea.Model = (*Root)(nil)
var _ View = (*Root)(nil)
var _ tileview.Listener = (*Root)(nil)
