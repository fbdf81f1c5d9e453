package tileview

import (
	"io"

	clog "github.com/charmbracelet/log"
)

// View is the paged-grid scroll engine. It is not safe for concurrent use:
// every method runs on the thread that drives input and rendering.
type View struct {
	grid *grid
	w, h int

	offset    Point
	end       Point
	scrollDir Dir
	anchor    Point
	active    *Page
	state     State

	suppressed int
	started    bool
	rev        uint64

	scroller Scroller
	listener Listener
	logger   *clog.Logger
}

type Options struct {
	Scroller Scroller
	Listener Listener
	Logger   *clog.Logger
}

// New builds the grid and rests the viewport on the hub.
func New(cfg Config, opts Options) (*View, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = clog.NewWithOptions(io.Discard, clog.Options{})
	}
	v := &View{
		grid:     newGrid(cfg),
		w:        cfg.Width,
		h:        cfg.Height,
		scroller: opts.Scroller,
		listener: opts.Listener,
		logger:   logger,
	}

	release := v.suppress()
	v.layout()
	hub := v.grid.hub
	v.active = hub
	v.scrollDir = hub.dir
	v.offset = v.anchor
	v.end = v.anchor
	v.rotate()
	release()

	v.logger.Debug("tileview.new",
		"main", v.grid.main, "main_cnt", v.grid.mainCnt, "pages", len(v.grid.pages),
		"wrap", v.grid.wrap, "overlap", v.grid.overlap, "hub", hub.id)
	return v, nil
}

func (v *View) SetListener(l Listener) { v.listener = l }
func (v *View) SetScroller(s Scroller) { v.scroller = s }

// suppress mutes gesture signals until the returned release runs.
func (v *View) suppress() func() {
	v.suppressed++
	return func() { v.suppressed-- }
}

func (v *View) bypass() bool { return v.suppressed > 0 }

func (v *View) scroll(from, to Point, animate bool) {
	if v.scroller != nil {
		v.scroller.ScrollTo(from, to, animate)
	}
}

// jump moves the viewport without animation.
func (v *View) jump(to Point) {
	from := v.offset
	v.offset = to
	v.end = to
	v.scroll(from, to, false)
}

func (v *View) notify(p *Page) {
	v.logger.Debug("tileview.active", "page", p.id, "coord", p.coord)
	if v.listener != nil {
		v.listener.OnActivePageChanged(p)
	}
}

// ScrollBegin locks the scroll direction to the sampled axis and applies
// the hub float transition for it. Animated scrolls are ignored.
func (v *View) ScrollBegin(sig BeginSignal) error {
	if v.bypass() || sig.Animated {
		return nil
	}
	lock := lockAxis(sig.Dir & v.scrollDir)
	if lock == DirNone {
		v.logger.Debug("tileview.begin_rejected", "sampled", sig.Dir, "allowed", v.scrollDir)
		return ErrInvalidState
	}
	if v.state == StateSettling {
		v.end = v.offset
		v.scroll(v.offset, v.offset, false)
	}
	v.started = true
	v.floatFor(lock)
	v.scrollDir = lock
	v.state = StateDragging
	v.logger.Debug("tileview.begin", "dir", lock, "offset", v.offset)
	return nil
}

// lockAxis widens a sampled direction to its whole axis. Samples spanning
// both axes are ambiguous.
func lockAxis(d Dir) Dir {
	hor, ver := d&DirHor != 0, d&DirVer != 0
	switch {
	case hor && !ver:
		return DirHor
	case ver && !hor:
		return DirVer
	default:
		return DirNone
	}
}

// ScrollBy moves the viewport during a drag. Motion outside the locked
// direction is dropped and the result is clamped to the pages' extent.
// It returns the delta actually applied.
func (v *View) ScrollBy(delta Point) Point {
	if v.state != StateDragging {
		return Point{}
	}
	var d Point
	if (delta.X < 0 && v.scrollDir&DirLeft != 0) || (delta.X > 0 && v.scrollDir&DirRight != 0) {
		d.X = delta.X
	}
	if (delta.Y < 0 && v.scrollDir&DirTop != 0) || (delta.Y > 0 && v.scrollDir&DirBottom != 0) {
		d.Y = delta.Y
	}
	next := v.clamp(v.offset.Add(d))
	applied := next.Sub(v.offset)
	v.offset = next
	v.end = next
	return applied
}

// ScrollProgress observes motion direction only.
func (v *View) ScrollProgress(dir Dir) {
	if v.bypass() {
		return
	}
	v.logger.Debug("tileview.progress", "dir", dir, "offset", v.offset)
}

// ScrollEnd snaps the scroll end to the nearest page. While the pointer is
// still pressed nothing happens; the next release re-evaluates.
func (v *View) ScrollEnd(sig EndSignal) {
	if v.bypass() {
		return
	}
	if sig.Pressed {
		v.logger.Debug("tileview.end_deferred", "offset", v.offset)
		return
	}
	v.end = v.snap(v.end)
	v.rotate()
	if v.offset != v.end {
		v.state = StateSettling
		v.scroll(v.offset, v.end, true)
		return
	}
	v.settle()
}

// Step reports an intermediate viewport position from a running animation.
func (v *View) Step(p Point) {
	if v.state != StateSettling {
		return
	}
	v.offset = p
}

// settle resolves the page under the scroll end and re-locks the direction
// mask to it.
func (v *View) settle() {
	prev := v.active
	v.state = StateIdle
	page := v.grid.settledAt(v.end)
	if page == nil {
		v.logger.Warn("tileview.settle_miss", "end", v.end)
		return
	}
	if page.hub {
		v.floatHub(false)
	}
	v.active = page
	if v.offset == v.end && v.aligned(v.end) {
		v.scrollDir = page.dir
		// A cross-axis return can land on an edge slot that the locked
		// mask kept from rotating.
		v.rotate()
	}
	if page != prev {
		v.notify(page)
	}
}

// finishSettle completes a running settle animation immediately.
func (v *View) finishSettle() {
	from := v.offset
	v.offset = v.end
	v.scroll(from, v.end, false)
	v.rotate()
	v.settle()
}

// SetTile jumps to target. With overlap enabled, a target off the active
// page's line is reached through the hub. It fails while a drag is in
// progress.
func (v *View) SetTile(target *Page, animate bool) error {
	if !v.grid.owns(target) || v.state == StateDragging || v.active == nil {
		v.logger.Debug("tileview.set_tile_rejected", "state", v.state)
		return ErrInvalidState
	}
	if v.state == StateSettling {
		v.finishSettle()
	}
	if target == v.active {
		return nil
	}

	defer v.suppress()()
	v.started = true
	g := v.grid
	before := v.active

	if g.overlap && (target == g.hub || before.dir&target.dir == 0) {
		v.active = g.hub
		v.scrollDir = DirAll
		v.jump(v.anchor)
		v.logger.Debug("tileview.hub_hop", "from", before.id, "to", target.id)
	}
	if g.overlap {
		v.floatHub(target != g.hub && target.dir&g.cross.Dir() != 0)
	}

	if target != v.active {
		v.active = target
		v.scrollDir = target.dir
		dest := v.restingPos(target)
		if animate {
			v.end = dest
			v.state = StateSettling
			v.scroll(v.offset, dest, true)
		} else {
			v.jump(dest)
		}
	} else {
		v.scrollDir = target.dir
	}
	if v.state != StateSettling {
		v.rotate()
	}

	if v.active != before {
		v.notify(v.active)
	}
	return nil
}

// SetStartTile designates the initial page without animation or
// notification. It may be called once, before any gesture or jump. Without
// cross-axis pages a main-axis start page also becomes the hub.
func (v *View) SetStartTile(p *Page) error {
	if !v.grid.owns(p) || v.started {
		return ErrInvalidState
	}
	defer v.suppress()()
	v.started = true

	g := v.grid
	if len(g.crossPages()) == 0 && p != g.hub {
		g.hub.hub = false
		p.hub = true
		g.hub = p
	}
	v.layout()
	v.active = p
	v.scrollDir = p.dir
	if g.overlap {
		v.floatHub(p != g.hub && p.dir&g.cross.Dir() != 0)
	}
	v.jump(v.restingPos(p))
	v.rotate()
	return nil
}

// Neighbor returns the page one slot away in direction d, if the active
// page allows moving that way.
func (v *View) Neighbor(d Dir) *Page {
	if v.active == nil || v.active.dir&d == 0 {
		return nil
	}
	var step Point
	switch d {
	case DirLeft:
		step = Point{X: -1}
	case DirRight:
		step = Point{X: 1}
	case DirTop:
		step = Point{Y: -1}
	case DirBottom:
		step = Point{Y: 1}
	default:
		return nil
	}
	p := v.grid.at(v.active.coord.Add(step))
	if p == v.active {
		return nil
	}
	return p
}

func (v *View) Active() *Page    { return v.active }
func (v *View) Hub() *Page       { return v.grid.hub }
func (v *View) State() State     { return v.state }
func (v *View) Offset() Point    { return v.offset }
func (v *View) End() Point       { return v.end }
func (v *View) ScrollDir() Dir   { return v.scrollDir }
func (v *View) Size() (w, h int) { return v.w, v.h }
func (v *View) MainAxis() Axis   { return v.grid.main }
func (v *View) MainCount() int   { return v.grid.mainCnt }
func (v *View) Wraparound() bool { return v.grid.wrap }
func (v *View) Overlap() bool    { return v.grid.overlap }

// Revision increments on every page position write.
func (v *View) Revision() uint64 { return v.rev }

// Pages returns the handles in creation order: main axis from the low end,
// then up, then down.
func (v *View) Pages() []*Page {
	return append([]*Page(nil), v.grid.pages...)
}

// PageAt returns the page currently at column col and row row.
func (v *View) PageAt(col, row int) *Page {
	return v.grid.at(Point{X: col, Y: row})
}

// ClassifyDrag samples the axis of a pointer movement. It returns DirNone
// while the movement stays inside deadZone.
func ClassifyDrag(dx, dy, deadZone int) Dir {
	ax, ay := abs(dx), abs(dy)
	if ax <= deadZone && ay <= deadZone {
		return DirNone
	}
	if ax >= ay {
		return DirHor
	}
	return DirVer
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
