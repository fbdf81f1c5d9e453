package ui

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"watchtiles/internal/tileview"
)

// dragDeadZone is how far, in cells, the pointer travels before a press
// becomes a drag with a sampled direction.
const dragDeadZone = 1

type dragState struct {
	pressed  bool
	began    bool
	rejected bool
	startX   int
	startY   int
	lastX    int
	lastY    int

	pendingResize bool
}

func (r *Root) viewportOrigin() (int, int) {
	if r.layout == LayoutFramed {
		return 0, 1
	}
	return 0, 0
}

func (r *Root) inViewport(x, y int) bool {
	ox, oy := r.viewportOrigin()
	w, h := r.ContentSize()
	return x >= ox && x < ox+w && y >= oy && y < oy+h
}

func (r *Root) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	m := msg.Mouse()
	r.recordInputEvent(fmt.Sprintf("mouse_click:%d,%d button:%v", m.X, m.Y, m.Button))

	if r.mouseScope == "off" || m.Button != tea.MouseLeft || r.engine == nil || r.layout == LayoutTooSmall {
		return r, nil
	}
	if r.mouseScope == "scoped" && !r.inViewport(m.X, m.Y) {
		return r, nil
	}
	r.drag = dragState{pressed: true, startX: m.X, startY: m.Y, lastX: m.X, lastY: m.Y, pendingResize: r.drag.pendingResize}
	return r, nil
}

func (r *Root) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	m := msg.Mouse()
	if !r.drag.pressed || r.drag.rejected || r.engine == nil {
		return r, nil
	}
	if !r.drag.began {
		dx, dy := m.X-r.drag.startX, m.Y-r.drag.startY
		axis := tileview.ClassifyDrag(dx, dy, dragDeadZone)
		if axis == tileview.DirNone {
			return r, nil
		}
		sample := viewportDir(axis, dx, dy)
		if err := r.engine.ScrollBegin(tileview.BeginSignal{Dir: sample}); err != nil {
			r.drag.rejected = true
			r.statusFlash = fmt.Sprintf("can't scroll %v here", sample)
			r.dispatchController(func(c Controller) { c.OnRejected("drag", err) })
			return r, nil
		}
		r.drag.began = true
		r.recordInputEvent(fmt.Sprintf("drag_begin:%v", sample))
	}

	// Content follows the pointer, so the viewport moves the other way.
	delta := tileview.Point{X: r.drag.lastX - m.X, Y: r.drag.lastY - m.Y}
	r.drag.lastX, r.drag.lastY = m.X, m.Y
	if applied := r.engine.ScrollBy(delta); applied != (tileview.Point{}) {
		r.engine.ScrollProgress(viewportDir(tileview.DirAll, -applied.X, -applied.Y))
	}
	return r, nil
}

func (r *Root) handleMouseRelease(msg tea.MouseReleaseMsg) (tea.Model, tea.Cmd) {
	m := msg.Mouse()
	r.recordInputEvent(fmt.Sprintf("mouse_release:%d,%d", m.X, m.Y))

	began := r.drag.began
	pending := r.drag.pendingResize
	r.drag = dragState{}
	if began && r.engine != nil {
		r.engine.ScrollEnd(tileview.EndSignal{})
	}
	if pending {
		r.resize(r.cols, r.rows)
	}
	return r, r.animateIfNeeded()
}

// viewportDir converts a pointer movement (dx, dy) restricted to axis into
// the direction the viewport travels.
func viewportDir(axis tileview.Dir, dx, dy int) tileview.Dir {
	var d tileview.Dir
	if axis&tileview.DirHor != 0 {
		switch {
		case dx < 0:
			d |= tileview.DirRight
		case dx > 0:
			d |= tileview.DirLeft
		}
	}
	if axis&tileview.DirVer != 0 {
		switch {
		case dy < 0:
			d |= tileview.DirBottom
		case dy > 0:
			d |= tileview.DirTop
		}
	}
	return d
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	r.recordInputEvent(fmt.Sprintf("key:%v mod:%v text:%q", msg.Code, msg.Mod, msg.Text))

	switch {
	case key.Matches(msg, r.keymap.Quit):
		r.dispatchController(func(c Controller) { c.OnQuit() })
		return r, nil
	case key.Matches(msg, r.keymap.Help):
		r.help.ShowAll = !r.help.ShowAll
		return r, nil
	case key.Matches(msg, r.keymap.Left):
		return r, r.jump(tileview.DirLeft)
	case key.Matches(msg, r.keymap.Right):
		return r, r.jump(tileview.DirRight)
	case key.Matches(msg, r.keymap.Up):
		return r, r.jump(tileview.DirTop)
	case key.Matches(msg, r.keymap.Down):
		return r, r.jump(tileview.DirBottom)
	case key.Matches(msg, r.keymap.Home):
		if r.engine == nil {
			return r, nil
		}
		return r, r.jumpTo(r.engine.Hub())
	case msg.Code == tea.KeyEscape:
		r.statusFlash = ""
		return r, nil
	}
	return r, nil
}

func (r *Root) jump(d tileview.Dir) tea.Cmd {
	if r.engine == nil {
		return nil
	}
	target := r.engine.Neighbor(d)
	if target == nil {
		r.statusFlash = fmt.Sprintf("no page %v", d)
		return nil
	}
	return r.jumpTo(target)
}

func (r *Root) jumpTo(p *tileview.Page) tea.Cmd {
	if err := r.engine.SetTile(p, r.motionLevel != "off"); err != nil {
		r.statusFlash = "busy: finish the drag first"
		r.dispatchController(func(c Controller) { c.OnRejected("jump", err) })
		return nil
	}
	return r.animateIfNeeded()
}
