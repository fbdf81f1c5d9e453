package tileview

// layout recomputes page positions from grid coordinates and refreshes the
// cached hub anchor. A floating hub keeps its pinned position.
func (v *View) layout() {
	for _, p := range v.grid.order {
		if p.floating {
			continue
		}
		v.setPos(p, v.cellOrigin(p.coord))
	}
	v.anchor = v.cellOrigin(v.grid.hub.coord)
}

func (v *View) cellOrigin(coord Point) Point {
	return Point{X: coord.X * v.w, Y: coord.Y * v.h}
}

// setPos is the only writer of Page.pos.
func (v *View) setPos(p *Page, pos Point) {
	if p.pos == pos {
		return
	}
	p.pos = pos
	v.rev++
}

// restingPos is where the viewport sits when p is active.
func (v *View) restingPos(p *Page) Point {
	if p.hub {
		return v.anchor
	}
	return p.pos
}

func (v *View) extent(a Axis) int {
	if a == Vertical {
		return v.h
	}
	return v.w
}

// bounds is the scrollable range spanned by non-floating pages.
func (v *View) bounds() (lo, hi Point) {
	first := true
	for _, p := range v.grid.order {
		if p.floating {
			continue
		}
		if first {
			lo, hi = p.pos, p.pos
			first = false
			continue
		}
		lo.X = min(lo.X, p.pos.X)
		lo.Y = min(lo.Y, p.pos.Y)
		hi.X = max(hi.X, p.pos.X)
		hi.Y = max(hi.Y, p.pos.Y)
	}
	return lo, hi
}

func (v *View) clamp(p Point) Point {
	lo, hi := v.bounds()
	p.X = min(max(p.X, lo.X), hi.X)
	p.Y = min(max(p.Y, lo.Y), hi.Y)
	return p
}

// snap rounds p to the nearest page slot, halves rounding up.
func (v *View) snap(p Point) Point {
	return Point{X: snapAxis(p.X, v.w), Y: snapAxis(p.Y, v.h)}
}

func snapAxis(v, size int) int {
	n := v + size/2
	q := n / size
	if n < 0 && n%size != 0 {
		q--
	}
	return q * size
}

func (v *View) aligned(p Point) bool {
	return p.X%v.w == 0 && p.Y%v.h == 0
}

// Resize changes the content size, lays the grid out again and re-snaps the
// viewport onto the active page without notifying.
func (v *View) Resize(width, height int) error {
	if width <= 0 || height <= 0 || v.state == StateDragging {
		return ErrInvalidState
	}
	if v.state == StateSettling {
		v.finishSettle()
	}
	defer v.suppress()()

	v.w, v.h = width, height
	v.layout()
	v.jump(v.restingPos(v.active))
	return nil
}

// Visible lists the pages intersecting the viewport in paint order.
func (v *View) Visible() []Placement {
	out := make([]Placement, 0, 2)
	for _, p := range v.grid.paintOrder() {
		at := p.pos
		if !p.floating {
			at = p.pos.Sub(v.offset)
		}
		if at.X >= v.w || at.Y >= v.h || at.X+v.w <= 0 || at.Y+v.h <= 0 {
			continue
		}
		out = append(out, Placement{Page: p, At: at})
	}
	return out
}
