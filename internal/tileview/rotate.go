package tileview

// rotate relabels the main-axis window when the scroll end sits on its
// first or last slot, so a neighbour always exists on both sides. The
// viewport is shifted by one page extent to hide the relabelling.
func (v *View) rotate() bool {
	g := v.grid
	if !g.wrap || v.scrollDir&g.main.Dir() == 0 {
		return false
	}
	extent := v.extent(g.main)
	last := extent * (g.mainCnt - 1)
	at := along(v.end, g.main)
	if at != 0 && at != last {
		return false
	}

	defer v.suppress()()
	v.floatHub(false)

	win := g.window()
	shift := extent
	if at == 0 {
		moved := win[len(win)-1]
		copy(win[1:], win[:len(win)-1])
		win[0] = moved
	} else {
		moved := win[0]
		copy(win, win[1:])
		win[len(win)-1] = moved
		shift = -extent
	}
	for i, p := range win {
		p.coord = withAlong(p.coord, g.main, i)
	}
	// Cross-axis pages stay parked on the hub's line.
	hubSlot := along(g.hub.coord, g.main)
	for _, p := range g.crossPages() {
		p.coord = withAlong(p.coord, g.main, hubSlot)
	}
	v.layout()

	from := v.offset
	v.offset = withAlong(v.offset, g.main, along(v.offset, g.main)+shift)
	v.end = withAlong(v.end, g.main, along(v.end, g.main)+shift)
	v.scroll(from, v.offset, false)
	v.logger.Debug("tileview.rotate", "edge", at, "shift", shift, "offset", v.offset, "end", v.end)
	return true
}
