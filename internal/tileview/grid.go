package tileview

// grid owns the pages. order keeps the main-axis window in slot order
// followed by the cross-axis pages; wraparound rotates the window in place.
type grid struct {
	main    Axis
	cross   Axis
	mainCnt int
	wrap    bool
	overlap bool

	pages []*Page
	order []*Page
	hub   *Page
}

func newGrid(cfg Config) *grid {
	crossCnt := cfg.CrossCount()
	g := &grid{
		main:    cfg.MainAxis,
		cross:   cfg.MainAxis.Cross(),
		mainCnt: cfg.MainCount(),
	}
	g.overlap = cfg.Overlap && crossCnt > 0
	g.wrap = cfg.Wraparound && g.mainCnt >= 3

	mainDir := g.main.Dir()
	crossDir := g.cross.Dir()
	for i := 0; i < g.mainCnt; i++ {
		dir := mainDir
		if i == cfg.Left && crossCnt > 0 {
			dir = DirAll
		}
		g.add(g.place(i, cfg.Up), dir, false)
	}
	for i := 0; i < cfg.Up; i++ {
		g.add(g.place(cfg.Left, i), crossDir, true)
	}
	for i := 0; i < cfg.Down; i++ {
		g.add(g.place(cfg.Left, cfg.Up+1+i), crossDir, true)
	}

	// Without cross-axis neighbours nothing reaches every direction; the
	// centre of the main axis stands in as hub.
	if g.hub == nil {
		g.hub = g.pages[cfg.Left]
		g.hub.hub = true
	}
	return g
}

// place maps a main-axis and cross-axis index to a column and row.
func (g *grid) place(mainIdx, crossIdx int) Point {
	if g.main == Horizontal {
		return Point{X: mainIdx, Y: crossIdx}
	}
	return Point{X: crossIdx, Y: mainIdx}
}

func (g *grid) add(coord Point, dir Dir, cross bool) *Page {
	p := &Page{id: len(g.pages), coord: coord, dir: dir, cross: cross}
	if dir == DirAll {
		p.hub = true
		g.hub = p
	}
	g.pages = append(g.pages, p)
	g.order = append(g.order, p)
	return p
}

func (g *grid) window() []*Page    { return g.order[:g.mainCnt] }
func (g *grid) crossPages() []*Page { return g.order[g.mainCnt:] }

func (g *grid) owns(p *Page) bool {
	return p != nil && p.id >= 0 && p.id < len(g.pages) && g.pages[p.id] == p
}

func (g *grid) at(coord Point) *Page {
	for _, p := range g.order {
		if p.coord == coord {
			return p
		}
	}
	return nil
}

// settledAt returns the page resting under target. The topmost page wins;
// a floating page sits at the viewport origin and therefore under any
// target no page above it claims.
func (g *grid) settledAt(target Point) *Page {
	paint := g.paintOrder()
	for i := len(paint) - 1; i >= 0; i-- {
		p := paint[i]
		if p.floating || p.pos == target {
			return p
		}
	}
	return nil
}

// paintOrder lists pages bottom to top: the main-axis window, a floating
// hub above its siblings, then cross-axis pages which slide over it.
func (g *grid) paintOrder() []*Page {
	out := make([]*Page, 0, len(g.order))
	var floating *Page
	for _, p := range g.window() {
		if p.floating {
			floating = p
			continue
		}
		out = append(out, p)
	}
	if floating != nil {
		out = append(out, floating)
	}
	return append(out, g.crossPages()...)
}
