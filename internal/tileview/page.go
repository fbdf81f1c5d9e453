package tileview

// Page is one tile of the grid. Handles stay valid for the lifetime of the
// view; wraparound relabels a page's coordinate, never its identity.
type Page struct {
	id       int
	coord    Point
	pos      Point
	dir      Dir
	cross    bool
	hub      bool
	floating bool
	content  any
}

// ID is the creation index: main-axis pages first, then up, then down.
func (p *Page) ID() int { return p.id }

// Coord returns the current column and row.
func (p *Page) Coord() (col, row int) { return p.coord.X, p.coord.Y }

// Pos is the page origin in content coordinates, or the viewport origin
// while floating.
func (p *Page) Pos() Point { return p.pos }

func (p *Page) Dir() Dir          { return p.dir }
func (p *Page) IsHub() bool       { return p.hub }
func (p *Page) Floating() bool    { return p.floating }
func (p *Page) OnCrossAxis() bool { return p.cross }

func (p *Page) Content() any     { return p.content }
func (p *Page) SetContent(v any) { p.content = v }
