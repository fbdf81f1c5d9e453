package tileview

import (
	"errors"
	"testing"
)

func TestGridConstructionHorizontal(t *testing.T) {
	g := newGrid(Config{Left: 1, Right: 2, Up: 1, Down: 2, Width: 1, Height: 1})

	if len(g.pages) != 7 {
		t.Fatalf("expected 7 pages, got %d", len(g.pages))
	}
	want := []struct {
		coord Point
		dir   Dir
		cross bool
	}{
		{Point{0, 1}, DirHor, false},
		{Point{1, 1}, DirAll, false},
		{Point{2, 1}, DirHor, false},
		{Point{3, 1}, DirHor, false},
		{Point{1, 0}, DirVer, true},
		{Point{1, 2}, DirVer, true},
		{Point{1, 3}, DirVer, true},
	}
	for i, w := range want {
		p := g.pages[i]
		if p.coord != w.coord || p.dir != w.dir || p.cross != w.cross {
			t.Fatalf("page %d: expected %v/%v/%v, got %v/%v/%v", i, w.coord, w.dir, w.cross, p.coord, p.dir, p.cross)
		}
	}
	if g.hub != g.pages[1] || !g.pages[1].hub {
		t.Fatalf("expected page 1 as hub")
	}
	if g.overlap || g.wrap {
		t.Fatalf("expected overlap and wrap off when not requested")
	}
}

func TestGridConstructionVertical(t *testing.T) {
	g := newGrid(Config{MainAxis: Vertical, Left: 1, Right: 1, Up: 1, Width: 1, Height: 1})
	if g.pages[0].coord != (Point{X: 1, Y: 0}) || g.pages[0].dir != DirVer {
		t.Fatalf("expected first main page at column 1 row 0 moving vertically, got %v %v", g.pages[0].coord, g.pages[0].dir)
	}
	if g.pages[3].coord != (Point{X: 0, Y: 1}) || g.pages[3].dir != DirHor {
		t.Fatalf("expected cross page beside the hub moving horizontally, got %v %v", g.pages[3].coord, g.pages[3].dir)
	}
}

func TestGridFallbackHub(t *testing.T) {
	g := newGrid(Config{Left: 2, Right: 1, Overlap: true, Width: 1, Height: 1})
	if g.hub != g.pages[2] {
		t.Fatalf("expected page at the left count to stand in as hub")
	}
	if g.hub.dir != DirHor {
		t.Fatalf("fallback hub keeps the main-axis mask, got %v", g.hub.dir)
	}
	if g.overlap {
		t.Fatalf("expected overlap disabled without cross pages")
	}
}

func TestGridWrapNeedsThreePages(t *testing.T) {
	if g := newGrid(Config{Right: 1, Wraparound: true, Width: 1, Height: 1}); g.wrap {
		t.Fatalf("expected wraparound off for two pages")
	}
	if g := newGrid(Config{Right: 2, Wraparound: true, Width: 1, Height: 1}); !g.wrap {
		t.Fatalf("expected wraparound on for three pages")
	}
}

func TestGridSinglePage(t *testing.T) {
	v, err := New(Config{Width: 10, Height: 5}, Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if len(v.Pages()) != 1 || v.Active() != v.Hub() {
		t.Fatalf("expected a single active hub page")
	}
	if err := v.ScrollBegin(BeginSignal{Dir: DirHor}); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if got := v.ScrollBy(Point{X: 4}); got != (Point{}) {
		t.Fatalf("expected no room to scroll, got %v", got)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []Config{
		{MainAxis: Axis(7), Width: 1, Height: 1},
		{Left: -1, Width: 1, Height: 1},
		{Down: MaxPagesPerDir + 1, Width: 1, Height: 1},
		{Width: 0, Height: 1},
	}
	for i, cfg := range cases {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
		if _, err := New(cfg, Options{}); err == nil {
			t.Fatalf("case %d: expected New to fail", i)
		}
	}
	if errors.Is((Config{Width: 1}).Validate(), ErrInvalidState) {
		t.Fatalf("configuration errors are not state errors")
	}
}

func TestParseAxis(t *testing.T) {
	for raw, want := range map[string]Axis{"": Horizontal, "HOR": Horizontal, "vertical": Vertical, " y ": Vertical} {
		got, err := ParseAxis(raw)
		if err != nil || got != want {
			t.Fatalf("parse %q: expected %v, got %v (%v)", raw, want, got, err)
		}
	}
	if _, err := ParseAxis("diagonal"); err == nil {
		t.Fatalf("expected error for unknown axis")
	}
}

func TestSnapAxis(t *testing.T) {
	cases := []struct{ v, size, want int }{
		{0, 40, 0},
		{19, 40, 0},
		{20, 40, 40},
		{59, 40, 40},
		{60, 40, 80},
		{-20, 40, 0},
		{-21, 40, -40},
		{-30, 40, -40},
	}
	for _, tc := range cases {
		if got := snapAxis(tc.v, tc.size); got != tc.want {
			t.Fatalf("snap(%d,%d): expected %d, got %d", tc.v, tc.size, tc.want, got)
		}
	}
}

func TestDirString(t *testing.T) {
	if DirAll.String() != "all" || (DirLeft | DirTop).String() != "left|top" {
		t.Fatalf("unexpected dir names %q %q", DirAll, DirLeft|DirTop)
	}
}
