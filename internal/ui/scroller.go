package ui

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"watchtiles/internal/tileview"
)

// springScroller animates the engine's settle scrolls. The engine hands it
// targets through ScrollTo; the render tick advances one frame at a time and
// reports positions back with View.Step.
type springScroller struct {
	spring  harmonica.Spring
	instant bool

	x, y   float64
	vx, vy float64
	target tileview.Point
	active bool
}

func newSpringScroller(motionLevel string) *springScroller {
	s := &springScroller{spring: harmonica.NewSpring(harmonica.FPS(60), 10.0, 0.8)}
	switch motionLevel {
	case "reduced":
		s.spring = harmonica.NewSpring(harmonica.FPS(30), 9.0, 0.92)
	case "off":
		s.instant = true
	}
	return s
}

func (s *springScroller) ScrollTo(from, to tileview.Point, animate bool) {
	s.target = to
	if !animate {
		s.place(to)
		s.active = false
		return
	}
	if !s.active {
		s.vx, s.vy = 0, 0
	}
	s.x, s.y = float64(from.X), float64(from.Y)
	s.active = true
}

func (s *springScroller) place(p tileview.Point) {
	s.x, s.y = float64(p.X), float64(p.Y)
	s.vx, s.vy = 0, 0
}

// advance moves one frame toward the target. It reports the rounded position
// and whether the animation has arrived.
func (s *springScroller) advance() (tileview.Point, bool) {
	if !s.active {
		return s.target, true
	}
	if s.instant {
		s.place(s.target)
		s.active = false
		return s.target, true
	}
	s.x, s.vx = s.spring.Update(s.x, s.vx, float64(s.target.X))
	s.y, s.vy = s.spring.Update(s.y, s.vy, float64(s.target.Y))
	if near(s.x, s.vx, s.target.X) && near(s.y, s.vy, s.target.Y) {
		s.place(s.target)
		s.active = false
		return s.target, true
	}
	return tileview.Point{X: int(math.Round(s.x)), Y: int(math.Round(s.y))}, false
}

func near(pos, vel float64, target int) bool {
	return math.Abs(pos-float64(target)) < 0.5 && math.Abs(vel) < 0.5
}

var _ tileview.Scroller = (*springScroller)(nil)
