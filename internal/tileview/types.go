package tileview

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidState is returned when an operation cannot run in the view's
// current state. The view is left untouched.
var ErrInvalidState = errors.New("tileview: invalid state")

// MaxPagesPerDir bounds each directional page count.
const MaxPagesPerDir = 255

// Dir is a bitmask of scroll directions. Left/Top move the viewport toward
// lower offsets, Right/Bottom toward higher ones.
type Dir uint8

const (
	DirNone   Dir = 0
	DirLeft   Dir = 1 << 0
	DirRight  Dir = 1 << 1
	DirTop    Dir = 1 << 2
	DirBottom Dir = 1 << 3

	DirHor = DirLeft | DirRight
	DirVer = DirTop | DirBottom
	DirAll = DirHor | DirVer
)

func (d Dir) String() string {
	switch d {
	case DirNone:
		return "none"
	case DirHor:
		return "hor"
	case DirVer:
		return "ver"
	case DirAll:
		return "all"
	}
	parts := make([]string, 0, 4)
	for _, n := range []struct {
		bit  Dir
		name string
	}{{DirLeft, "left"}, {DirRight, "right"}, {DirTop, "top"}, {DirBottom, "bottom"}} {
		if d&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Axis selects the main scroll axis of a grid.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Dir returns both directions along the axis.
func (a Axis) Dir() Dir {
	if a == Vertical {
		return DirVer
	}
	return DirHor
}

// Cross returns the orthogonal axis.
func (a Axis) Cross() Axis {
	if a == Vertical {
		return Horizontal
	}
	return Vertical
}

// ParseAxis accepts the names used in deck files and flags.
func ParseAxis(raw string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "hor", "horizontal", "x":
		return Horizontal, nil
	case "ver", "vertical", "y":
		return Vertical, nil
	default:
		return Horizontal, fmt.Errorf("invalid main axis %q", raw)
	}
}

type Point struct {
	X, Y int
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

func along(p Point, a Axis) int {
	if a == Vertical {
		return p.Y
	}
	return p.X
}

func withAlong(p Point, a Axis, v int) Point {
	if a == Vertical {
		p.Y = v
	} else {
		p.X = v
	}
	return p
}

// State is the scroll controller state.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateSettling
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateSettling:
		return "settling"
	default:
		return "idle"
	}
}

// Config describes the grid shape. Counts are given as if the main axis
// were horizontal: Left and Right run along the main axis on either side
// of the hub, Up and Down along the cross axis.
type Config struct {
	MainAxis Axis
	Left     int
	Right    int
	Up       int
	Down     int

	// Wraparound loops the main axis. Ignored with fewer than three
	// main-axis pages.
	Wraparound bool
	// Overlap lets cross-axis pages slide over a floating hub. Ignored
	// without cross-axis pages.
	Overlap bool

	// Content size of the container.
	Width  int
	Height int
}

func (c Config) Validate() error {
	if c.MainAxis != Horizontal && c.MainAxis != Vertical {
		return fmt.Errorf("invalid main axis %d", c.MainAxis)
	}
	for _, n := range []struct {
		name string
		v    int
	}{{"left", c.Left}, {"right", c.Right}, {"up", c.Up}, {"down", c.Down}} {
		if n.v < 0 || n.v > MaxPagesPerDir {
			return fmt.Errorf("%s page count %d out of range 0..%d", n.name, n.v, MaxPagesPerDir)
		}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid content size %dx%d", c.Width, c.Height)
	}
	return nil
}

// MainCount is the number of pages on the main axis, hub included.
func (c Config) MainCount() int { return c.Left + c.Right + 1 }

// CrossCount is the number of pages on the cross axis, hub excluded.
func (c Config) CrossCount() int { return c.Up + c.Down }

// BeginSignal reports the start of a scroll.
type BeginSignal struct {
	// Dir is the direction sampled from the pointer's first movement.
	Dir Dir
	// Animated marks scrolls started by an animation rather than a press.
	Animated bool
}

// EndSignal reports that scrolling stopped.
type EndSignal struct {
	// Pressed is set when the pointer is still down.
	Pressed bool
}

// Placement is a page to paint and its origin relative to the viewport.
type Placement struct {
	Page *Page
	At   Point
}
