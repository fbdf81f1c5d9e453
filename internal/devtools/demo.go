package devtools

import (
	"fmt"
	"time"

	"watchtiles/internal/tileview"
)

type StepKind int

const (
	// StepSwipe drags one page extent along Dir and releases.
	StepSwipe StepKind = iota
	// StepNeighbor jumps to the active page's neighbour in Dir.
	StepNeighbor
	// StepIndex jumps to the page created at Index.
	StepIndex
	// StepHub jumps back to the hub.
	StepHub
)

func (k StepKind) String() string {
	switch k {
	case StepNeighbor:
		return "neighbor"
	case StepIndex:
		return "index"
	case StepHub:
		return "hub"
	default:
		return "swipe"
	}
}

type Step struct {
	Kind    StepKind
	Dir     tileview.Dir
	Index   int
	Animate bool
	After   time.Duration
}

type Scenario struct {
	Name  string
	Steps []Step
}

const stepDelay = 700 * time.Millisecond

type Manager struct{}

func NewManager() *Manager { return &Manager{} }

func (m *Manager) Names() []string {
	return []string{"wrap_forward", "cross_float", "hub_route"}
}

// Resolve returns the named scenario sized for a grid with mainCount pages on
// the main axis. Unknown names fall back to wrap_forward.
func (m *Manager) Resolve(name string, mainCount int) Scenario {
	switch name {
	case "cross_float":
		return Scenario{Name: name, Steps: []Step{
			swipe(tileview.DirBottom),
			swipe(tileview.DirTop),
			swipe(tileview.DirTop),
			{Kind: StepHub, Animate: true, After: stepDelay},
		}}
	case "hub_route":
		return Scenario{Name: name, Steps: []Step{
			{Kind: StepNeighbor, Dir: tileview.DirTop, Animate: true, After: stepDelay},
			{Kind: StepIndex, Index: 0, Animate: true, After: stepDelay},
			{Kind: StepHub, Animate: true, After: stepDelay},
		}}
	default:
		steps := make([]Step, 0, max(1, mainCount))
		for i := 0; i < max(1, mainCount); i++ {
			steps = append(steps, swipe(tileview.DirRight))
		}
		return Scenario{Name: "wrap_forward", Steps: steps}
	}
}

func swipe(d tileview.Dir) Step {
	return Step{Kind: StepSwipe, Dir: d, Animate: true, After: stepDelay}
}

// Play applies one step to v. A swipe leaves v settling when the release
// needs an animation; the caller drives it to completion.
func (m *Manager) Play(v *tileview.View, step Step) error {
	switch step.Kind {
	case StepSwipe:
		w, h := v.Size()
		var delta tileview.Point
		switch step.Dir {
		case tileview.DirLeft:
			delta.X = -w
		case tileview.DirRight:
			delta.X = w
		case tileview.DirTop:
			delta.Y = -h
		case tileview.DirBottom:
			delta.Y = h
		default:
			return fmt.Errorf("swipe needs a single direction, got %v", step.Dir)
		}
		if err := v.ScrollBegin(tileview.BeginSignal{Dir: step.Dir}); err != nil {
			return fmt.Errorf("swipe %v: %w", step.Dir, err)
		}
		v.ScrollBy(delta)
		v.ScrollProgress(step.Dir)
		v.ScrollEnd(tileview.EndSignal{})
		return nil
	case StepNeighbor:
		next := v.Neighbor(step.Dir)
		if next == nil {
			return fmt.Errorf("no neighbour %v: %w", step.Dir, tileview.ErrInvalidState)
		}
		return v.SetTile(next, step.Animate)
	case StepIndex:
		pages := v.Pages()
		if step.Index < 0 || step.Index >= len(pages) {
			return fmt.Errorf("page index %d out of range: %w", step.Index, tileview.ErrInvalidState)
		}
		return v.SetTile(pages[step.Index], step.Animate)
	case StepHub:
		return v.SetTile(v.Hub(), step.Animate)
	default:
		return fmt.Errorf("unknown step kind %d", step.Kind)
	}
}

// Settle completes a pending settle animation immediately.
func Settle(v *tileview.View) {
	if v.State() != tileview.StateSettling {
		return
	}
	v.Step(v.End())
	v.ScrollEnd(tileview.EndSignal{})
}
