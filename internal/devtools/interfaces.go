package devtools

import "watchtiles/internal/tileview"

type Demo interface {
	Names() []string
	Resolve(name string, mainCount int) Scenario
	Play(v *tileview.View, step Step) error
}
