package deck

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDeck []byte

type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

func (l *FSLoader) Load(path string) (Deck, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, err
	}
	d, err := Parse(b)
	if err != nil {
		return d, fmt.Errorf("%s: %w", path, err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		d.Path = abs
	} else {
		d.Path = path
	}
	return d, nil
}

// Default returns the built-in watch deck.
func (l *FSLoader) Default() (Deck, error) {
	d, err := Parse(defaultDeck)
	if err != nil {
		return d, fmt.Errorf("default deck: %w", err)
	}
	return d, nil
}

func Parse(b []byte) (Deck, error) {
	var d Deck
	if err := yaml.Unmarshal(b, &d); err != nil {
		return d, fmt.Errorf("parse: %w", err)
	}
	applyDeckDefaults(&d)
	if err := d.Validate(); err != nil {
		return d, fmt.Errorf("validate: %w", err)
	}
	return d, nil
}

func applyDeckDefaults(d *Deck) {
	if d.Layout.MainAxis == "" {
		d.Layout.MainAxis = "horizontal"
	}
	if d.UI.MinCols <= 0 {
		d.UI.MinCols = 40
	}
	if d.UI.MinRows <= 0 {
		d.UI.MinRows = 14
	}
	if d.Start == "" {
		d.Start = d.Pages.Center.ID
	}
}
