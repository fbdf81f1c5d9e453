package deck

import (
	"fmt"
	"regexp"

	"watchtiles/internal/tileview"
)

const (
	DeckKind               = "deck"
	SupportedSchemaVersion = 1
)

var (
	idPattern     = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{2,63}$`)
	accentPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{6}|[0-9]{1,3})$`)
)

// Deck declares a tile grid and the card shown on each tile. Card lists run
// in grid order: left from the far end toward the centre, right outward from
// the centre, up from the top and down from the row below the centre.
type Deck struct {
	Kind          string         `yaml:"kind"`
	SchemaVersion int            `yaml:"schema_version"`
	DeckID        string         `yaml:"deck_id"`
	Name          string         `yaml:"name"`
	Layout        LayoutSpec     `yaml:"layout"`
	Start         string         `yaml:"start"`
	Pages         PagesSpec      `yaml:"pages"`
	UI            UISpec         `yaml:"ui"`
	Extensions    map[string]any `yaml:"extensions"`

	Path string `yaml:"-"`
}

type LayoutSpec struct {
	MainAxis   string `yaml:"main_axis"`
	Wraparound bool   `yaml:"wraparound"`
	Overlap    bool   `yaml:"overlap"`
}

type PagesSpec struct {
	Left   []Card `yaml:"left"`
	Center Card   `yaml:"center"`
	Right  []Card `yaml:"right"`
	Up     []Card `yaml:"up"`
	Down   []Card `yaml:"down"`
}

type UISpec struct {
	MinCols int `yaml:"min_cols"`
	MinRows int `yaml:"min_rows"`
}

type Card struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	BodyMD string `yaml:"body_md"`
	Accent string `yaml:"accent"`
}

func (d Deck) Validate() error {
	if d.Kind != DeckKind {
		return fmt.Errorf("kind must be %q", DeckKind)
	}
	if d.SchemaVersion == 0 {
		return fmt.Errorf("schema_version is required")
	}
	if d.SchemaVersion > SupportedSchemaVersion {
		return fmt.Errorf("unsupported deck schema_version %d (max supported %d)", d.SchemaVersion, SupportedSchemaVersion)
	}
	if !idPattern.MatchString(d.DeckID) {
		return fmt.Errorf("invalid deck_id %q", d.DeckID)
	}
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := tileview.ParseAxis(d.Layout.MainAxis); err != nil {
		return fmt.Errorf("layout.main_axis: %w", err)
	}
	if d.Pages.Center.ID == "" {
		return fmt.Errorf("pages.center is required")
	}
	for _, group := range []struct {
		name  string
		cards []Card
	}{{"left", d.Pages.Left}, {"right", d.Pages.Right}, {"up", d.Pages.Up}, {"down", d.Pages.Down}} {
		if len(group.cards) > tileview.MaxPagesPerDir {
			return fmt.Errorf("pages.%s holds %d cards (max %d)", group.name, len(group.cards), tileview.MaxPagesPerDir)
		}
	}
	seen := map[string]struct{}{}
	for _, c := range d.Cards() {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("duplicate card id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	if d.Start != "" {
		if _, ok := seen[d.Start]; !ok {
			return fmt.Errorf("start %q does not name a card", d.Start)
		}
	}
	if d.UI.MinCols < 0 || d.UI.MinRows < 0 {
		return fmt.Errorf("ui minimums must be >= 0")
	}
	return nil
}

func (c Card) Validate() error {
	if !idPattern.MatchString(c.ID) {
		return fmt.Errorf("invalid card id %q", c.ID)
	}
	if c.Title == "" {
		return fmt.Errorf("card %q title is required", c.ID)
	}
	if c.Accent != "" && !accentPattern.MatchString(c.Accent) {
		return fmt.Errorf("card %q accent %q must be #rrggbb or an ANSI index", c.ID, c.Accent)
	}
	return nil
}

// Cards lists every card in page creation order: the main axis from its low
// end, then up, then down.
func (d Deck) Cards() []Card {
	out := make([]Card, 0, len(d.Pages.Left)+len(d.Pages.Right)+len(d.Pages.Up)+len(d.Pages.Down)+1)
	out = append(out, d.Pages.Left...)
	out = append(out, d.Pages.Center)
	out = append(out, d.Pages.Right...)
	out = append(out, d.Pages.Up...)
	out = append(out, d.Pages.Down...)
	return out
}

// IndexOf returns the creation index of the card with id, or -1.
func (d Deck) IndexOf(id string) int {
	for i, c := range d.Cards() {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// GridConfig maps the deck onto an engine configuration for a content area
// of width by height cells.
func (d Deck) GridConfig(width, height int) (tileview.Config, error) {
	axis, err := tileview.ParseAxis(d.Layout.MainAxis)
	if err != nil {
		return tileview.Config{}, err
	}
	cfg := tileview.Config{
		MainAxis:   axis,
		Left:       len(d.Pages.Left),
		Right:      len(d.Pages.Right),
		Up:         len(d.Pages.Up),
		Down:       len(d.Pages.Down),
		Wraparound: d.Layout.Wraparound,
		Overlap:    d.Layout.Overlap,
		Width:      width,
		Height:     height,
	}
	return cfg, cfg.Validate()
}
