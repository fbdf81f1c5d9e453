package deck

import "testing"

func validDeck() Deck {
	return Deck{
		Kind:          DeckKind,
		SchemaVersion: 1,
		DeckID:        "test-deck",
		Name:          "x",
		Layout:        LayoutSpec{MainAxis: "horizontal"},
		Pages: PagesSpec{
			Center: Card{ID: "home", Title: "Home"},
			Right:  []Card{{ID: "next", Title: "Next"}},
		},
	}
}

func TestDeckValidateAcceptsMinimalDeck(t *testing.T) {
	if err := validDeck().Validate(); err != nil {
		t.Fatalf("expected valid deck, got %v", err)
	}
}

func TestDeckValidateRejectsUnsupportedSchemaVersion(t *testing.T) {
	d := validDeck()
	d.SchemaVersion = SupportedSchemaVersion + 1
	if err := d.Validate(); err == nil {
		t.Fatalf("expected unsupported schema version error")
	}
}

func TestDeckValidateRejectsDuplicateCardID(t *testing.T) {
	d := validDeck()
	d.Pages.Up = []Card{{ID: "next", Title: "Again"}}
	if err := d.Validate(); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestDeckValidateRejectsUnknownStart(t *testing.T) {
	d := validDeck()
	d.Start = "missing"
	if err := d.Validate(); err == nil {
		t.Fatalf("expected unknown start error")
	}
}

func TestDeckValidateRejectsBadAxis(t *testing.T) {
	d := validDeck()
	d.Layout.MainAxis = "diagonal"
	if err := d.Validate(); err == nil {
		t.Fatalf("expected axis error")
	}
}

func TestDeckValidateRejectsMissingCenter(t *testing.T) {
	d := validDeck()
	d.Pages.Center = Card{}
	if err := d.Validate(); err == nil {
		t.Fatalf("expected missing center error")
	}
}

func TestCardValidate(t *testing.T) {
	cases := []struct {
		card Card
		ok   bool
	}{
		{Card{ID: "abc", Title: "t"}, true},
		{Card{ID: "abc", Title: "t", Accent: "#a0b1c2"}, true},
		{Card{ID: "abc", Title: "t", Accent: "212"}, true},
		{Card{ID: "ab", Title: "t"}, false},
		{Card{ID: "Abc", Title: "t"}, false},
		{Card{ID: "abc"}, false},
		{Card{ID: "abc", Title: "t", Accent: "red"}, false},
	}
	for i, tc := range cases {
		err := tc.card.Validate()
		if (err == nil) != tc.ok {
			t.Fatalf("case %d: expected ok=%v, got %v", i, tc.ok, err)
		}
	}
}
