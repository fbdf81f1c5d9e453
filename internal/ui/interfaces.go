package ui

import (
	"watchtiles/internal/devtools"
	"watchtiles/internal/tileview"
)

type Controller interface {
	OnPageChanged(info PageInfo)
	OnRejected(action string, err error)
	OnQuit()
}

type View interface {
	Run() error
	Stop()
	SetController(Controller)
	Attach(engine *tileview.View)
	SetHeader(state HeaderState)
	PlayDemo(demo devtools.Demo, scenario devtools.Scenario)
	FlashStatus(msg string)
}

type LayoutMode int

const (
	LayoutFramed LayoutMode = iota
	LayoutBare
	LayoutTooSmall
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutBare:
		return "bare"
	case LayoutTooSmall:
		return "too_small"
	default:
		return "framed"
	}
}

// Card is the content attached to a page.
type Card struct {
	ID     string
	Title  string
	BodyMD string
	Accent string
}

// PageInfo is a snapshot of the active page handed to the controller.
type PageInfo struct {
	Index int
	Card  Card
	Col   int
	Row   int
	Hub   bool
}

type HeaderState struct {
	DeckName  string
	SessionID string
	Resumed   bool
}
