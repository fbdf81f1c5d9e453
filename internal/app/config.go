package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config controls runtime behavior for the tile viewer.
type Config struct {
	Dev         bool
	DevHTTP     string
	LogPath     string
	Debug       bool
	DeckPath    string
	Resume      bool
	Demo        string
	ASCIIOnly   bool
	PlainBodies bool
	DataDir     string
	UI          UIConfig
}

type UIConfig struct {
	StyleVariant string
	MotionLevel  string
	MouseScope   string
}

func DefaultConfig() Config {
	return Config{
		DevHTTP: "127.0.0.1:17321",
		UI: UIConfig{
			StyleVariant: "midnight",
			MotionLevel:  "full",
			MouseScope:   "scoped",
		},
	}
}

func (c *Config) Validate() error {
	switch c.UI.StyleVariant {
	case "", "midnight", "paper", "retro_lcd":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "midnight"
	}
	switch c.UI.MotionLevel {
	case "", "off", "reduced", "full":
	default:
		return fmt.Errorf("invalid ui motion level %q", c.UI.MotionLevel)
	}
	if c.UI.MotionLevel == "" {
		c.UI.MotionLevel = "full"
	}
	switch c.UI.MouseScope {
	case "", "off", "scoped", "full":
	default:
		return fmt.Errorf("invalid ui mouse scope %q", c.UI.MouseScope)
	}
	if c.UI.MouseScope == "" {
		c.UI.MouseScope = "scoped"
	}
	if c.Dev && c.DevHTTP == "" {
		return errors.New("dev mode needs a listen address")
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "watchtiles")
	}

	return nil
}
