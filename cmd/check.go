package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"watchtiles/internal/app"
	"watchtiles/internal/deck"
	"watchtiles/internal/state"
	"watchtiles/internal/tileview"
)

var checkDataDir string

var checkCmd = &cobra.Command{
	Use:   "check [deck.yaml]",
	Short: "Validate a deck and print its grid with visit history",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := deck.NewLoader()
		var (
			d   deck.Deck
			err error
		)
		if len(args) == 0 {
			d, err = loader.Default()
		} else {
			d, err = loader.Load(args[0])
		}
		if err != nil {
			return err
		}

		cfg := app.DefaultConfig()
		cfg.DataDir = checkDataDir
		if err := cfg.Validate(); err != nil {
			return err
		}
		h, err := loadHistory(cmd.Context(), filepath.Join(cfg.DataDir, state.DBFileName), d.DeckID)
		if err != nil {
			return err
		}
		return printGrid(cmd.OutOrStdout(), d, h)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkDataDir, "data-dir", "", "directory holding navigation history")
	rootCmd.AddCommand(checkCmd)
}

type history struct {
	summary state.Summary
	stats   map[string]state.PageStat
}

// loadHistory reads visit counts for deckID. A missing database yields no
// history rather than creating one.
func loadHistory(ctx context.Context, path, deckID string) (*history, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := state.NewSQLite(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("history %s: %w", path, err)
	}
	summary, err := store.GetSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", path, err)
	}
	stats, err := store.PageStats(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", path, err)
	}
	return &history{summary: summary, stats: stats}, nil
}

func printGrid(w io.Writer, d deck.Deck, h *history) error {
	cfg, err := d.GridConfig(d.UI.MinCols, d.UI.MinRows)
	if err != nil {
		return err
	}
	v, err := tileview.New(cfg, tileview.Options{})
	if err != nil {
		return err
	}
	if start := d.IndexOf(d.Start); start >= 0 && v.Pages()[start] != v.Active() {
		if err := v.SetStartTile(v.Pages()[start]); err != nil {
			return fmt.Errorf("start page %q: %w", d.Start, err)
		}
	}

	fmt.Fprintf(w, "%s (%s): %d pages, main axis %v, wraparound %v, overlap %v\n",
		d.Name, d.DeckID, len(v.Pages()), v.MainAxis(), v.Wraparound(), v.Overlap())
	if h != nil {
		fmt.Fprintf(w, "history: %d sessions, %d visits\n", h.summary.Sessions, h.summary.Visits)
	}

	cards := d.Cards()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "card", "col", "row", "moves", "visits", "")
	for i, p := range v.Pages() {
		col, row := p.Coord()
		mark := ""
		switch {
		case p.IsHub():
			mark = "hub"
		case p == v.Active():
			mark = "start"
		}
		visits := "-"
		if h != nil {
			visits = strconv.Itoa(h.stats[cards[i].ID].Visits)
		}
		t.Row(strconv.Itoa(i), cards[i].ID, strconv.Itoa(col), strconv.Itoa(row), p.Dir().String(), visits, mark)
	}
	_, err = lipgloss.Fprintln(w, t)
	return err
}
