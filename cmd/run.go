package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"watchtiles/internal/app"
)

var runCfg = app.DefaultConfig()

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the tile viewer",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := runCfg
		if err := cfg.Validate(); err != nil {
			return err
		}
		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return a.Run(ctx)
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runCfg.DeckPath, "deck", "", "deck YAML file (built-in watch deck when empty)")
	f.StringVar(&runCfg.DataDir, "data-dir", "", "directory for navigation history")
	f.StringVar(&runCfg.LogPath, "log", "", "JSON event log path")
	f.BoolVar(&runCfg.Debug, "debug", false, "verbose diagnostics on stderr")
	f.BoolVar(&runCfg.Resume, "resume", false, "start on the page last active for this deck")
	f.StringVar(&runCfg.Demo, "demo", "", "replay a scripted gesture scenario")
	f.BoolVar(&runCfg.ASCIIOnly, "ascii", false, "ASCII borders and glyphs only")
	f.BoolVar(&runCfg.PlainBodies, "plain", false, "show card bodies without markdown rendering")
	f.BoolVar(&runCfg.Dev, "dev", false, "serve dev endpoints")
	f.StringVar(&runCfg.DevHTTP, "dev-http", runCfg.DevHTTP, "dev endpoint listen address")
	f.StringVar(&runCfg.UI.StyleVariant, "style", runCfg.UI.StyleVariant, "style variant: midnight, paper or retro_lcd")
	f.StringVar(&runCfg.UI.MotionLevel, "motion", runCfg.UI.MotionLevel, "snap animation: full, reduced or off")
	f.StringVar(&runCfg.UI.MouseScope, "mouse", runCfg.UI.MouseScope, "mouse capture: scoped, full or off")
	rootCmd.AddCommand(runCmd)
}
