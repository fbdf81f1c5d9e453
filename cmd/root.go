package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "watchtiles",
	Short: "Swipe through a grid of watch-face tiles in the terminal",
	Long: `watchtiles lays cards out on a paged grid: one main row (or column)
with a hub tile, optional pages above and below the hub, and wraparound on
the main axis. Drag with the mouse or use the arrow keys to move between
tiles.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}
