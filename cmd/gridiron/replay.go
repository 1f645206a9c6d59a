package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridiron/internal/platform/tui"
	"github.com/vovakirdan/gridiron/internal/storage"
)

var flagSpeed int

var replayCmd = &cobra.Command{
	Use:   "replay [game-id]",
	Short: "Step through a stored game",
	Long: `Open the replay viewer on a stored game (default: the most recent).

Controls:
  Up/Down     - Previous/next play
  Space/P     - Play back the game from the start, or pause
  Tab/S-Tab   - Next/previous game
  ?           - Toggle help
  Q/Esc       - Quit

Examples:
  gridiron replay
  gridiron replay 3f1c2a9e-... --speed 8`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&flagSpeed, "speed", 4, "Playback speed in plays per second")
	simulateCmd.Flags().IntVar(&flagSpeed, "speed", 4, "Playback speed in plays per second (with --replay)")
}

func runReplay(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	store, err := storage.Open(cfg.Sim.DBPath)
	if err != nil {
		exitf("opening games database: %v", err)
	}
	defer store.Close()

	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
	}

	width, height := terminalSize()
	if err := tui.RunReplay(store, gameID, width, height, flagSpeed); err != nil {
		exitf("%v", err)
	}
}
