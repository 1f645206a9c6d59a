package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridiron/internal/core"
	"github.com/vovakirdan/gridiron/internal/platform/tui"
	"github.com/vovakirdan/gridiron/internal/slate"
	"github.com/vovakirdan/gridiron/internal/storage"
)

var (
	flagQuiet  bool
	flagNoSave bool
	flagReplay bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <home> <away>",
	Short: "Play one game",
	Long: `Play a single game between two catalog teams and print the
play-by-play, the box score and the final.

Teams may be given by id, abbreviation or name. The game is stored in
the database unless --no-save is set.

Examples:
  gridiron simulate BOS CHI
  gridiron simulate 1 2 --seed 42 --quiet
  gridiron simulate BOS CHI --replay`,
	Args: cobra.ExactArgs(2),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print the box score and final")
	simulateCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store the game")
	simulateCmd.Flags().BoolVar(&flagReplay, "replay", false, "Open the replay viewer when the game ends")
}

func runSimulate(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	home, err := cfg.Team(args[0])
	if err != nil {
		exitf("%v", err)
	}
	away, err := cfg.Team(args[1])
	if err != nil {
		exitf("%v", err)
	}
	if home.ID == away.ID {
		exitf("%s cannot play itself", home.Abbreviation)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		exitf("%v", err)
	}

	opts := slate.Options{Config: cfg, Seed: cfg.Sim.Seed, Logger: logger}

	var store *storage.Store
	if !flagNoSave {
		store, err = storage.Open(cfg.Sim.DBPath)
		if err != nil {
			logger.Warn("could not open games database, game will not be saved", "err", err)
		} else {
			defer store.Close()
			opts.Persister = store
		}
	}

	e, box, err := slate.NewGame(slate.Matchup{Home: home, Away: away}, cfg.Sim.Seed, opts)
	if err != nil {
		exitf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("kickoff", "game", e.ID(), "home", home.Abbreviation, "away", away.Abbreviation, "seed", cfg.Sim.Seed)
	res, err := e.Run(ctx)
	if err != nil {
		var pe *core.PlayError
		if errors.As(err, &pe) {
			exitf("game halted at play %d in %s: %v", pe.Index, pe.Component, pe.Err)
		}
		exitf("%v", err)
	}

	if !flagQuiet {
		printPlayByPlay(os.Stdout, res)
	}
	printBoxScore(os.Stdout, res, box)
	printFinal(os.Stdout, res)

	if flagReplay && store != nil {
		w, h := terminalSize()
		if err := tui.RunReplay(store, res.ID, w, h, flagSpeed); err != nil {
			exitf("%v", err)
		}
	} else if flagReplay {
		fmt.Fprintln(os.Stderr, "Replay needs a games database.")
	}
}
