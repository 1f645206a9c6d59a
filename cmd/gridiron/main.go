// gridiron simulates American football games play by play in the terminal.
//
// Usage:
//
//	gridiron teams                  - List the team catalog
//	gridiron simulate <home> <away> - Play one game and print the play-by-play
//	gridiron slate [teams...]       - Play a round robin in parallel
//	gridiron games [team]           - Show stored games and standings
//	gridiron replay [game-id]       - Step through a stored game
//	gridiron serve                  - Serve the replay viewer over SSH
//
// Global flags:
//
//	--seed <value>     - Set RNG seed for reproducible games
//	--db <path>        - Set database path (default: ~/.gridiron/gridiron.db)
//	--config <path>    - Load rules and teams from a YAML file
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/logging"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridiron",
	Short: "Gridiron - American football play-by-play simulator",
	Long: `Gridiron simulates American football games one play at a time:
penalties, downs, scoring, drives and overtime included.

Available commands:
  teams     - Show the team catalog
  simulate  - Play a single game
  slate     - Play a round robin of games in parallel
  games     - Show stored games and standings
  replay    - Step through a stored game
  serve     - Serve the replay viewer over SSH

Examples:
  gridiron teams
  gridiron simulate BOS CHI --seed 42
  gridiron slate --workers 8 --metrics-addr :9464
  gridiron games BOS --standings
  gridiron replay
  gridiron serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to games database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(slateCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig resolves the configuration: file, then GRIDIRON_* environment,
// then command line flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	if flagSeed != 0 {
		cfg.Sim.Seed = flagSeed
	}
	if flagDBPath != "" {
		cfg.Sim.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Sim.LogLevel = flagLogLevel
	}
	if cfg.Sim.Seed == 0 {
		cfg.Sim.Seed = time.Now().UnixNano()
	}

	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) (*log.Logger, error) {
	return logging.New(os.Stderr, cfg.Sim.LogLevel, "gridiron")
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
