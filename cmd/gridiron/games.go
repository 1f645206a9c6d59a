package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridiron/internal/storage"
)

var (
	flagLimit     int
	flagStandings bool
)

var gamesCmd = &cobra.Command{
	Use:   "games [team]",
	Short: "Show stored games and standings",
	Long: `List the most recent stored games, optionally only those of one team
(by abbreviation). With --standings the all-time records are shown instead.

Examples:
  gridiron games
  gridiron games BOS --limit 5
  gridiron games --standings`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGames,
}

func init() {
	gamesCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Number of games to show")
	gamesCmd.Flags().BoolVar(&flagStandings, "standings", false, "Show win/loss records")
}

func runGames(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	store, err := storage.Open(cfg.Sim.DBPath)
	if err != nil {
		exitf("opening games database: %v", err)
	}
	defer store.Close()

	if flagStandings {
		records, err := store.Standings()
		if err != nil {
			exitf("retrieving standings: %v", err)
		}
		if len(records) == 0 {
			fmt.Println("No games recorded yet.")
			return
		}
		fmt.Printf("  %-4s  %3s  %3s  %3s  %5s  %5s\n", "Team", "W", "L", "T", "PF", "PA")
		fmt.Printf("  %-4s  %3s  %3s  %3s  %5s  %5s\n", "----", "-", "-", "-", "--", "--")
		for _, r := range records {
			fmt.Printf("  %-4s  %3d  %3d  %3d  %5d  %5d\n", r.Team, r.Wins, r.Losses, r.Ties, r.PointsFor, r.PointsAgainst)
		}
		return
	}

	team := ""
	if len(args) == 1 {
		if t, err := cfg.Team(args[0]); err == nil {
			team = t.Abbreviation
		} else {
			team = args[0]
		}
	}

	games, err := store.RecentGames(team, flagLimit)
	if err != nil {
		exitf("retrieving games: %v", err)
	}

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Run 'gridiron simulate <home> <away>' to play one!")
		return
	}

	fmt.Printf("  %-36s  %-16s  %-11s  %-3s  %5s  %s\n", "ID", "Date", "Matchup", "OT", "Plays", "Score")
	fmt.Printf("  %-36s  %-16s  %-11s  %-3s  %5s  %s\n", "--", "----", "-------", "--", "-----", "-----")
	for _, g := range games {
		ot := ""
		if g.Overtime {
			ot = "OT"
		}
		fmt.Printf("  %-36s  %-16s  %-11s  %-3s  %5d  %d-%d\n",
			g.ID, g.CreatedAt.Format("2006-01-02 15:04"), g.Away+" @ "+g.Home, ot, g.Plays, g.AwayScore, g.HomeScore)
	}
	fmt.Println()
	fmt.Println("Run 'gridiron replay <id>' to step through a game.")
}
