package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the team catalog",
	Long:  `Shows every team in the configured catalog with its ratings.`,
	Run:   runTeams,
}

func runTeams(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	if len(cfg.Teams) == 0 {
		fmt.Println("No teams configured.")
		return
	}

	fmt.Println("Teams:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, t := range cfg.Teams {
		maxNameLen = max(maxNameLen, len(t.Name))
	}

	fmt.Printf("  %-3s  %-4s  %-*s  %4s  %4s  %4s  %4s\n", "ID", "Abbr", maxNameLen, "Name", "Off", "Def", "Kick", "Disc")
	fmt.Printf("  %-3s  %-4s  %-*s  %4s  %4s  %4s  %4s\n", "--", "----", maxNameLen, "----", "---", "---", "----", "----")

	for _, t := range cfg.Teams {
		fmt.Printf("  %-3d  %-4s  %-*s  %4.2f  %4.2f  %4.2f  %4.2f\n",
			t.ID, t.Abbreviation, maxNameLen, t.Name, t.Offense, t.Defense, t.Kicking, t.Discipline)
	}

	fmt.Println()
	fmt.Println("Run 'gridiron simulate <home> <away>' to play a game.")
}
