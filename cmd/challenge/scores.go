package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/outwit/tetris-challenge/internal/games/tetris"
	"github.com/outwit/tetris-challenge/internal/platform/tui"
)

var (
	flagScoresLimit       int
	flagScoresInteractive bool
	flagScoresClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores.

With -i the scoreboard opens as an interactive table with a tab for
issued coupons.

Examples:
  challenge scores
  challenge scores --limit 25
  challenge scores -i
  challenge scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores")
}

func runScores(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(tetris.GameID); err != nil {
			exitf("clearing scores: %v", err)
		}
		fmt.Println("Scores cleared.")
		return
	}

	if flagScoresInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			exitf("running scoreboard: %v", err)
		}
		return
	}

	scores, err := store.TopScores(tetris.GameID, flagScoresLimit)
	if err != nil {
		exitf("retrieving scores: %v", err)
	}

	fmt.Println("High Scores - Outwit Tetris Challenge")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'challenge play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %-12s  %s\n", "Rank", "Score", "Level", "Lines", "Result", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %-12s  %s\n", "----", "-----", "-----", "-----", "------", "------", "----")

	for i, entry := range scores {
		result := "lost"
		if entry.Won {
			result = "won"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-5d  %-6s  %-12s  %s\n",
			i+1, entry.Score, entry.Level, entry.Lines, result, entry.Player,
			entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(tetris.GameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Wins: %d  Average: %.0f\n",
			stats.HighScore, stats.GamesCount, stats.Wins, stats.AvgScore)
	}
}
