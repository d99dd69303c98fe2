package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outwit/tetris-challenge/internal/config"
	"github.com/outwit/tetris-challenge/internal/storage"
)

var (
	flagDropSpeed int
	flagPoints    int
	flagWinScore  int
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage the stored game settings",
	Long: `Show or change the settings every new game starts with:
drop speed (ms per row), points per cleared row and the win score.

Examples:
  challenge settings show
  challenge settings set --drop-speed 800
  challenge settings set --points 150 --win-score 2000`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored game settings",
	Args:  cobra.NoArgs,
	Run:   runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the stored game settings",
	Long: `Change one or more settings. Values that are not given keep their
stored value, or the default when nothing is stored yet.

Limits:
  --drop-speed  at least 100 (ms)
  --points      at least 10
  --win-score   at least 100`,
	Args: cobra.NoArgs,
	Run:  runSettingsSet,
}

func init() {
	settingsSetCmd.Flags().IntVar(&flagDropSpeed, "drop-speed", 0, "Drop speed in milliseconds")
	settingsSetCmd.Flags().IntVar(&flagPoints, "points", 0, "Points per cleared row")
	settingsSetCmd.Flags().IntVar(&flagWinScore, "win-score", 0, "Score needed to win")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func printTunables(t config.Tunables) {
	fmt.Printf("  Drop speed:     %d ms\n", t.DropSpeedMs)
	fmt.Printf("  Points per row: %d\n", t.PointsPerRow)
	fmt.Printf("  Win score:      %d\n", t.WinScore)
}

func runSettingsShow(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	ctx := context.Background()
	t, err := store.FetchTunables(ctx)
	switch {
	case errors.Is(err, storage.ErrNoSettings):
		fmt.Println("No settings stored. Games use the defaults:")
		printTunables(loadConfig().Gameplay)
		return
	case err != nil:
		exitf("reading settings: %v", err)
	}

	fmt.Println("Game settings:")
	printTunables(t)
	if updated, err := store.SettingsUpdatedAt(ctx); err == nil {
		fmt.Printf("  Updated:        %s\n", updated.Local().Format("2006-01-02 15:04"))
	}
}

func runSettingsSet(cmd *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	ctx := context.Background()
	current, err := store.FetchTunables(ctx)
	switch {
	case errors.Is(err, storage.ErrNoSettings):
		current = loadConfig().Gameplay
	case err != nil:
		exitf("reading settings: %v", err)
	}
	current = current.WithDefaults(config.DefaultTunables())

	if cmd.Flags().Changed("drop-speed") {
		current.DropSpeedMs = flagDropSpeed
	}
	if cmd.Flags().Changed("points") {
		current.PointsPerRow = flagPoints
	}
	if cmd.Flags().Changed("win-score") {
		current.WinScore = flagWinScore
	}

	if err := store.SaveTunables(ctx, current); err != nil {
		exitf("%v", err)
	}

	fmt.Println("Settings updated successfully!")
	printTunables(current)
}
