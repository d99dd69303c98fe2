// challenge is the Outwit Tetris Challenge: a falling-block puzzle played in
// the terminal, locally or over SSH. Reaching the win score issues a coupon.
//
// Usage:
//
//	challenge play                 - Play a game
//	challenge serve                - Start SSH server for remote play
//	challenge scores               - Show high scores
//	challenge settings show|set    - Manage the stored game settings
//	challenge coupons list|redeem  - Manage issued coupons
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.outwit/challenge.db)
//	--config <path>      - Use a custom tetris.yaml
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/outwit/tetris-challenge/internal/config"
	"github.com/outwit/tetris-challenge/internal/logging"
	"github.com/outwit/tetris-challenge/internal/storage"
)

var (
	// Global flags
	flagFPS      int
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
	Use:   "challenge",
	Short: "Outwit Tetris Challenge - beat the score, win a coupon",
	Long: `Outwit Tetris Challenge is a falling-block puzzle for the terminal.
Clear lines to score points; reach the win score to earn a coupon code.

Available commands:
  play      - Play a game
  serve     - Start SSH server for remote play
  scores    - View high scores
  settings  - Show or change drop speed, points per row and win score
  coupons   - List or redeem issued coupons

Examples:
  challenge play
  challenge play --email me@example.com
  challenge serve --ssh :2222
  challenge settings set --drop-speed 800 --win-score 1500
  challenge coupons redeem OUTWIT-AI-7K2QZ`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.outwit/challenge.db", "Path to challenge database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(couponsCmd)
}

// exitf prints an error and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads tetris.yaml. A broken custom file is reported and the
// defaults are used.
func loadConfig() config.TetrisConfig {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	return cfg
}

// newLogger builds the process logger at --log-level.
func newLogger(w *os.File, prefix string) *log.Logger {
	logger, err := logging.New(w, flagLogLevel, prefix)
	if err != nil {
		exitf("%v", err)
	}
	return logger
}

// openStore opens the database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening challenge database: %v", err)
	}
	return store
}
