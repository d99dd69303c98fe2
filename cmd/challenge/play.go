package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/outwit/tetris-challenge/internal/audio"
	"github.com/outwit/tetris-challenge/internal/core"
	"github.com/outwit/tetris-challenge/internal/logging"
	"github.com/outwit/tetris-challenge/internal/outcome"
	"github.com/outwit/tetris-challenge/internal/platform/tui"
	"github.com/outwit/tetris-challenge/internal/storage"
)

var (
	flagPlayer  string
	flagEmail   string
	flagLogFile string
	flagMute    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start the challenge in this terminal.

Controls:
  Left/Right, A/D   - Move
  Up, Space, X      - Rotate
  Down, S           - Soft drop (hold)
  Enter             - Start
  P/Esc             - Pause
  R                 - Restart
  M                 - Mute
  Q/Ctrl+C          - Quit

Examples:
  challenge play
  challenge play --email me@example.com --player me
  challenge play --seed 42 --config ./tetris.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player name stored with scores")
	playCmd.Flags().StringVar(&flagEmail, "email", "", "Email stored with a won coupon")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.outwit/challenge.log", "Log file (the game owns the terminal)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound muted")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg := loadConfig()
	if flagMute {
		gameCfg.Audio.Muted = true
	}

	logFile, err := logging.OpenFile(flagLogFile)
	if err != nil {
		exitf("%v", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, "challenge")

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Config: gameCfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Mixer:  audio.NewMixer(audio.NewBellSink(os.Stdout), gameCfg.Audio.Enabled, gameCfg.Audio.Muted, logger),
		Logger: logger,
		Player: flagPlayer,
		Email:  flagEmail,
	}

	// The game still works without a store, on default settings.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open challenge database: %v\n", err)
		logger.Warn("playing without a database", "err", err)
		store = nil
	}

	var reporter *outcome.Reporter
	if store != nil {
		opts.Settings = store
		reporter = outcome.NewReporter(store, logger)
	} else {
		reporter = outcome.NewReporter(nil, logger)
	}
	opts.Reporter = reporter

	runErr := tui.Run(opts)

	// Let queued outcomes finish before the store goes away.
	reporter.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitf("running game: %v", runErr)
	}
}
