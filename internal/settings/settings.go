// Package settings resolves the gameplay tunables a session starts with.
// The settings source may be slow, empty or broken; play always goes on
// with defaults in that case.
package settings

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/outwit/tetris-challenge/internal/config"
	"github.com/outwit/tetris-challenge/internal/storage"
)

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 3 * time.Second

// Source supplies stored tunables. *storage.Store implements it.
type Source interface {
	FetchTunables(ctx context.Context) (config.Tunables, error)
}

var _ Source = (*storage.Store)(nil)

// Notice texts shown to the player.
const (
	NoticeDefaults    = "Using default game settings."
	NoticeUnavailable = "Could not load game settings, using defaults."
)

// Result is the outcome of Resolve.
type Result struct {
	Tunables config.Tunables
	// Notice is a non-blocking message for the player, empty when the
	// source delivered complete settings.
	Notice string
	// Err is the fetch error, kept for logging.
	Err error
	// FromSource is set when at least one value came from the source.
	FromSource bool
}

// Resolve fetches tunables from src and fills anything missing or out of
// range from fallback. It never fails: fetch errors become a notice.
// A nil src resolves to fallback without a notice.
func Resolve(ctx context.Context, src Source, fallback config.Tunables, logger *log.Logger) Result {
	if logger == nil {
		logger = log.Default()
	}
	fallback = fallback.WithDefaults(config.DefaultTunables())
	if src == nil {
		return Result{Tunables: fallback}
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	fetched, err := src.FetchTunables(ctx)
	switch {
	case errors.Is(err, storage.ErrNoSettings):
		logger.Info("no stored game settings, using defaults")
		return Result{Tunables: fallback, Notice: NoticeDefaults}
	case err != nil:
		logger.Warn("cannot fetch game settings", "err", err)
		return Result{Tunables: fallback, Notice: NoticeUnavailable, Err: err}
	}

	resolved := fetched.WithDefaults(fallback)
	res := Result{Tunables: resolved, FromSource: true}
	if resolved != fetched {
		logger.Info("stored game settings incomplete, filled from defaults",
			"stored", fetched, "resolved", resolved)
		res.Notice = NoticeDefaults
	}
	logger.Debug("game settings resolved",
		"drop_speed_ms", resolved.DropSpeedMs,
		"points_per_row", resolved.PointsPerRow,
		"win_score", resolved.WinScore)
	return res
}
