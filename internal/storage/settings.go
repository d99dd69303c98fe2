package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/outwit/tetris-challenge/internal/config"
)

// ErrNoSettings is returned when the game_settings row has never been saved.
var ErrNoSettings = errors.New("storage: no game settings")

// FetchTunables reads the single game_settings row.
func (s *Store) FetchTunables(ctx context.Context) (config.Tunables, error) {
	var t config.Tunables
	err := s.db.QueryRowContext(ctx,
		"SELECT drop_speed, points_per_row, win_score FROM game_settings WHERE id = 1",
	).Scan(&t.DropSpeedMs, &t.PointsPerRow, &t.WinScore)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrNoSettings
	}
	if err != nil {
		return t, fmt.Errorf("storage: cannot fetch settings: %w", err)
	}
	return t, nil
}

// SaveTunables validates and stores the game settings, replacing any
// previous row.
func (s *Store) SaveTunables(ctx context.Context, t config.Tunables) error {
	if err := t.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO game_settings (id, drop_speed, points_per_row, win_score, updated_at)
		 VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   drop_speed = excluded.drop_speed,
		   points_per_row = excluded.points_per_row,
		   win_score = excluded.win_score,
		   updated_at = excluded.updated_at`,
		t.DropSpeedMs, t.PointsPerRow, t.WinScore, formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save settings: %w", err)
	}
	return nil
}

// SettingsUpdatedAt returns when the settings row was last written.
func (s *Store) SettingsUpdatedAt(ctx context.Context) (time.Time, error) {
	var updated any
	err := s.db.QueryRowContext(ctx, "SELECT updated_at FROM game_settings WHERE id = 1").Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNoSettings
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("storage: cannot fetch settings: %w", err)
	}
	return scanTime(updated), nil
}
