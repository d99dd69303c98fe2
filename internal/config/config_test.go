package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTunablesValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      Tunables
		wantErr string
	}{
		{"defaults", DefaultTunables(), ""},
		{"minimums", Tunables{DropSpeedMs: 100, PointsPerRow: 10, WinScore: 100}, ""},
		{"slow drop", Tunables{DropSpeedMs: 99, PointsPerRow: 10, WinScore: 100}, "Drop speed must be at least 100ms."},
		{"few points", Tunables{DropSpeedMs: 100, PointsPerRow: 9, WinScore: 100}, "Points per row must be at least 10."},
		{"low win", Tunables{DropSpeedMs: 100, PointsPerRow: 10, WinScore: 0}, "Win score must be at least 100."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidTunables) {
				t.Fatalf("Validate() = %v, expected ErrInvalidTunables", err)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %q, expected to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestTunablesWithDefaults(t *testing.T) {
	got := Tunables{DropSpeedMs: 0, PointsPerRow: 250, WinScore: 50}.WithDefaults(DefaultTunables())
	expected := Tunables{DropSpeedMs: 1000, PointsPerRow: 250, WinScore: 1000}
	if got != expected {
		t.Errorf("WithDefaults() = %+v, expected %+v", got, expected)
	}
}

func TestSpeedCurve(t *testing.T) {
	curve := NewSpeedCurve(1000 * time.Millisecond)

	levels := []struct {
		lines, level int
	}{
		{0, 1}, {9, 1}, {10, 2}, {25, 3}, {-3, 1},
	}
	for _, tc := range levels {
		if got := curve.Level(tc.lines); got != tc.level {
			t.Errorf("Level(%d) = %d, expected %d", tc.lines, got, tc.level)
		}
	}

	intervals := []struct {
		level    int
		expected time.Duration
	}{
		{1, 1000 * time.Millisecond},
		{2, 925 * time.Millisecond},
		{5, 700 * time.Millisecond},
		{13, 100 * time.Millisecond},
		{40, 100 * time.Millisecond},
		{0, 1000 * time.Millisecond},
	}
	for _, tc := range intervals {
		if got := curve.Interval(tc.level); got != tc.expected {
			t.Errorf("Interval(%d) = %v, expected %v", tc.level, got, tc.expected)
		}
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("parse(embedded) error: %v", err)
	}
	if cfg != DefaultTetrisConfig() {
		t.Errorf("embedded config = %+v, expected %+v", cfg, DefaultTetrisConfig())
	}
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	data := "gameplay:\n  win_score: 5000\nboard:\n  rows: 24\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris() error: %v", err)
	}
	if cfg.Gameplay.WinScore != 5000 {
		t.Errorf("WinScore = %d, expected 5000", cfg.Gameplay.WinScore)
	}
	if cfg.Board.Rows != 24 || cfg.Board.Cols != DefaultCols {
		t.Errorf("Board = %+v, expected 24x%d", cfg.Board, DefaultCols)
	}
	if cfg.Gameplay.DropSpeedMs != DefaultDropSpeedMs {
		t.Errorf("DropSpeedMs = %d, expected default", cfg.Gameplay.DropSpeedMs)
	}
}

func TestLoadTetrisErrors(t *testing.T) {
	if _, err := LoadTetris(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadTetris() with missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("gameplay:\n  drop_speed_ms: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadTetris(path)
	if !errors.Is(err, ErrInvalidTunables) {
		t.Errorf("LoadTetris() error = %v, expected ErrInvalidTunables", err)
	}
	if cfg != DefaultTetrisConfig() {
		t.Error("LoadTetris() should return defaults alongside an error")
	}
}

func TestDefaultSoftDropReleaseOutlastsKeyRepeatDelay(t *testing.T) {
	// Terminals wait up to about half a second before the first repeat.
	if got := DefaultTetrisConfig().UI.SoftDropRelease(); got < 500*time.Millisecond {
		t.Errorf("SoftDropRelease() = %v, expected at least 500ms", got)
	}
}
