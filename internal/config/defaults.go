package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the hardcoded configuration used when even the
// embedded YAML cannot be parsed.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Rows: DefaultRows,
			Cols: DefaultCols,
		},
		Gameplay: DefaultTunables(),
		Audio: AudioConfig{
			Enabled: true,
		},
		UI: UIConfig{
			SoftDropReleaseMs: 500,
			ShowNext:          true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
