package config

import (
	_ "embed"

	"github.com/vovakirdan/hexfall/internal/games/hexfall/engine"
)

//go:embed defaults/hexfall.yaml
var defaultHexfallYAML []byte

// DefaultHexfallConfig returns the standard 8x9 board configuration.
func DefaultHexfallConfig() HexfallConfig {
	return HexfallConfig{
		Grid: GridConfig{
			Width:  8,
			Height: 9,
			Gap:    0.1,
		},
		Hexagon: HexagonConfig{
			Width:  0.7,
			Height: 0.7,
		},
		Game: GameConfig{
			PaletteSize:      5,
			ScorePerHexagon:  5,
			SwipeSensitivity: 2,
			Scanner:          string(engine.ScannerExhaustive),
		},
		Bombs: BombConfig{
			ScoreThreshold: 1000,
			Life:           6,
		},
		Timing: TimingConfig{
			RotateMs: 150,
			ClearMs:  250,
			DropMs:   300,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultHexfallYAML
}
