// Package config provides YAML-based configuration loading and difficulty
// presets for hexfall.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/hexfall/internal/games/hexfall/engine"
)

// HexfallConfig contains all configuration for a hexfall game.
type HexfallConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Hexagon HexagonConfig `yaml:"hexagon"`
	Game    GameConfig    `yaml:"game"`
	Bombs   BombConfig    `yaml:"bombs"`
	Timing  TimingConfig  `yaml:"timing"`
}

// GridConfig defines the board size in cells.
type GridConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Gap    float64 `yaml:"gap"` // spacing between hexagons in world units
}

// HexagonConfig defines the world size of one hexagon.
type HexagonConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// GameConfig defines scoring and input parameters.
type GameConfig struct {
	PaletteSize      int    `yaml:"palette_size"`
	ScorePerHexagon  int    `yaml:"score_per_hexagon"`
	SwipeSensitivity int    `yaml:"swipe_sensitivity"` // drag length in terminal cells
	Scanner          string `yaml:"scanner"`           // "exhaustive" or "heuristic"
}

// BombConfig defines when bombs appear and how long they last.
type BombConfig struct {
	ScoreThreshold int `yaml:"score_threshold"` // 0 disables bombs
	Life           int `yaml:"life"`
}

// TimingConfig defines the animation phase lengths in milliseconds.
type TimingConfig struct {
	RotateMs int `yaml:"rotate_ms"`
	ClearMs  int `yaml:"clear_ms"`
	DropMs   int `yaml:"drop_ms"`
}

// Validate reports the first value hexfall cannot start with.
func (c HexfallConfig) Validate() error {
	if c.Grid.Width < 2 || c.Grid.Width > 15 {
		return fmt.Errorf("config: grid.width %d outside 2..15", c.Grid.Width)
	}
	if c.Grid.Height < 2 || c.Grid.Height > 15 {
		return fmt.Errorf("config: grid.height %d outside 2..15", c.Grid.Height)
	}
	if c.Grid.Gap < 0 {
		return fmt.Errorf("config: negative grid.gap %v", c.Grid.Gap)
	}
	if c.Hexagon.Width <= 0 || c.Hexagon.Height <= 0 {
		return fmt.Errorf("config: hexagon size must be positive")
	}
	if c.Game.PaletteSize < 2 || c.Game.PaletteSize > engine.MaxPalette {
		return fmt.Errorf("config: game.palette_size %d outside 2..%d", c.Game.PaletteSize, engine.MaxPalette)
	}
	if c.Game.ScorePerHexagon < 0 {
		return fmt.Errorf("config: negative game.score_per_hexagon %d", c.Game.ScorePerHexagon)
	}
	if c.Game.SwipeSensitivity < 1 {
		return fmt.Errorf("config: game.swipe_sensitivity must be at least 1")
	}
	switch engine.ScannerMode(c.Game.Scanner) {
	case "", engine.ScannerExhaustive, engine.ScannerHeuristic:
	default:
		return fmt.Errorf("config: unknown game.scanner %q", c.Game.Scanner)
	}
	if c.Bombs.ScoreThreshold < 0 {
		return fmt.Errorf("config: negative bombs.score_threshold %d", c.Bombs.ScoreThreshold)
	}
	if c.Bombs.ScoreThreshold > 0 && c.Bombs.Life < 1 {
		return fmt.Errorf("config: bombs.life must be at least 1, got %d", c.Bombs.Life)
	}
	if c.Timing.RotateMs < 0 || c.Timing.ClearMs < 0 || c.Timing.DropMs < 0 {
		return fmt.Errorf("config: negative timing")
	}
	return nil
}

// EngineConfig converts the file representation into engine parameters.
func (c HexfallConfig) EngineConfig() engine.Config {
	return engine.Config{
		Width:         c.Grid.Width,
		Height:        c.Grid.Height,
		HexWidth:      c.Hexagon.Width,
		HexHeight:     c.Hexagon.Height,
		Gap:           c.Grid.Gap,
		Palette:       c.Game.PaletteSize,
		PointsPerCell: c.Game.ScorePerHexagon,
		BombThreshold: c.Bombs.ScoreThreshold,
		BombLife:      c.Bombs.Life,
		RotateDelay:   time.Duration(c.Timing.RotateMs) * time.Millisecond,
		ClearDelay:    time.Duration(c.Timing.ClearMs) * time.Millisecond,
		DropDelay:     time.Duration(c.Timing.DropMs) * time.Millisecond,
		Scanner:       engine.ScannerMode(c.Game.Scanner),
	}
}
