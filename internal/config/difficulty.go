package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyZen    DifficultyPreset = "zen" // no bombs
)

// Presets lists the known presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyZen}

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or zen)", s)
}

// Apply returns cfg adjusted for the preset. Normal leaves cfg unchanged.
func (p DifficultyPreset) Apply(cfg HexfallConfig) HexfallConfig {
	switch p {
	case DifficultyEasy:
		cfg.Game.PaletteSize = 4
		cfg.Bombs.Life = 9
	case DifficultyHard:
		cfg.Game.PaletteSize = 6
		cfg.Bombs.Life = 4
		cfg.Bombs.ScoreThreshold = 600
	case DifficultyZen:
		cfg.Bombs.ScoreThreshold = 0
	}
	return cfg
}
