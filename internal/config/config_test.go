package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/hexfall/internal/games/hexfall/engine"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hexfall.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(GetDefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultHexfallConfig()) {
		t.Errorf("embedded defaults differ from DefaultHexfallConfig():\n%+v\n%+v", cfg, DefaultHexfallConfig())
	}
}

func TestLoadHexfallCustomPathOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, "grid:\n  width: 6\nbombs:\n  score_threshold: 0\n")

	cfg, err := LoadHexfall(path)
	if err != nil {
		t.Fatalf("LoadHexfall() failed: %v", err)
	}
	if cfg.Grid.Width != 6 {
		t.Errorf("Grid.Width = %d, expected 6", cfg.Grid.Width)
	}
	if cfg.Grid.Height != 9 {
		t.Errorf("Grid.Height = %d, expected default 9", cfg.Grid.Height)
	}
	if cfg.Bombs.ScoreThreshold != 0 {
		t.Errorf("Bombs.ScoreThreshold = %d, expected 0", cfg.Bombs.ScoreThreshold)
	}
	if cfg.Game.PaletteSize != 5 {
		t.Errorf("Game.PaletteSize = %d, expected default 5", cfg.Game.PaletteSize)
	}
}

func TestLoadHexfallErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
			want: "failed to read config",
		},
		{
			name: "bad yaml",
			path: func(t *testing.T) string { return writeConfig(t, "grid: [1, 2\n") },
			want: "failed to parse config",
		},
		{
			name: "invalid values",
			path: func(t *testing.T) string { return writeConfig(t, "game:\n  palette_size: 12\n") },
			want: "palette_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadHexfall(tt.path(t))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*HexfallConfig)
		ok     bool
	}{
		{"defaults", func(*HexfallConfig) {}, true},
		{"smallest board", func(c *HexfallConfig) { c.Grid.Width, c.Grid.Height = 2, 2 }, true},
		{"too narrow", func(c *HexfallConfig) { c.Grid.Width = 1 }, false},
		{"too tall", func(c *HexfallConfig) { c.Grid.Height = 16 }, false},
		{"one color", func(c *HexfallConfig) { c.Game.PaletteSize = 1 }, false},
		{"nine colors", func(c *HexfallConfig) { c.Game.PaletteSize = 9 }, false},
		{"no swipe", func(c *HexfallConfig) { c.Game.SwipeSensitivity = 0 }, false},
		{"unknown scanner", func(c *HexfallConfig) { c.Game.Scanner = "raycast" }, false},
		{"heuristic scanner", func(c *HexfallConfig) { c.Game.Scanner = "heuristic" }, true},
		{"dead bombs", func(c *HexfallConfig) { c.Bombs.Life = 0 }, false},
		{"no bombs ignores life", func(c *HexfallConfig) { c.Bombs.ScoreThreshold, c.Bombs.Life = 0, 0 }, true},
		{"negative timing", func(c *HexfallConfig) { c.Timing.DropMs = -1 }, false},
		{"flat hexagon", func(c *HexfallConfig) { c.Hexagon.Height = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultHexfallConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tt.ok && err == nil {
				t.Error("Validate() = nil, expected an error")
			}
		})
	}
}

func TestEngineConfig(t *testing.T) {
	ec := DefaultHexfallConfig().EngineConfig()

	if ec.Width != 8 || ec.Height != 9 {
		t.Errorf("size = %dx%d, expected 8x9", ec.Width, ec.Height)
	}
	if ec.Palette != 5 || ec.PointsPerCell != 5 {
		t.Errorf("palette/points = %d/%d, expected 5/5", ec.Palette, ec.PointsPerCell)
	}
	if ec.DropDelay != 300*time.Millisecond {
		t.Errorf("DropDelay = %v, expected 300ms", ec.DropDelay)
	}
	if ec.Scanner != engine.ScannerExhaustive {
		t.Errorf("Scanner = %q", ec.Scanner)
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("converted defaults fail engine validation: %v", err)
	}
}

func TestPresets(t *testing.T) {
	base := DefaultHexfallConfig()

	easy := DifficultyEasy.Apply(base)
	if easy.Game.PaletteSize != 4 || easy.Bombs.Life != 9 {
		t.Errorf("easy = %+v", easy)
	}

	hard := DifficultyHard.Apply(base)
	if hard.Game.PaletteSize != 6 || hard.Bombs.Life != 4 || hard.Bombs.ScoreThreshold != 600 {
		t.Errorf("hard = %+v", hard)
	}

	zen := DifficultyZen.Apply(base)
	if zen.Bombs.ScoreThreshold != 0 {
		t.Errorf("zen still spawns bombs: %+v", zen.Bombs)
	}

	if !reflect.DeepEqual(DifficultyNormal.Apply(base), base) {
		t.Error("normal should leave the config unchanged")
	}

	for _, p := range Presets {
		if err := p.Apply(base).Validate(); err != nil {
			t.Errorf("preset %s is invalid: %v", p, err)
		}
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if p, err := ParsePreset("zen"); err != nil || p != DifficultyZen {
		t.Errorf("ParsePreset(zen) = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected an error for unknown preset")
	}
}
