package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexfall/internal/games/hexfall/engine"
)

func TestSimulateIsDeterministic(t *testing.T) {
	cfg := engine.DefaultConfig()
	logger := log.New(io.Discard)

	a, err := simulate(cfg, 42, 30, logger)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	b, err := simulate(cfg, 42, 30, logger)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	if a != b {
		t.Errorf("same seed diverged: %+v vs %+v", a, b)
	}
	if a.Moves > 30 {
		t.Errorf("moves = %d, expected at most 30", a.Moves)
	}
	if a.Moves > 0 && a.Cleared < 3 {
		t.Errorf("%d moves cleared only %d pieces", a.Moves, a.Cleared)
	}
	// initial fill cascades clear pieces without scoring
	if a.Score%cfg.PointsPerCell != 0 || a.Score > a.Cleared*cfg.PointsPerCell {
		t.Errorf("score %d inconsistent with %d cleared pieces", a.Score, a.Cleared)
	}
}

func TestSimulateRejectsBadConfig(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Palette = 1

	if _, err := simulate(cfg, 1, 10, log.New(io.Discard)); err == nil {
		t.Error("expected an error for a one-color palette")
	}
}
