package hexfall

import (
	"strings"
	"testing"

	"github.com/vovakirdan/hexfall/internal/config"
	"github.com/vovakirdan/hexfall/internal/core"
	"github.com/vovakirdan/hexfall/internal/games/hexfall/engine"
	"github.com/vovakirdan/hexfall/internal/registry"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 30, Seed: seed})
	return g
}

// settle steps with no input until the engine has no pending wait.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for range 5000 {
		if _, ok := g.Engine().Pending(); !ok {
			return
		}
		g.Step(core.NewInputFrame())
	}
	t.Fatal("engine never settled")
}

// playableGame returns a settled game that still has a move.
func playableGame(t *testing.T) (*Game, engine.Move) {
	t.Helper()
	for seed := int64(1); seed < 50; seed++ {
		g := newTestGame(t, seed)
		settle(t, g)
		if g.State().GameOver {
			continue
		}
		if m, ok := engine.FindMove(g.Engine().Board()); ok {
			return g, m
		}
	}
	t.Fatal("no playable seed found")
	return nil, engine.Move{}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"hexfall", "hexfall_zen"} {
		if !registry.Exists(id) {
			t.Fatalf("%s not registered", id)
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %s, expected %s", g.ID(), id)
		}
		if _, ok := g.(registry.HighScoreAware); !ok {
			t.Errorf("%s should accept a persisted high score", id)
		}
		if _, ok := g.(registry.Resizable); !ok {
			t.Errorf("%s should survive a resize", id)
		}
		if _, ok := g.(registry.Tunable); !ok {
			t.Errorf("%s should take a difficulty", id)
		}
	}
}

func TestInitialFillSettles(t *testing.T) {
	g := newTestGame(t, 7)
	if _, ok := g.Engine().Pending(); !ok {
		t.Fatal("expected the initial drop to be pending after Reset")
	}

	settle(t, g)

	if !g.State().GameOver && g.Engine().State() != engine.StateIdle {
		t.Errorf("engine state = %v, expected Idle", g.Engine().State())
	}
	if !g.Engine().Board().Full() {
		t.Error("board should be full after the initial fill")
	}
	if g.State().Score != 0 {
		t.Errorf("initial cascades scored %d", g.State().Score)
	}
	for _, p := range g.Engine().Board().Pieces() {
		if g.visual[p.ID] != p.Target {
			t.Fatalf("piece %d rests at %v, expected %v", p.ID, g.visual[p.ID], p.Target)
		}
	}
}

func TestDeterminism(t *testing.T) {
	a := newTestGame(t, 12345)
	b := newTestGame(t, 12345)

	for range 200 {
		a.Step(core.NewInputFrame())
		b.Step(core.NewInputFrame())
	}

	if a.Snapshot() != b.Snapshot() {
		t.Errorf("same seed diverged:\n%+v\n%+v", a.Snapshot(), b.Snapshot())
	}
}

func TestKeyboardRotationCommitsMove(t *testing.T) {
	g, m := playableGame(t)

	g.cursor = m.Group.Anchor
	g.side = m.Group.Side

	in := core.NewInputFrame()
	if m.Rotation == engine.Clockwise {
		in.Set(core.ActionRotateCW)
	} else {
		in.Set(core.ActionRotateCCW)
	}
	g.Step(in)

	if g.Engine().State() != engine.StateRotating {
		t.Fatalf("state = %v, expected Rotating", g.Engine().State())
	}

	settle(t, g)

	if g.State().Moves != 1 {
		t.Errorf("Moves = %d, expected 1", g.State().Moves)
	}
	if g.State().Score < 15 {
		t.Errorf("Score = %d, expected at least one scored triad", g.State().Score)
	}
}

func TestCursorMovement(t *testing.T) {
	g := newTestGame(t, 1)
	settle(t, g)
	g.cursor = engine.C(0, 0)

	steps := []struct {
		action core.Action
		want   engine.Coord
	}{
		{core.ActionLeft, engine.C(0, 0)},
		{core.ActionDown, engine.C(0, 0)},
		{core.ActionUp, engine.C(0, 1)},
		{core.ActionRight, engine.C(1, 1)},
	}
	for _, s := range steps {
		in := core.NewInputFrame()
		in.Set(s.action)
		g.Step(in)
		if g.cursor != s.want {
			t.Fatalf("after %v cursor = %v, expected %v", s.action, g.cursor, s.want)
		}
	}

	in := core.NewInputFrame()
	in.Set(core.ActionSide)
	before := g.side
	g.Step(in)
	if g.side != before.Next() {
		t.Errorf("side = %v, expected %v", g.side, before.Next())
	}
}

func TestSwipeFor(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
		want   engine.Swipe
		ok     bool
	}{
		{"too short", 1, 1, 0, false},
		{"right", 3, 1, engine.SwipeRight, true},
		{"left", -2, 0, engine.SwipeLeft, true},
		{"down", 1, 4, engine.SwipeDown, true},
		{"up", 0, -2, engine.SwipeUp, true},
		{"diagonal prefers horizontal", 3, -3, engine.SwipeRight, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := swipeFor(tt.dx, tt.dy, 2)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("swipeFor(%d, %d) = %v, %v; expected %v, %v", tt.dx, tt.dy, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHitTestFindsEveryCell(t *testing.T) {
	g := newTestGame(t, 1)

	for col := range g.cfg.Grid.Width {
		for row := range g.cfg.Grid.Height {
			c := engine.C(col, row)
			x, y := g.cellScreen(c)

			cases := []struct {
				x, y int
				side engine.Side
			}{
				{x, y, engine.SideLeftTop},
				{x + 1, y, engine.SideRightTop},
				{x, y + 1, engine.SideLeftBottom},
				{x + 2, y + 1, engine.SideRightBottom},
			}
			for _, tc := range cases {
				got, side, ok := g.hitTest(tc.x, tc.y)
				if !ok || got != c || side != tc.side {
					t.Fatalf("hitTest(%d, %d) = %v %v %v, expected %v %v", tc.x, tc.y, got, side, ok, c, tc.side)
				}
			}
		}
	}

	if _, _, ok := g.hitTest(0, 0); ok {
		t.Error("HUD position should not hit the board")
	}
}

func TestMouseSwipeRotates(t *testing.T) {
	g, m := playableGame(t)
	x, y := g.cellScreen(m.Group.Anchor)

	// a click without a drag only moves the cursor
	in := core.NewInputFrame()
	in.AddMouse(core.MouseEvent{X: x, Y: y, Kind: core.MousePress})
	in.AddMouse(core.MouseEvent{X: x + 1, Y: y, Kind: core.MouseRelease})
	g.Step(in)

	if g.cursor != m.Group.Anchor {
		t.Errorf("cursor = %v, expected %v", g.cursor, m.Group.Anchor)
	}
	if g.Engine().State() != engine.StateIdle {
		t.Fatalf("short drag rotated: state %v", g.Engine().State())
	}

	in = core.NewInputFrame()
	in.AddMouse(core.MouseEvent{X: x, Y: y, Kind: core.MousePress})
	in.AddMouse(core.MouseEvent{X: x + 4, Y: y, Kind: core.MouseRelease})
	g.Step(in)

	if g.Engine().State() != engine.StateRotating {
		t.Errorf("swipe did not rotate: state %v", g.Engine().State())
	}
}

func TestRenderHUD(t *testing.T) {
	g := New()
	g.SetHighScore(4200)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 30, Seed: 3})
	settle(t, g)

	screen := core.NewScreen(80, 30)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Hexfall", "Score: 0", "Moves: 0", "Best: 4200"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestGameOverOverlay(t *testing.T) {
	g := newTestGame(t, 3)
	settle(t, g)

	g.GameOver(engine.Outcome{Reason: engine.ReasonBombExpired, Message: engine.ReasonBombExpired.Message(), Score: 40, Moves: 6})

	st := g.State()
	if !st.GameOver || st.EndReason != "bomb_expired" {
		t.Errorf("State() = %+v", st)
	}

	screen := core.NewScreen(80, 30)
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"BOMB EXPLODED!", "Score: 40  Moves: 6", "Press R to restart"} {
		if !strings.Contains(out, want) {
			t.Errorf("overlay missing %q", want)
		}
	}
}

func TestPauseFreezesAnimation(t *testing.T) {
	g := newTestGame(t, 9)

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	g.Step(in)
	if !g.State().Paused {
		t.Fatal("expected paused")
	}

	before := g.Snapshot()
	for range 50 {
		g.Step(core.NewInputFrame())
	}
	after := g.Snapshot()
	if before.Board != after.Board || before.Engine != after.Engine {
		t.Error("board changed while paused")
	}

	g.Step(in)
	if g.State().Paused {
		t.Error("expected unpaused")
	}
}

func TestTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 30, Seed: 1})

	if !g.State().Paused {
		t.Error("small window should pause the game")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small message")
	}
}

func TestResizeKeepsGame(t *testing.T) {
	g := newTestGame(t, 5)
	settle(t, g)
	board := g.Snapshot().Board

	g.Resize(20, 10)
	if !g.State().Paused {
		t.Error("shrinking below the board should pause")
	}

	g.Resize(100, 40)
	if g.State().Paused {
		t.Error("growing back should resume")
	}
	if g.Snapshot().Board != board {
		t.Error("resize changed the board")
	}
}

func TestModesAndPresets(t *testing.T) {
	zen := NewZen()
	zen.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 30, Seed: 1})
	if zen.cfg.Bombs.ScoreThreshold != 0 {
		t.Errorf("zen bomb threshold = %d, expected 0", zen.cfg.Bombs.ScoreThreshold)
	}

	SetDifficultyPreset(config.DifficultyHard)
	t.Cleanup(func() { SetDifficultyPreset(config.DifficultyNormal) })

	hard := newTestGame(t, 1)
	if hard.cfg.Game.PaletteSize != 6 || hard.cfg.Bombs.Life != 4 {
		t.Errorf("hard preset not applied: %+v", hard.cfg)
	}

	// an instance preset wins over the package default
	easy := New()
	if err := easy.SetDifficulty("easy"); err != nil {
		t.Fatalf("SetDifficulty() failed: %v", err)
	}
	easy.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 30, Seed: 1})
	if easy.cfg.Game.PaletteSize != 4 {
		t.Errorf("easy palette = %d, expected 4", easy.cfg.Game.PaletteSize)
	}
	if err := easy.SetDifficulty("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
}
