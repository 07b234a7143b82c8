package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexfall/internal/config"
	"github.com/vovakirdan/hexfall/internal/core"
	"github.com/vovakirdan/hexfall/internal/registry"
	"github.com/vovakirdan/hexfall/internal/storage"
)

// stubGame ends after overAfter steps when overAfter is positive.
type stubGame struct {
	steps     int
	overAfter int
	paused    bool
	resets    int
	high      int
	preset    string
}

func (g *stubGame) ID() string    { return "a_stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.paused = false
	g.resets++
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if !g.paused {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub board")
}

func (g *stubGame) State() core.GameState {
	over := g.overAfter > 0 && g.steps >= g.overAfter
	s := core.GameState{Score: g.steps * 10, Moves: g.steps, GameOver: over, Paused: g.paused}
	if over {
		s.EndReason = "dead_board"
	}
	return s
}

func (g *stubGame) SetHighScore(score int) { g.high = score }

func (g *stubGame) SetDifficulty(name string) error {
	g.preset = name
	return nil
}

func init() {
	registry.Register("a_stub", func() registry.Game { return &stubGame{} })
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func send(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestModelSavesResultOnce(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("a_stub", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	game := &stubGame{overAfter: 2}
	m := NewModel(game, store, testConfig())
	m.Init()

	if game.high != 500 {
		t.Errorf("high score = %d, expected 500", game.high)
	}

	var next tea.Model = m
	for range 5 {
		next, _ = next.Update(TickMsg{})
	}

	results, err := store.RecentResults("a_stub", 10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("saved %d results, expected 1", len(results))
	}
	if results[0].Score != 20 || results[0].Moves != 2 || results[0].EndReason != "dead_board" || results[0].Seed != 1 {
		t.Errorf("result = %+v", results[0])
	}
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	game := &stubGame{overAfter: 3}
	var next tea.Model = NewModel(game, nil, testConfig())
	next.Init()

	next, _ = next.Update(runeKey('r'))
	next, _ = next.Update(TickMsg{})
	if game.resets != 1 {
		t.Fatalf("restart during play reset the game (%d resets)", game.resets)
	}

	for range 3 {
		next, _ = next.Update(TickMsg{})
	}
	next, _ = next.Update(runeKey('r'))
	next.Update(TickMsg{})
	if game.resets != 2 {
		t.Errorf("resets = %d, expected 2 after restart", game.resets)
	}
}

func TestModelViewHasHelpBar(t *testing.T) {
	m := NewModel(&stubGame{}, nil, testConfig())
	m.Init()

	out := m.View()
	if !strings.Contains(out, "stub board") {
		t.Error("view should contain the game")
	}
	if !strings.Contains(out, "rotate") {
		t.Error("view should contain the key help")
	}
}

func TestSessionPlayAndBack(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "tester", log.New(io.Discard))

	// a_stub sorts first in the menu
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %v, expected game", m.screen)
	}
	game, ok := m.gameModel.game.(*stubGame)
	if !ok {
		t.Fatalf("game = %T", m.gameModel.game)
	}
	if game.preset != string(config.DifficultyHard) {
		t.Errorf("preset = %q, expected hard", game.preset)
	}

	// Back is ignored while playing
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenGame {
		t.Fatal("esc left a running game")
	}

	m, _ = send(t, m, runeKey('p'))
	m, _ = send(t, m, TickMsg{})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, expected menu", m.screen)
	}
	if m.menu.Preset() != config.DifficultyHard {
		t.Errorf("menu forgot the preset: %v", m.menu.Preset())
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := NewSessionModel(openStore(t), testConfig(), "tester", log.New(io.Discard))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %v, expected scores", m.screen)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view missing title")
	}

	m, _ = send(t, m, runeKey('v'))
	if !strings.Contains(m.View(), "RECENT GAMES") {
		t.Error("toggle should show recent games")
	}

	m, _ = send(t, m, runeKey('b'))
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, expected menu", m.screen)
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "tester", log.New(io.Discard))

	m, cmd := send(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if m.View() != "" {
		t.Error("quitting session should render nothing")
	}
}
