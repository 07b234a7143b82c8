package hexfall

import "github.com/vovakirdan/hexfall/internal/games/hexfall/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and the simulator.
type Snapshot struct {
	Tick   uint64
	Mode   string
	Score  int
	Moves  int
	Board  string // engine.Board text form, top row first
	Engine engine.State
	Bombs  int
	Reason string
	State  GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:   g.tick,
		Mode:   string(g.mode),
		Score:  g.eng.Score(),
		Moves:  g.eng.Moves(),
		Board:  g.eng.Board().String(),
		Engine: g.eng.State(),
		Bombs:  len(g.eng.Bombs()),
		Reason: g.outcome.Reason.String(),
		State:  state,
	}
}
