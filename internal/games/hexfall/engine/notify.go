package engine

import "errors"

// Errors returned to the input collaborator.
var (
	ErrNotIdle     = errors.New("engine: board is busy")
	ErrGameOver    = errors.New("engine: game is over")
	ErrNoSelection = errors.New("engine: no swap group selected")
	ErrOutOfBounds = errors.New("engine: coordinate out of bounds")
)

// Reason identifies why a game ended.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonDeadBoard
	ReasonBombExpired
)

// Message returns the text shown to the player for a terminal reason.
func (r Reason) Message() string {
	switch r {
	case ReasonDeadBoard:
		return "THERE IS NO AVAILABLE MATCHES!"
	case ReasonBombExpired:
		return "BOMB EXPLODED!"
	default:
		return ""
	}
}

// String returns a short identifier used for persistence and logs.
func (r Reason) String() string {
	switch r {
	case ReasonDeadBoard:
		return "dead_board"
	case ReasonBombExpired:
		return "bomb_expired"
	default:
		return "none"
	}
}

// Outcome describes a finished game.
type Outcome struct {
	Reason  Reason
	Message string
	Score   int
	Moves   int
}

// Notifier receives the engine's signals for the render and UI collaborators.
type Notifier interface {
	// PiecesCleared is called when matched pieces should play their clear effect.
	// They stay on the board until the clear phase completes.
	PiecesCleared(pieces []*Piece)

	// ScoreChanged is called after a scored batch or a committed move.
	ScoreChanged(score, moves int)

	// RotationFailed is called when a full turn of the group produced no match.
	RotationFailed(g SwapGroup)

	// GameOver is called once when the game reaches a terminal condition.
	GameOver(o Outcome)
}

// NopNotifier ignores every signal.
type NopNotifier struct{}

func (NopNotifier) PiecesCleared([]*Piece) {}
func (NopNotifier) ScoreChanged(int, int) {}
func (NopNotifier) RotationFailed(SwapGroup) {}
func (NopNotifier) GameOver(Outcome) {}

// Recorder keeps every signal it receives.
type Recorder struct {
	Cleared  [][]*Piece
	Scores   [][2]int
	Failed   []SwapGroup
	Outcomes []Outcome
}

func (r *Recorder) PiecesCleared(pieces []*Piece) {
	r.Cleared = append(r.Cleared, pieces)
}

func (r *Recorder) ScoreChanged(score, moves int) {
	r.Scores = append(r.Scores, [2]int{score, moves})
}

func (r *Recorder) RotationFailed(g SwapGroup) {
	r.Failed = append(r.Failed, g)
}

func (r *Recorder) GameOver(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// ClearedCount returns the total number of pieces signalled for clearing.
func (r *Recorder) ClearedCount() int {
	n := 0
	for _, batch := range r.Cleared {
		n += len(batch)
	}
	return n
}
