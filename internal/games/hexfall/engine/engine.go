package engine

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Config holds the startup parameters of a game.
type Config struct {
	Width  int
	Height int

	HexWidth  float64
	HexHeight float64
	Gap       float64

	Palette       int // number of colors drawn from, 2..MaxPalette
	PointsPerCell int
	BombThreshold int // score since the last bomb that spawns a new one; 0 disables bombs
	BombLife      int // moves a new bomb survives

	RotateDelay time.Duration
	ClearDelay  time.Duration
	DropDelay   time.Duration

	Scanner ScannerMode
}

// DefaultConfig returns the standard 8x9 board.
func DefaultConfig() Config {
	return Config{
		Width:         8,
		Height:        9,
		HexWidth:      0.7,
		HexHeight:     0.7,
		Gap:           0.1,
		Palette:       5,
		PointsPerCell: 5,
		BombThreshold: 1000,
		BombLife:      6,
		RotateDelay:   150 * time.Millisecond,
		ClearDelay:    250 * time.Millisecond,
		DropDelay:     300 * time.Millisecond,
		Scanner:       ScannerExhaustive,
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c Config) Validate() error {
	if c.Width < 2 || c.Height < 2 {
		return fmt.Errorf("engine: board must be at least 2x2, got %dx%d", c.Width, c.Height)
	}
	if c.Palette < 2 || c.Palette > MaxPalette {
		return fmt.Errorf("engine: palette size %d outside 2..%d", c.Palette, MaxPalette)
	}
	if c.PointsPerCell < 0 {
		return fmt.Errorf("engine: negative points per cell %d", c.PointsPerCell)
	}
	if c.BombThreshold < 0 {
		return fmt.Errorf("engine: negative bomb threshold %d", c.BombThreshold)
	}
	if c.BombThreshold > 0 && c.BombLife < 1 {
		return fmt.Errorf("engine: bomb life must be at least 1, got %d", c.BombLife)
	}
	if c.RotateDelay < 0 || c.ClearDelay < 0 || c.DropDelay < 0 {
		return fmt.Errorf("engine: negative phase delay")
	}
	switch c.Scanner {
	case "", ScannerExhaustive, ScannerHeuristic:
	default:
		return fmt.Errorf("engine: unknown scanner %q", c.Scanner)
	}
	return nil
}

// State is the engine's game state. Input is accepted only in StateIdle.
type State uint8

const (
	StateFilling State = iota
	StateChecking
	StateExploding
	StateRotating
	StateIdle
)

// String returns the string representation of a state.
func (s State) String() string {
	switch s {
	case StateFilling:
		return "Filling"
	case StateChecking:
		return "Checking"
	case StateExploding:
		return "Exploding"
	case StateRotating:
		return "Rotating"
	case StateIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// Phase names an animation the engine waits on.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseRotate
	PhaseClear
	PhaseDrop
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseRotate:
		return "rotate"
	case PhaseClear:
		return "clear"
	case PhaseDrop:
		return "drop"
	default:
		return "none"
	}
}

// Wait is a pending phase barrier. The driver plays the animation for
// roughly Duration and then calls Engine.Advance.
type Wait struct {
	Phase    Phase
	Duration time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier sets the receiver of engine signals.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notify = n }
}

// WithSeed seeds the spawn RNG.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand sets the spawn RNG.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithBoard starts from a prepared board instead of an empty one.
// Empty cells are refilled; existing matches resolve unscored.
func WithBoard(b *Board) Option {
	return func(e *Engine) { e.board = b }
}

// WithHighScore sets the persisted high score to compare against.
func WithHighScore(score int) Option {
	return func(e *Engine) { e.highScore = score }
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine owns the board and runs the cascade and rotation state machine.
// It is not safe for concurrent use; the driver serializes all calls.
type Engine struct {
	cfg    Config
	board  *Board
	layout Layout
	rng    *rand.Rand
	notify Notifier
	logger *log.Logger

	state   State
	wait    Wait
	started bool // set by the first committed move
	over    bool
	outcome Outcome

	score     int
	moves     int
	highScore int
	bombScore int
	bombs     []*Piece
	nextID    int

	selected bool
	group    SwapGroup
	rotation Rotation
	steps    int
	clearing []Coord
}

// New creates an engine and starts the initial fill.
// The first wait is pending on return; use Settle for headless play.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if cfg.Scanner == "" {
		cfg.Scanner = ScannerExhaustive
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		notify: NopNotifier{},
		nextID: 1,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.board == nil {
		e.board = NewBoard(cfg.Width, cfg.Height)
	} else if e.board.Width() != cfg.Width || e.board.Height() != cfg.Height {
		return nil, fmt.Errorf("engine: board is %dx%d, config wants %dx%d",
			e.board.Width(), e.board.Height(), cfg.Width, cfg.Height)
	}

	e.layout = NewLayout(cfg.HexWidth, cfg.HexHeight, cfg.Gap, cfg.Width, cfg.Height)
	for _, p := range e.board.Pieces() {
		p.Target = e.layout.Position(p.Coord())
		p.Spawn = p.Target
		if p.ID >= e.nextID {
			e.nextID = p.ID + 1
		}
		if p.IsBomb() {
			e.bombs = append(e.bombs, p)
		}
	}

	e.logger.Debug("new game", "width", cfg.Width, "height", cfg.Height,
		"palette", cfg.Palette, "scanner", cfg.Scanner)
	e.fill()
	return e, nil
}

// Board returns the live board. Callers must not mutate it.
func (e *Engine) Board() *Board { return e.board }

// Layout returns the world layout of the board.
func (e *Engine) Layout() Layout { return e.layout }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// State returns the current game state.
func (e *Engine) State() State { return e.state }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Moves returns the number of committed moves.
func (e *Engine) Moves() int { return e.moves }

// HighScore returns the best of the persisted high score and the current score.
func (e *Engine) HighScore() int {
	if e.score > e.highScore {
		return e.score
	}
	return e.highScore
}

// Bombs returns the active bombs.
func (e *Engine) Bombs() []*Piece {
	out := make([]*Piece, len(e.bombs))
	copy(out, e.bombs)
	return out
}

// Over reports whether the game has ended.
func (e *Engine) Over() bool { return e.over }

// Outcome returns how the game ended. Valid once Over is true.
func (e *Engine) Outcome() Outcome { return e.outcome }

// Pending returns the phase the engine is waiting on, if any.
func (e *Engine) Pending() (Wait, bool) {
	return e.wait, e.wait.Phase != PhaseNone
}

// Selection returns the selected swap group, if any.
func (e *Engine) Selection() (SwapGroup, bool) {
	return e.group, e.selected
}

// Advance completes the pending phase and runs the state machine up to
// the next wait. It returns false if nothing was pending.
func (e *Engine) Advance() bool {
	w := e.wait
	if w.Phase == PhaseNone {
		return false
	}
	e.wait = Wait{}

	switch w.Phase {
	case PhaseRotate:
		e.afterRotateStep()
	case PhaseClear:
		e.removeCleared()
		e.fill()
	case PhaseDrop:
		e.check()
	}
	return true
}

// Settle advances until no phase is pending. Returns the number of phases completed.
func (e *Engine) Settle() int {
	n := 0
	for e.Advance() {
		n++
	}
	return n
}

// Select picks the swap group for an anchor cell and touched side.
// Sides that would leave the board are redirected.
func (e *Engine) Select(anchor Coord, side Side) (SwapGroup, error) {
	if err := e.acceptInput(); err != nil {
		return SwapGroup{}, err
	}
	g, err := GroupAt(e.board, anchor, side)
	if err != nil {
		return SwapGroup{}, err
	}
	e.group = g
	e.selected = true
	return g, nil
}

// Deselect clears the selection.
func (e *Engine) Deselect() {
	e.selected = false
}

// Rotate starts turning the selected group. The group turns one step per
// rotate phase until a match appears or three steps bring it back.
func (e *Engine) Rotate(r Rotation) error {
	if err := e.acceptInput(); err != nil {
		return err
	}
	if !e.selected {
		return ErrNoSelection
	}

	e.state = StateRotating
	e.rotation = r
	e.steps = 0
	e.rotateStep()
	return nil
}

func (e *Engine) acceptInput() error {
	if e.over {
		return ErrGameOver
	}
	if e.state != StateIdle {
		return ErrNotIdle
	}
	return nil
}

func (e *Engine) rotateStep() {
	RotateGroup(e.board, e.group, e.rotation)
	for _, c := range e.group.Cells {
		p := e.board.Get(c)
		p.Target = e.layout.Position(c)
	}
	e.steps++
	e.wait = Wait{Phase: PhaseRotate, Duration: e.cfg.RotateDelay}
}

func (e *Engine) afterRotateStep() {
	m := FindMatches(e.board)
	if !m.Empty() {
		e.commit(m)
		return
	}
	if e.steps < 3 {
		e.rotateStep()
		return
	}

	e.state = StateIdle
	e.logger.Debug("rotation failed", "anchor", e.group.Anchor, "side", e.group.Side)
	e.notify.RotationFailed(e.group)
}

// commit records a move that produced a match and hands the board to the resolver.
func (e *Engine) commit(m Matches) {
	e.started = true
	e.selected = false
	e.dropMatchedBombs(m)
	e.moves++

	var expired *Piece
	for _, b := range e.bombs {
		b.Life--
		if b.Life <= 0 && expired == nil {
			expired = b
		}
	}
	e.logger.Debug("move committed", "moves", e.moves, "cleared", len(m.Cells), "bombs", len(e.bombs))
	e.notify.ScoreChanged(e.score, e.moves)

	if expired != nil {
		e.logger.Debug("bomb expired", "at", expired.Coord())
		e.gameOver(ReasonBombExpired)
		return
	}
	e.explode(m)
}

func (e *Engine) check() {
	e.state = StateChecking
	m := FindMatches(e.board)
	if m.Empty() {
		e.idle()
		return
	}
	e.explode(m)
}

func (e *Engine) explode(m Matches) {
	e.state = StateExploding
	e.dropMatchedBombs(m)

	pieces := make([]*Piece, 0, len(m.Cells))
	for _, c := range m.Cells {
		pieces = append(pieces, e.board.Get(c))
	}

	if e.started {
		points := len(m.Cells) * e.cfg.PointsPerCell
		e.score += points
		e.bombScore += points
		e.notify.ScoreChanged(e.score, e.moves)
	}

	e.notify.PiecesCleared(pieces)
	e.clearing = m.Cells
	e.wait = Wait{Phase: PhaseClear, Duration: e.cfg.ClearDelay}
}

func (e *Engine) dropMatchedBombs(m Matches) {
	kept := e.bombs[:0]
	for _, b := range e.bombs {
		if !m.Contains(b.Coord()) {
			kept = append(kept, b)
		}
	}
	e.bombs = kept
}

func (e *Engine) removeCleared() {
	for _, c := range e.clearing {
		e.board.Remove(c)
	}
	e.clearing = nil
}

// fill collapses every column and spawns pieces into the emptied top cells.
func (e *Engine) fill() {
	e.state = StateFilling
	missing := Collapse(e.board)

	spawned := 0
	for col, count := range missing {
		for row := e.board.Height() - count; row < e.board.Height(); row++ {
			c := C(col, row)
			p := e.spawn()
			e.board.Set(c, p)
			p.Spawn = e.layout.Position(C(col, row+count))
			spawned++
		}
	}

	if spawned == 0 {
		e.check()
		return
	}

	for _, p := range e.board.Pieces() {
		p.Target = e.layout.Position(p.Coord())
	}
	e.wait = Wait{Phase: PhaseDrop, Duration: e.cfg.DropDelay}
}

func (e *Engine) spawn() *Piece {
	id := e.nextID
	e.nextID++

	if e.cfg.BombThreshold > 0 && e.bombScore >= e.cfg.BombThreshold {
		e.bombScore = 0
		p := NewBomb(id, e.cfg.BombLife)
		e.bombs = append(e.bombs, p)
		e.logger.Debug("bomb spawned", "id", id, "life", p.Life)
		return p
	}
	return NewColor(id, Color(e.rng.Intn(e.cfg.Palette)))
}

func (e *Engine) idle() {
	e.state = StateIdle
	if !hasMove(e.board, e.cfg.Scanner) {
		e.gameOver(ReasonDeadBoard)
	}
}

// gameOver reports a terminal condition once.
func (e *Engine) gameOver(r Reason) {
	if e.over {
		return
	}
	e.over = true
	e.wait = Wait{}
	e.selected = false
	e.outcome = Outcome{
		Reason:  r,
		Message: r.Message(),
		Score:   e.score,
		Moves:   e.moves,
	}
	e.logger.Info("game over", "reason", r, "score", e.score, "moves", e.moves)
	e.notify.GameOver(e.outcome)
}
