// Package hexfall drives the hexagonal match-3 engine from the platform's
// fixed tick loop. It plays the engine's phase waits as animations, maps
// keys and mouse gestures to swap-group rotations, and draws the board.
package hexfall

import (
	"math"

	"github.com/vovakirdan/hexfall/internal/config"
	"github.com/vovakirdan/hexfall/internal/core"
	"github.com/vovakirdan/hexfall/internal/games/hexfall/engine"
	"github.com/vovakirdan/hexfall/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeZen     Mode = "zen" // bombs disabled
)

// Animation tuning. Pieces cover this fraction of the remaining distance
// every tick and snap once closer than approachEps world units.
const (
	approachFraction = 0.35
	approachEps      = 0.01
	flashPeriod      = 4 // ticks per on/off blink of clearing pieces
)

// Game implements the hexfall puzzle.
type Game struct {
	mode Mode
	cfg  config.HexfallConfig
	eng  *engine.Engine
	tick uint64

	tickRate  int
	highScore int
	preset    config.DifficultyPreset // overrides selectedPreset when set

	// Phase wait currently being played
	waitTicks int
	waiting   bool

	// Visual world position per piece ID
	visual   map[int]engine.Point
	clearing map[int]bool

	// Keyboard cursor
	cursor engine.Coord
	side   engine.Side

	// Mouse gesture in progress
	pressed bool
	pressX  int
	pressY  int

	// Screen dimensions
	screenW int
	screenH int

	outcome  engine.Outcome
	gameOver bool
	paused   bool
	tooSmall bool
	failed   int // ticks left to show the rotation-failed hint
}

// Package-level variables for config
var (
	selectedConfigPath string
	selectedPreset     = config.DifficultyNormal
)

// SetConfigPath sets a custom YAML config file. Empty uses the search order.
func SetConfigPath(path string) {
	selectedConfigPath = path
}

// SetDifficultyPreset sets the preset applied on the next Reset.
func SetDifficultyPreset(p config.DifficultyPreset) {
	selectedPreset = p
}

// GetDifficultyPreset returns the currently selected preset.
func GetDifficultyPreset() config.DifficultyPreset {
	return selectedPreset
}

// New creates a classic game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewZen creates a game without bombs.
func NewZen() *Game {
	return &Game{mode: ModeZen}
}

func init() {
	registry.Register("hexfall", func() registry.Game {
		return New()
	})
	registry.Register("hexfall_zen", func() registry.Game {
		return NewZen()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeZen {
		return "hexfall_zen"
	}
	return "hexfall"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeZen {
		return "Hexfall (Zen)"
	}
	return "Hexfall"
}

// SetHighScore sets the persisted best score shown in the HUD.
func (g *Game) SetHighScore(score int) {
	g.highScore = score
}

// SetDifficulty picks the preset for this instance only.
func (g *Game) SetDifficulty(name string) error {
	p, err := config.ParsePreset(name)
	if err != nil {
		return err
	}
	g.preset = p
	return nil
}

// loadConfig resolves the configuration for the next game.
// A broken file falls back to defaults; the CLI reports it before play starts.
func (g *Game) loadConfig() config.HexfallConfig {
	cfg, err := config.LoadHexfall(selectedConfigPath)
	if err != nil {
		cfg = config.DefaultHexfallConfig()
	}
	preset := selectedPreset
	if g.preset != "" {
		preset = g.preset
	}
	cfg = preset.Apply(cfg)
	if g.mode == ModeZen {
		cfg = config.DifficultyZen.Apply(cfg)
	}
	return cfg
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = g.loadConfig()
	g.reset(cfg)
}

// reset starts a game with the already resolved g.cfg.
func (g *Game) reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.visual = make(map[int]engine.Point)
	g.clearing = make(map[int]bool)
	g.waiting = false
	g.waitTicks = 0
	g.pressed = false
	g.outcome = engine.Outcome{}
	g.gameOver = false
	g.paused = false
	g.failed = 0

	eng, err := engine.New(g.cfg.EngineConfig(),
		engine.WithSeed(cfg.Seed),
		engine.WithNotifier(g),
		engine.WithHighScore(g.highScore),
	)
	if err != nil {
		// Validated configs always build; keep a playable board regardless.
		g.cfg = config.DefaultHexfallConfig()
		eng, _ = engine.New(g.cfg.EngineConfig(), engine.WithSeed(cfg.Seed), engine.WithNotifier(g))
	}
	g.eng = eng

	g.cursor = engine.C(g.cfg.Grid.Width/2, g.cfg.Grid.Height/2)
	g.side = engine.SideRightTop
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW := g.boardWidth() + 2
	if minW < 34 {
		minW = 34
	}
	minH := g.boardHeight() + hudHeight + footerHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// Engine exposes the underlying engine for tests and tools.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.gameOver {
		// Will be reset by platform
		return core.StepResult{State: g.State()}
	}

	g.animate()
	g.playWait()

	if !g.gameOver {
		g.handleKeys(in)
		g.handleMouse(in)
	}

	if g.failed > 0 {
		g.failed--
	}

	return core.StepResult{State: g.State()}
}

// animate moves every piece's visual position toward its target.
func (g *Game) animate() {
	b := g.eng.Board()
	seen := make(map[int]bool, b.Width()*b.Height())

	for _, p := range b.Pieces() {
		seen[p.ID] = true
		pos, ok := g.visual[p.ID]
		if !ok {
			pos = p.Spawn
		}
		pos.X = core.Approach(pos.X, p.Target.X, approachFraction, approachEps)
		pos.Y = core.Approach(pos.Y, p.Target.Y, approachFraction, approachEps)
		g.visual[p.ID] = pos
	}

	for id := range g.visual {
		if !seen[id] {
			delete(g.visual, id)
			delete(g.clearing, id)
		}
	}
}

// playWait counts down the pending phase and advances the engine when it ends.
func (g *Game) playWait() {
	w, ok := g.eng.Pending()
	if !ok {
		g.waiting = false
		return
	}
	if !g.waiting {
		g.waiting = true
		g.waitTicks = g.ticksFor(w)
	}

	g.waitTicks--
	if g.waitTicks > 0 {
		return
	}

	g.waiting = false
	g.snap()
	if w.Phase == engine.PhaseClear {
		clear(g.clearing)
	}
	g.eng.Advance()
}

// ticksFor converts a wait duration to whole ticks, at least one.
func (g *Game) ticksFor(w engine.Wait) int {
	n := int(math.Ceil(w.Duration.Seconds() * float64(g.tickRate)))
	if n < 1 {
		n = 1
	}
	return n
}

// snap places every piece on its target.
func (g *Game) snap() {
	for _, p := range g.eng.Board().Pieces() {
		g.visual[p.ID] = p.Target
	}
}

// handleKeys moves the cursor and starts rotations.
func (g *Game) handleKeys(in core.InputFrame) {
	w, h := g.cfg.Grid.Width, g.cfg.Grid.Height

	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, h-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, h-1)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, w-1)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, w-1)
	}

	if in.Has(core.ActionSide) {
		g.side = g.side.Next()
	}

	switch {
	case in.Has(core.ActionRotateCW):
		g.rotate(engine.Clockwise)
	case in.Has(core.ActionRotateCCW):
		g.rotate(engine.CounterClockwise)
	}
}

// handleMouse turns a click into a cursor + side selection and a drag
// longer than the swipe sensitivity into a rotation.
func (g *Game) handleMouse(in core.InputFrame) {
	for _, ev := range in.Mouse {
		switch ev.Kind {
		case core.MousePress:
			c, side, ok := g.hitTest(ev.X, ev.Y)
			if !ok {
				g.pressed = false
				continue
			}
			g.cursor, g.side = c, side
			g.pressed = true
			g.pressX, g.pressY = ev.X, ev.Y

		case core.MouseRelease:
			if !g.pressed {
				continue
			}
			g.pressed = false
			if s, ok := swipeFor(ev.X-g.pressX, ev.Y-g.pressY, g.cfg.Game.SwipeSensitivity); ok {
				g.rotate(engine.RotationFor(s))
			}
		}
	}
}

// swipeFor classifies a drag by its dominant axis. Screen y grows downward.
func swipeFor(dx, dy, sensitivity int) (engine.Swipe, bool) {
	if core.Max(core.Abs(dx), core.Abs(dy)) < sensitivity {
		return 0, false
	}
	if core.Abs(dx) >= core.Abs(dy) {
		if dx > 0 {
			return engine.SwipeRight, true
		}
		return engine.SwipeLeft, true
	}
	if dy > 0 {
		return engine.SwipeDown, true
	}
	return engine.SwipeUp, true
}

// rotate selects the group under the cursor and turns it.
// Input while the board is busy is dropped.
func (g *Game) rotate(r engine.Rotation) {
	if _, err := g.eng.Select(g.cursor, g.side); err != nil {
		return
	}
	_ = g.eng.Rotate(r)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := core.GameState{
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
	if g.eng != nil {
		s.Score = g.eng.Score()
		s.Moves = g.eng.Moves()
	}
	if g.gameOver {
		s.EndReason = g.outcome.Reason.String()
	}
	return s
}

// PiecesCleared marks pieces for the clear flash.
func (g *Game) PiecesCleared(pieces []*engine.Piece) {
	for _, p := range pieces {
		g.clearing[p.ID] = true
	}
}

// ScoreChanged is read back from the engine on render.
func (g *Game) ScoreChanged(int, int) {}

// RotationFailed shows a short hint.
func (g *Game) RotationFailed(engine.SwapGroup) {
	g.failed = g.tickRate
}

// GameOver records the outcome for the overlay and the platform.
func (g *Game) GameOver(o engine.Outcome) {
	g.outcome = o
	g.gameOver = true
}
