package engine

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(w, h int) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Palette = 2
	cfg.BombThreshold = 0
	return cfg
}

// oneMove has a single red piece out of place: turning the group at
// (0,1) clockwise completes the red triad at the bottom left.
var oneMove = []string{
	"***",
	"GR*",
	"RR*",
}

func newEngine(t *testing.T, cfg Config, rows []string, opts ...Option) (*Engine, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	opts = append([]Option{WithBoard(MustParseBoard(rows...)), WithNotifier(rec), WithSeed(1)}, opts...)
	e, err := New(cfg, opts...)
	require.NoError(t, err)
	return e, rec
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"smallest board", func(c *Config) { c.Width, c.Height = 2, 2 }, false},
		{"single column", func(c *Config) { c.Width = 1 }, true},
		{"palette too small", func(c *Config) { c.Palette = 1 }, true},
		{"palette too large", func(c *Config) { c.Palette = MaxPalette + 1 }, true},
		{"bombs without life", func(c *Config) { c.BombLife = 0 }, true},
		{"bombs disabled ignores life", func(c *Config) { c.BombThreshold, c.BombLife = 0, 0 }, false},
		{"negative delay", func(c *Config) { c.DropDelay = -1 }, true},
		{"unknown scanner", func(c *Config) { c.Scanner = "psychic" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewRejectsMismatchedBoard(t *testing.T) {
	_, err := New(testConfig(4, 4), WithBoard(MustParseBoard(oneMove...)))
	assert.Error(t, err)
}

func TestInitialFillIsNotScored(t *testing.T) {
	rec := &Recorder{}
	e, err := New(DefaultConfig(), WithSeed(1), WithNotifier(rec))
	require.NoError(t, err)

	w, pending := e.Pending()
	require.True(t, pending)
	assert.Equal(t, PhaseDrop, w.Phase)
	assert.Equal(t, StateFilling, e.State())
	assert.True(t, e.Board().Full())

	e.Settle()

	assert.Equal(t, 0, e.Score())
	assert.Equal(t, 0, e.Moves())
	assert.Empty(t, rec.Scores)
	if !e.Over() {
		assert.Equal(t, StateIdle, e.State())
		assert.True(t, FindMatches(e.Board()).Empty())
	}
}

func TestSameSeedSameBoard(t *testing.T) {
	a, err := New(DefaultConfig(), WithSeed(99))
	require.NoError(t, err)
	b, err := New(DefaultConfig(), WithSeed(99))
	require.NoError(t, err)

	a.Settle()
	b.Settle()

	assert.Equal(t, a.Board().String(), b.Board().String())
}

func TestCommittedMoveScoresAndCascades(t *testing.T) {
	e, rec := newEngine(t, testConfig(3, 3), oneMove)
	require.Equal(t, StateIdle, e.State())
	require.False(t, e.Over())

	g, err := e.Select(C(0, 1), SideLeftTop)
	require.NoError(t, err)
	assert.Equal(t, SideRightTop, g.Side)

	require.NoError(t, e.Rotate(Clockwise))
	assert.Equal(t, StateRotating, e.State())

	_, err = e.Select(C(1, 1), SideRightTop)
	assert.True(t, errors.Is(err, ErrNotIdle))
	assert.True(t, errors.Is(e.Rotate(Clockwise), ErrNotIdle))

	var phases []Phase
	for {
		w, ok := e.Pending()
		if !ok {
			break
		}
		phases = append(phases, w.Phase)

		if len(phases) == 2 {
			// after the commit, before the clear completes
			assert.Equal(t, StateExploding, e.State())
			assert.Equal(t, 1, e.Moves())
			assert.Equal(t, 15, e.Score())
			require.Len(t, rec.Cleared, 1)
			assert.Len(t, rec.Cleared[0], 3)
			assert.Equal(t, [][2]int{{0, 1}, {15, 1}}, rec.Scores)
		}
		if len(phases) == 3 {
			// refilled and waiting for the drop
			assert.Equal(t, StateFilling, e.State())
			assert.True(t, e.Board().Full())
			spawned := 0
			for _, p := range e.Board().Pieces() {
				if p.ID > 9 {
					spawned++
					assert.Greater(t, p.Spawn.Y, p.Target.Y)
				}
			}
			assert.Equal(t, 3, spawned)
		}

		e.Advance()
	}

	require.GreaterOrEqual(t, len(phases), 3)
	assert.Equal(t, PhaseRotate, phases[0])
	for i, ph := range phases[1:] {
		if i%2 == 0 {
			assert.Equal(t, PhaseClear, ph)
		} else {
			assert.Equal(t, PhaseDrop, ph)
		}
	}

	assert.Equal(t, 1, e.Moves())
	assert.Zero(t, e.Score()%5)
	assert.GreaterOrEqual(t, e.Score(), 15)
	for _, b := range e.Bombs() {
		assert.Equal(t, 8, b.Life)
	}
	if !e.Over() {
		assert.Equal(t, StateIdle, e.State())
		assert.True(t, FindMatches(e.Board()).Empty())
	}
	_, selected := e.Selection()
	assert.False(t, selected)
}

func TestRotationWithoutMatchReverts(t *testing.T) {
	e, rec := newEngine(t, testConfig(3, 3), oneMove)
	before := e.Board().String()

	g, err := e.Select(C(1, 2), SideRightTop)
	require.NoError(t, err)
	require.Equal(t, [3]Coord{C(1, 2), C(2, 2), C(1, 1)}, g.Cells)

	require.NoError(t, e.Rotate(Clockwise))
	assert.Equal(t, 3, e.Settle())

	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, before, e.Board().String())
	assert.Equal(t, 0, e.Moves())
	assert.Equal(t, 0, e.Score())
	require.Len(t, rec.Failed, 1)
	assert.Equal(t, g, rec.Failed[0])
	assert.Empty(t, rec.Scores)

	_, selected := e.Selection()
	assert.True(t, selected)
}

func TestBombExpiresOnCommittedMove(t *testing.T) {
	e, rec := newEngine(t, testConfig(3, 3), []string{
		"**1",
		"GR*",
		"RR*",
	})
	require.Len(t, e.Bombs(), 5)

	_, err := e.Select(C(0, 1), SideLeftTop)
	require.NoError(t, err)
	require.NoError(t, e.Rotate(Clockwise))
	e.Settle()

	require.True(t, e.Over())
	assert.Equal(t, ReasonBombExpired, e.Outcome().Reason)
	assert.Equal(t, "BOMB EXPLODED!", e.Outcome().Message)
	assert.Equal(t, 1, e.Outcome().Moves)
	assert.Equal(t, 0, e.Score())
	require.Len(t, rec.Outcomes, 1)

	_, pending := e.Pending()
	assert.False(t, pending)
	_, err = e.Select(C(1, 1), SideRightTop)
	assert.True(t, errors.Is(err, ErrGameOver))
	assert.True(t, errors.Is(e.Rotate(Clockwise), ErrGameOver))
}

func TestBombSpawnsAfterThreshold(t *testing.T) {
	cfg := testConfig(3, 3)
	cfg.BombThreshold = 5
	cfg.BombLife = 4
	e, _ := newEngine(t, cfg, oneMove)

	_, err := e.Select(C(0, 1), SideLeftTop)
	require.NoError(t, err)
	require.NoError(t, e.Rotate(Clockwise))
	e.Advance() // commit
	e.Advance() // clear and refill

	w, _ := e.Pending()
	require.Equal(t, PhaseDrop, w.Phase)

	fresh := 0
	for _, b := range e.Bombs() {
		if b.Life == 4 {
			fresh++
		}
	}
	assert.Equal(t, 1, fresh)
	assert.Len(t, e.Bombs(), 6)
}

func TestDeadBoardEndsGame(t *testing.T) {
	tests := []struct {
		name    string
		scanner ScannerMode
		rows    []string
	}{
		{"exhaustive", ScannerExhaustive, []string{"RG", "BY"}},
		{"heuristic", ScannerHeuristic, []string{"*R*", "RGR", "***"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(len(tc.rows[0]), len(tc.rows))
			cfg.Scanner = tc.scanner
			e, rec := newEngine(t, cfg, tc.rows)

			require.True(t, e.Over())
			assert.Equal(t, ReasonDeadBoard, e.Outcome().Reason)
			assert.Equal(t, "THERE IS NO AVAILABLE MATCHES!", e.Outcome().Message)
			require.Len(t, rec.Outcomes, 1)

			_, err := e.Select(C(0, 0), SideRightTop)
			assert.True(t, errors.Is(err, ErrGameOver))
		})
	}
}

func TestInputErrors(t *testing.T) {
	e, _ := newEngine(t, testConfig(3, 3), oneMove)

	assert.True(t, errors.Is(e.Rotate(Clockwise), ErrNoSelection))

	_, err := e.Select(C(5, 5), SideRightTop)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	_, err = e.Select(C(1, 1), SideLeftBottom)
	require.NoError(t, err)
	e.Deselect()
	assert.True(t, errors.Is(e.Rotate(CounterClockwise), ErrNoSelection))
}

func TestHighScore(t *testing.T) {
	e, _ := newEngine(t, testConfig(3, 3), oneMove, WithHighScore(10))
	assert.Equal(t, 10, e.HighScore())

	_, err := e.Select(C(0, 1), SideLeftTop)
	require.NoError(t, err)
	require.NoError(t, e.Rotate(Clockwise))
	e.Advance()

	assert.Equal(t, 15, e.HighScore())
}

func TestCascadesNeverLeaveMatches(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		e, err := New(DefaultConfig(), WithSeed(seed))
		require.NoError(t, err)
		e.Settle()

		for turn := 0; turn < 12 && !e.Over(); turn++ {
			mv, ok := FindMove(e.Board())
			require.True(t, ok, "idle board without a move must be over")

			moves, score := e.Moves(), e.Score()
			_, err := e.Select(mv.Group.Anchor, mv.Group.Side)
			require.NoError(t, err)
			require.NoError(t, e.Rotate(mv.Rotation))
			e.Settle()

			assert.Equal(t, moves+1, e.Moves())
			if e.Over() {
				break
			}
			assert.Greater(t, e.Score(), score)
			assert.Zero(t, e.Score()%e.Config().PointsPerCell)
			assert.Equal(t, StateIdle, e.State())
			assert.True(t, e.Board().Full())
			require.True(t, FindMatches(e.Board()).Empty(), "seed %d turn %d:\n%s", seed, turn, e.Board())
		}
	}
}

func TestLoggerReceivesGameOver(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	newEngine(t, testConfig(2, 2), []string{"RG", "BY"}, WithLogger(logger))

	assert.Contains(t, buf.String(), "game over")
	assert.Contains(t, buf.String(), "dead_board")
}
