package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexfall/internal/config"
	"github.com/vovakirdan/hexfall/internal/games/hexfall/engine"
)

var (
	flagSimGames     int
	flagSimMaxMoves  int
	flagSimHeuristic bool
	flagSimVerbose   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play headless games with the move finder",
	Long: `Run games without a terminal UI. Each move is the first one the
scanner finds, so results show how long a config keeps a board alive
and how often bombs end it.

Examples:
  hexfall sim
  hexfall sim --games 50 --seed 1
  hexfall sim --difficulty hard --heuristic
  hexfall sim --games 1 --verbose`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 10, "Number of games to play")
	simCmd.Flags().IntVar(&flagSimMaxMoves, "max-moves", 500, "Stop a game after this many moves")
	simCmd.Flags().BoolVar(&flagSimHeuristic, "heuristic", false, "Detect dead boards with the heuristic scanner")
	simCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Log every move and dump boards")
}

// simResult summarizes one headless game.
type simResult struct {
	Seed    int64
	Score   int
	Moves   int
	Cleared int
	Reason  engine.Reason
}

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "hexfall-sim",
	})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		logger.Fatal("bad difficulty", "error", err)
	}
	cfg, err := config.LoadHexfall(flagConfig)
	if err != nil {
		logger.Fatal("bad config", "error", err)
	}
	cfg = preset.Apply(cfg)
	if flagSimHeuristic {
		cfg.Game.Scanner = string(engine.ScannerHeuristic)
	}

	base := flagSeed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	var total, moves, bombs, dead int
	for i := range flagSimGames {
		r, err := simulate(cfg.EngineConfig(), base+int64(i), flagSimMaxMoves, logger)
		if err != nil {
			logger.Fatal("cannot start engine", "error", err)
		}
		logger.Info("game finished", "seed", r.Seed, "score", r.Score, "moves", r.Moves, "cleared", r.Cleared, "end", r.Reason)

		total += r.Score
		moves += r.Moves
		switch r.Reason {
		case engine.ReasonBombExpired:
			bombs++
		case engine.ReasonDeadBoard:
			dead++
		}
	}

	if flagSimGames > 0 {
		fmt.Printf("games %d  avg score %.1f  avg moves %.1f  bomb endings %d  dead boards %d\n",
			flagSimGames,
			float64(total)/float64(flagSimGames),
			float64(moves)/float64(flagSimGames),
			bombs, dead)
	}
}

// simulate plays one game to its end or to maxMoves.
func simulate(cfg engine.Config, seed int64, maxMoves int, logger *log.Logger) (simResult, error) {
	rec := &engine.Recorder{}
	eng, err := engine.New(cfg, engine.WithSeed(seed), engine.WithLogger(logger), engine.WithNotifier(rec))
	if err != nil {
		return simResult{}, err
	}
	eng.Settle()

	for !eng.Over() && eng.Moves() < maxMoves {
		m, ok := engine.FindMove(eng.Board())
		if !ok {
			// The heuristic scanner can miss a dead board; stop rather than spin.
			break
		}
		if _, err := eng.Select(m.Group.Anchor, m.Group.Side); err != nil {
			return simResult{}, err
		}
		if err := eng.Rotate(m.Rotation); err != nil {
			return simResult{}, err
		}
		eng.Settle()

		logger.Debug("move", "group", m.Group.Cells, "rotation", m.Rotation, "score", eng.Score())
		if logger.GetLevel() <= log.DebugLevel {
			logger.Debug("board\n" + eng.Board().String())
		}
	}

	return simResult{
		Seed:    seed,
		Score:   eng.Score(),
		Moves:   eng.Moves(),
		Cleared: rec.ClearedCount(),
		Reason:  eng.Outcome().Reason,
	}, nil
}
