package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hexfall/internal/config"
	"github.com/vovakirdan/hexfall/internal/core"
	"github.com/vovakirdan/hexfall/internal/games/hexfall"
	"github.com/vovakirdan/hexfall/internal/platform/tui"
	"github.com/vovakirdan/hexfall/internal/registry"
	"github.com/vovakirdan/hexfall/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play hexfall",
	Long: `Start playing. The mode defaults to hexfall; hexfall_zen has no bombs.

Controls:
  Arrows/WASD  - Move the cursor
  Space/Tab    - Pick the corner the group turns around
  X/Enter      - Rotate clockwise
  Z            - Rotate counter-clockwise
  Mouse        - Click a corner, swipe to rotate
  P            - Pause
  R            - Restart (after game over)
  Esc/B        - Back (when paused or over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Four colors, long bomb fuses
  normal - Five colors
  hard   - Six colors, frequent short bombs
  zen    - No bombs

Examples:
  hexfall play
  hexfall play hexfall_zen
  hexfall play --difficulty hard
  hexfall play --config ./my-hexfall.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// applyGameFlags validates --config and --difficulty and hands them to the game package.
func applyGameFlags() (config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return "", err
	}
	if _, err := config.LoadHexfall(flagConfig); err != nil {
		return "", err
	}
	hexfall.SetConfigPath(flagConfig)
	hexfall.SetDifficultyPreset(preset)
	return preset, nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "hexfall"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'hexfall list' to see available modes.")
		os.Exit(1)
	}

	if _, err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
