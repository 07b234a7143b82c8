// hexfall is a hexagonal match-3 puzzle for the terminal.
//
// Usage:
//
//	hexfall list              - List available modes
//	hexfall play [mode]       - Play a game (default: hexfall)
//	hexfall menu              - Start menu to pick a mode interactively
//	hexfall serve             - Start SSH server for remote play
//	hexfall scores [mode]     - Show high scores and recent games
//	hexfall sim               - Let the move finder play headless games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.hexfall/scores.db)
//	--config <path>       - Custom hexfall.yaml
//	--difficulty <name>   - easy, normal, hard or zen
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/hexfall/internal/games/hexfall"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hexfall",
	Short: "Hexfall - rotate hexagons, match colors",
	Long: `Hexfall is a match-3 puzzle on a hexagonal grid. Pick three hexagons
that touch at a corner and rotate them until three of a color line up.
Bombs appear as your score grows; clear them before their counter runs out.

Available commands:
  list     - Show all available modes
  play     - Play directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores and recent games
  sim      - Headless autoplay for testing configs

Examples:
  hexfall play
  hexfall play hexfall_zen
  hexfall play --difficulty hard
  hexfall menu
  hexfall serve --ssh :2222
  hexfall sim --games 20 --seed 7`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hexfall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom hexfall config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, zen")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
