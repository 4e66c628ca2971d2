// snake is a terminal snake game with power-ups, stages and leaderboards.
//
// Usage:
//
//	snake                    - Start the menu
//	snake play               - Jump straight into a run
//	snake scores [key]       - Show high scores for a settings combination
//	snake stats              - Show lifetime statistics and achievements
//	snake settings           - Edit gameplay and graphics settings
//	snake serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>      - Render rate (default: from config)
//	--seed <value>    - RNG seed for reproducible runs
//	--data <path>     - Save file (default: ~/.snake/save.json)
//	--db <path>       - Run history database (default: ~/.snake/runs.db)
//	--config <path>   - Game config YAML
//	--verbose         - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDataPath string
	flagDBPath   string
	flagConfig   string
	flagVerbose  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic, in your terminal",
	Long: `Snake is a terminal snake game with power-ups, stages,
obstacles, wrap-around maps and per-mode leaderboards.

Available commands:
  play      - Start a run directly
  scores    - View high scores
  stats     - Lifetime statistics and achievements
  settings  - Edit settings
  serve     - Start SSH server for remote play

Examples:
  snake
  snake play --difficulty hard --map wrap
  snake scores normal|bounded|clear
  snake serve --ssh :2222`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Render rate in frames per second (0 = config value)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDataPath, "data", "~/.snake/save.json", "Path to save file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
}
