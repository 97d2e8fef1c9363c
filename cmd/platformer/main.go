// platformer is a side-scrolling platformer played in the terminal.
//
// Usage:
//
//	platformer list                   - List available levels
//	platformer play [level]           - Play a level
//	platformer menu                   - Pick levels interactively
//	platformer run [level] --script f - Replay an input script headlessly
//	platformer scores <level>         - Show the results board of a level
//	platformer serve                  - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--db <path>      - Set database path (default: ~/.arcade/results.db)
//	--config <path>  - Use a custom physics config YAML
//	--verbose        - Log debug details
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/runner"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagConfig  string
	flagVerbose bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "platformer",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Platformer - Run, jump and collect tools in your terminal",
	Long: `Platformer is a side-scrolling platform game for the terminal.
Grab the tools, hop over the crates and reach the tree before the clock runs out.

Available commands:
  list     - Show all available levels
  play     - Play a level directly
  menu     - Interactive level picker
  run      - Replay an input script without a terminal
  scores   - View the results board
  serve    - Start SSH server for remote play

Examples:
  platformer list
  platformer play christmas
  platformer play --level-file ./my-level.yaml
  platformer menu
  platformer run christmas --script ./speedrun.yaml
  platformer serve --ssh :2222
  platformer scores christmas`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
		runner.SetConfigPath(flagConfig)
		registerUserLevels()
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom physics config YAML")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug details")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// registerUserLevels adds the layouts found in ~/.arcade/levels.
// Embedded levels keep their IDs.
func registerUserLevels() {
	dir := level.UserLevelsDir()
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); err != nil {
		return
	}

	layouts, err := level.NewLoader(dir).LoadAll()
	if err != nil {
		logger.Warn("could not load user levels", "dir", dir, "error", err)
		return
	}
	for _, l := range layouts {
		if !runner.Register(l) {
			logger.Debug("user level shadowed by a built-in level", "id", l.ID)
		}
	}
}
