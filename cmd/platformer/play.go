package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/runner"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var flagLevelFile string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the specified level (default: christmas).

Controls:
  Left/Right, A/D  - Walk
  Space/Up/W       - Jump
  Enter            - Start the run
  R                - Restart (after a win or game over)
  Esc/B            - Leave (before the run starts or after it ends)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Examples:
  platformer play
  platformer play sprint
  platformer play --level-file ./my-level.yaml
  platformer play christmas --config ./floaty.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevelFile, "level-file", "", "Path to a level layout YAML")
}

func runPlay(_ *cobra.Command, args []string) {
	var game registry.Game
	if flagLevelFile != "" {
		layout, err := loadLayout(flagLevelFile, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		game = runner.New(layout)
	} else {
		id := levelID(args)
		if !registry.Exists(id) {
			fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", id)
			fmt.Fprintln(os.Stderr, "Run 'platformer list' to see available levels.")
			os.Exit(1)
		}

		var err error
		game, err = registry.Create(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating level: %v\n", err)
			os.Exit(1)
		}
	}

	store := openStore()

	runErr := tui.Run(game, store, runtimeConfig(), inputConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if rg, ok := game.(*runner.Game); ok && rg.Err() != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", rg.Err())
		os.Exit(1)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
