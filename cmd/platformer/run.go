package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/sim"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagScript    string
	flagRunLevel  string
	flagSaveRun   bool
	flagRunRepeat int
)

var runCmd = &cobra.Command{
	Use:   "run [level] --script <file>",
	Short: "Replay an input script headlessly",
	Long: `Play a level without a terminal by feeding it a scripted input sequence,
then log how the run ended.

A script lists frames, each optionally repeated. Frames without dt
use one tick at the --fps rate:

  frames:
    - {right: true, repeat: 120}
    - {right: true, jump: true}
    - {dt: 1, repeat: 30}

Examples:
  platformer run --script ./speedrun.yaml
  platformer run sprint --script ./hop.yaml --save
  platformer run --level-file ./my-level.yaml --script ./hop.yaml -v`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagScript, "script", "", "Path to the input script YAML (required)")
	runCmd.Flags().StringVar(&flagRunLevel, "level-file", "", "Path to a level layout YAML")
	runCmd.Flags().BoolVar(&flagSaveRun, "save", false, "Record the outcome on the results board")
	runCmd.Flags().IntVar(&flagRunRepeat, "check", 1, "Replay this many times and fail if any run differs")
	//nolint:errcheck // The flag is defined just above
	runCmd.MarkFlagRequired("script")
}

func runRun(_ *cobra.Command, args []string) {
	layout, err := loadLayout(flagRunLevel, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	configSource := flagConfig
	if configSource == "" {
		configSource = "default"
	}
	logger.Debug("level loaded", "id", layout.ID, "name", layout.Name, "file", flagRunLevel)
	logger.Debug("config loaded", "source", configSource,
		"gravity", cfg.Physics.Gravity, "duration", cfg.Session.Duration)

	data, err := os.ReadFile(flagScript)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading script: %v\n", err)
		os.Exit(1)
	}
	dt := 1.0 / 60
	if flagFPS > 0 {
		dt = 1.0 / float64(flagFPS)
	}
	frames, err := sim.ParseScript(data, dt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", filepath.Base(flagScript), err)
		os.Exit(1)
	}
	logger.Debug("script loaded", "path", flagScript, "frames", len(frames))

	first, err := replayOnce(cfg, layout, frames)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for i := 1; i < flagRunRepeat; i++ {
		again, err := replayOnce(cfg, layout, frames)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !sameReplay(first, again) {
			logger.Error("replay diverged", "attempt", i+1,
				"state", again.snap.State, "expected_state", first.snap.State,
				"ticks", again.snap.Ticks, "expected_ticks", first.snap.Ticks)
			os.Exit(1)
		}
	}
	if flagRunRepeat > 1 {
		logger.Info("replays identical", "count", flagRunRepeat)
	}

	out, snap := first.outcome, first.snap
	if !first.finished {
		logger.Info("script ended before the run finished",
			"level", layout.ID,
			"ticks", snap.Ticks,
			"x", snap.Actor.X,
			"time_left", snap.Seconds(),
			"tools", fmt.Sprintf("%d/%d", snap.Collected, snap.Total),
		)
		return
	}

	logger.Info("run finished",
		"level", layout.ID,
		"state", out.State,
		"reason", out.Reason,
		"elapsed", out.Elapsed,
		"ticks", snap.Ticks,
		"tools", fmt.Sprintf("%d/%d", out.Collected, out.Total),
	)

	if !flagSaveRun {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	id, err := store.SaveResult(storage.NewResult(layout.ID, out))
	if err != nil {
		logger.Error("could not save result", "error", err)
		return
	}
	logger.Debug("result saved", "id", id)
}

// replayResult is how one replay of a script ended.
type replayResult struct {
	snap     sim.Snapshot
	outcome  sim.Outcome
	finished bool
}

func replayOnce(cfg config.PlatformerConfig, layout level.Layout, frames []sim.Frame) (replayResult, error) {
	s, err := sim.New(cfg, layout)
	if err != nil {
		return replayResult{}, err
	}
	snap := sim.Replay(s, frames)
	out, finished := s.Outcome()
	return replayResult{snap: snap, outcome: out, finished: finished}, nil
}

// sameReplay reports whether two replays ended in the same place the same way.
func sameReplay(a, b replayResult) bool {
	return a.finished == b.finished &&
		a.outcome == b.outcome &&
		a.snap.State == b.snap.State &&
		a.snap.Reason == b.snap.Reason &&
		a.snap.Actor == b.snap.Actor &&
		a.snap.Ticks == b.snap.Ticks &&
		a.snap.TimeRemaining == b.snap.TimeRemaining &&
		a.snap.Collected == b.snap.Collected &&
		slices.Equal(a.snap.Taken, b.snap.Taken)
}
