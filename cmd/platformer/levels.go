package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// levelID returns the level named on the command line, or the default level.
func levelID(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return level.DefaultID
}

// loadLayout resolves a layout from --level-file, the built-in levels or ~/.arcade/levels.
func loadLayout(file string, args []string) (level.Layout, error) {
	if file != "" {
		return level.NewLoader(filepath.Dir(file)).LoadFile(file)
	}

	id := levelID(args)
	if layout, err := level.EmbeddedByID(id); err == nil {
		return layout, nil
	}
	if dir := level.UserLevelsDir(); dir != "" {
		if layout, err := level.NewLoader(dir).LoadByID(id); err == nil {
			return layout, nil
		}
	}
	return level.Layout{}, fmt.Errorf("unknown level %q", id)
}

// runtimeConfig sizes the screen from the terminal.
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
	}
}

// inputConfig returns the held-key settings of the active config.
func inputConfig() config.Input {
	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		logger.Warn("could not load config, using defaults", "path", flagConfig, "error", err)
		cfg = config.DefaultPlatformerConfig()
	}
	return cfg.Input
}

// openStore opens the results database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
