package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/sim"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// maxFrameDT caps the wall-clock time a single tick may charge to the run
// timer, so a stalled terminal does not eat the clock in one frame.
const maxFrameDT = 0.25

// outcomer is implemented by games that report a finished run.
type outcomer interface {
	Outcome() (sim.Outcome, bool)
}

// Model is the Bubble Tea model for playing one level.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store
	config      core.RuntimeConfig
	inputFrame  core.InputFrame
	held        HeldKeys
	keyMapper   *KeyMapper
	gameState   core.GameState
	lastTick    time.Time
	quitting    bool
	backToMenu  bool
	standalone  bool // Back quits the program instead of returning to a menu
	resultSaved bool // Whether the result has been saved for the current run
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, input config.Input) Model {
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		held:       NewHeldKeys(input.HoldTicks),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack && (!m.gameState.Started || m.gameState.GameOver) {
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	}

	if !m.held.Press(action) && action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick runs one simulation tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.config.TickSeconds()
	if !m.lastTick.IsZero() {
		dt = min(now.Sub(m.lastTick).Seconds(), maxFrameDT)
	}
	m.lastTick = now

	m.held.Apply(&m.inputFrame)

	var result core.StepResult
	if clocked, ok := m.game.(registry.Clocked); ok {
		result = clocked.StepDT(m.inputFrame, dt)
	} else {
		result = m.game.Step(m.inputFrame)
	}
	m.gameState = result.State

	if !m.gameState.GameOver {
		m.resultSaved = false
	} else if !m.resultSaved {
		m.held.Release()
		m.saveResult()
		m.resultSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveResult records the finished run on the results board.
func (m *Model) saveResult() {
	if m.store == nil {
		return
	}
	g, ok := m.game.(outcomer)
	if !ok {
		return
	}
	out, ok := g.Outcome()
	if !ok {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveResult(storage.NewResult(m.game.ID(), out))
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// BackToMenu returns true if the player asked to leave the level.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run plays a single level in the local terminal.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, input config.Input) error {
	model := NewModel(game, store, cfg, input)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
