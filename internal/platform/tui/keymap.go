package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "left", "a":
		return core.ActionLeft, false
	case "right", "d":
		return core.ActionRight, false
	case " ", "up", "w":
		return core.ActionJump, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// HeldKeys keeps a walk direction pressed for a number of ticks after
// each key event. Terminals deliver key presses and auto-repeats but never
// releases, so a direction is considered released once repeats stop.
type HeldKeys struct {
	hold  int
	left  int // ticks remaining
	right int
}

// NewHeldKeys creates a latch that holds each press for holdTicks ticks.
func NewHeldKeys(holdTicks int) HeldKeys {
	if holdTicks < 1 {
		holdTicks = 1
	}
	return HeldKeys{hold: holdTicks}
}

// Press records a key press. Pressing one direction releases the other.
// It reports whether the action was a direction.
func (h *HeldKeys) Press(a core.Action) bool {
	switch a {
	case core.ActionLeft:
		h.left, h.right = h.hold, 0
	case core.ActionRight:
		h.right, h.left = h.hold, 0
	default:
		return false
	}
	return true
}

// Apply sets the held directions on the frame and ages the latch by one tick.
func (h *HeldKeys) Apply(frame *core.InputFrame) {
	if h.left > 0 {
		frame.Set(core.ActionLeft)
		h.left--
	}
	if h.right > 0 {
		frame.Set(core.ActionRight)
		h.right--
	}
}

// Release drops every held direction.
func (h *HeldKeys) Release() {
	h.left, h.right = 0, 0
}
