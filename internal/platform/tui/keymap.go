package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-defence/internal/core"
)

// PlayerKeys are the steering keys of one ship.
type PlayerKeys struct {
	Left  key.Binding
	Right key.Binding
	Shoot key.Binding
}

// GameKeyMap defines the key bindings used while a round runs.
type GameKeyMap struct {
	P1      PlayerKeys
	P2      PlayerKeys
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.P1.Left, k.P1.Right, k.P1.Shoot, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1.Left, k.P1.Right, k.P1.Shoot},
		{k.P2.Left, k.P2.Right, k.P2.Shoot},
		{k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
// Player 1 uses A/D/W or space, player 2 the arrow keys.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		P1: PlayerKeys{
			Left:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "P1 left")),
			Right: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "P1 right")),
			Shoot: key.NewBinding(key.WithKeys("w", " "), key.WithHelp("w/space", "P1 fire")),
		},
		P2: PlayerKeys{
			Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "P2 left")),
			Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "P2 right")),
			Shoot: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "P2 fire")),
		},
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings, for help views.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to an action and the player it belongs to.
// Actions that are not tied to a ship are reported for Player1.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.PlayerID, core.Action) {
	k := km.keys

	switch {
	case key.Matches(msg, k.Quit):
		return core.Player1, core.ActionQuit
	case key.Matches(msg, k.P1.Left):
		return core.Player1, core.ActionLeft
	case key.Matches(msg, k.P1.Right):
		return core.Player1, core.ActionRight
	case key.Matches(msg, k.P1.Shoot):
		return core.Player1, core.ActionShoot
	case key.Matches(msg, k.P2.Left):
		return core.Player2, core.ActionLeft
	case key.Matches(msg, k.P2.Right):
		return core.Player2, core.ActionRight
	case key.Matches(msg, k.P2.Shoot):
		return core.Player2, core.ActionShoot
	case key.Matches(msg, k.Pause):
		return core.Player1, core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.Player1, core.ActionRestart
	case key.Matches(msg, k.Back):
		return core.Player1, core.ActionBack
	}

	return core.Player1, core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionHelp
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
	case "?", "h":
		return MenuActionHelp
	}

	return MenuActionNone
}

// isHeld reports whether an action is level-triggered.
func isHeld(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight || a == core.ActionShoot
}

type holdKey struct {
	player core.PlayerID
	action core.Action
}

type holdState struct {
	last time.Time
	seen bool // delivered in at least one frame
}

// HoldTracker turns key presses into held controls.
// Terminals only report presses (repeated while a key is down), so a control
// stays held until its window has passed since its latest press. Every press
// is delivered to at least one frame.
//
// Fire has its own window. Autorepeat starts only after a delay of a few
// hundred milliseconds, and fire must stay held across that gap or a single
// long press would fire twice.
type HoldTracker struct {
	window     time.Duration
	fireWindow time.Duration
	keys       map[holdKey]*holdState
}

// NewHoldTracker creates a tracker with the given movement and fire windows.
func NewHoldTracker(window, fireWindow time.Duration) *HoldTracker {
	return &HoldTracker{
		window:     max(window, 0),
		fireWindow: max(fireWindow, 0),
		keys:       make(map[holdKey]*holdState),
	}
}

func (h *HoldTracker) windowFor(a core.Action) time.Duration {
	if a == core.ActionShoot {
		return h.fireWindow
	}
	return h.window
}

// Press records a press of a level-triggered action.
// Pressing one direction releases the other for the same player.
func (h *HoldTracker) Press(id core.PlayerID, a core.Action, now time.Time) {
	switch a {
	case core.ActionLeft:
		delete(h.keys, holdKey{id, core.ActionRight})
	case core.ActionRight:
		delete(h.keys, holdKey{id, core.ActionLeft})
	}
	h.keys[holdKey{id, a}] = &holdState{last: now}
}

// Apply sets every held action on frame and forgets expired presses.
func (h *HoldTracker) Apply(frame *core.MultiInputFrame, now time.Time) {
	for k, st := range h.keys {
		expired := now.Sub(st.last) >= h.windowFor(k.action)
		if st.seen && expired {
			delete(h.keys, k)
			continue
		}
		frame.Set(k.player, k.action)
		st.seen = true
	}
}

// Held reports whether an action is currently held for a player.
func (h *HoldTracker) Held(id core.PlayerID, a core.Action) bool {
	_, ok := h.keys[holdKey{id, a}]
	return ok
}

// Reset releases every key.
func (h *HoldTracker) Reset() {
	clear(h.keys)
}
