package tui

import (
	"fotosort/internal/triage"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// A terminal only reports presses, never held keys, so the copy and move
// overrides travel with the slot key itself: alt+digit forces a move and
// the shifted digit (!@#$%) forces a copy.
var (
	slotKeys      = []string{"1", "2", "3", "4", "5"}
	forceMoveKeys = []string{"alt+1", "alt+2", "alt+3", "alt+4", "alt+5"}
	forceCopyKeys = []string{"!", "@", "#", "$", "%"}
)

// KeyMap defines the key bindings of the terminal front-end.
type KeyMap struct {
	Next      key.Binding
	Previous  key.Binding
	RotateCW  key.Binding
	RotateCCW key.Binding
	Slot      key.Binding
	ForceMove key.Binding
	ForceCopy key.Binding
	Delete    key.Binding

	// Only active while a deletion awaits an answer.
	Confirm key.Binding
	Deny    key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap mirrors the window front-end where the terminal allows it.
var DefaultKeyMap = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next"),
	),
	Previous: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous"),
	),
	RotateCW: key.NewBinding(
		key.WithKeys("r", "]"),
		key.WithHelp("r", "rotate ↻"),
	),
	RotateCCW: key.NewBinding(
		key.WithKeys("R", "["),
		key.WithHelp("R", "rotate ↺"),
	),
	Slot: key.NewBinding(
		key.WithKeys(slotKeys...),
		key.WithHelp("1-5", "send to slot"),
	),
	ForceMove: key.NewBinding(
		key.WithKeys(forceMoveKeys...),
		key.WithHelp("alt+1-5", "move"),
	),
	ForceCopy: key.NewBinding(
		key.WithKeys(forceCopyKeys...),
		key.WithHelp("!@#$%", "copy"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y", "enter"),
		key.WithHelp("y", "confirm"),
	),
	Deny: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n", "cancel"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Slot, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.RotateCW, k.RotateCCW},
		{k.Slot, k.ForceMove, k.ForceCopy},
		{k.Delete, k.Confirm, k.Deny},
		{k.Help, k.Quit},
	}
}

// Translate maps a key press to a session event. The boolean is false for
// keys that mean nothing to the session.
func (k KeyMap) Translate(msg tea.KeyMsg) (triage.Event, triage.Modifiers, bool) {
	var mods triage.Modifiers
	switch {
	case key.Matches(msg, k.Quit):
		return triage.On(triage.Quit), mods, true
	case key.Matches(msg, k.Next):
		return triage.On(triage.Next), mods, true
	case key.Matches(msg, k.Previous):
		return triage.On(triage.Previous), mods, true
	case key.Matches(msg, k.RotateCW):
		return triage.On(triage.RotateCW), mods, true
	case key.Matches(msg, k.RotateCCW):
		return triage.On(triage.RotateCCW), mods, true
	case key.Matches(msg, k.Slot):
		return triage.AssignTo(slotIndex(msg.String(), slotKeys)), mods, true
	case key.Matches(msg, k.ForceMove):
		mods.ForceMove = true
		return triage.AssignTo(slotIndex(msg.String(), forceMoveKeys)), mods, true
	case key.Matches(msg, k.ForceCopy):
		mods.ForceCopy = true
		return triage.AssignTo(slotIndex(msg.String(), forceCopyKeys)), mods, true
	case key.Matches(msg, k.Delete):
		return triage.On(triage.RequestDelete), mods, true
	case key.Matches(msg, k.Confirm):
		return triage.On(triage.Confirm), mods, true
	case key.Matches(msg, k.Deny):
		return triage.On(triage.Deny), mods, true
	}
	return triage.Event{}, mods, false
}

func slotIndex(s string, keys []string) int {
	for i, k := range keys {
		if k == s {
			return i + 1
		}
	}
	return 0
}
