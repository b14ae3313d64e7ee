package triage

import "fmt"

// EventKind identifies one discrete, edge-triggered input.
type EventKind int

const (
	Next EventKind = iota
	Previous
	RotateCW
	RotateCCW
	Assign
	RequestDelete
	Confirm
	Deny
	Quit
)

var eventNames = [...]string{
	Next:          "next",
	Previous:      "previous",
	RotateCW:      "rotate-cw",
	RotateCCW:     "rotate-ccw",
	Assign:        "assign",
	RequestDelete: "delete",
	Confirm:       "confirm",
	Deny:          "deny",
	Quit:          "quit",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one input delivered to Session.Handle. Slot is only meaningful
// for Assign and ranges over 1..5.
type Event struct {
	Kind EventKind
	Slot int
}

// On wraps a kind without a slot.
func On(kind EventKind) Event {
	return Event{Kind: kind}
}

// AssignTo returns an Assign event for slot n.
func AssignTo(n int) Event {
	return Event{Kind: Assign, Slot: n}
}

func (e Event) String() string {
	if e.Kind == Assign {
		return fmt.Sprintf("assign(%d)", e.Slot)
	}
	return e.Kind.String()
}

// Modifiers is the level-triggered state of the two override keys at the
// moment an event fires.
type Modifiers struct {
	ForceMove bool
	ForceCopy bool
}

// Mode is the transfer mode of a slot assignment.
type Mode int

const (
	Copy Mode = iota
	Move
)

func (m Mode) String() string {
	if m == Move {
		return "move"
	}
	return "copy"
}

// ResolveMode picks the transfer mode for one assignment. An override key
// beats the default, and force-copy beats force-move when both are held.
func ResolveMode(def Mode, mods Modifiers) Mode {
	switch {
	case mods.ForceCopy:
		return Copy
	case mods.ForceMove:
		return Move
	default:
		return def
	}
}
