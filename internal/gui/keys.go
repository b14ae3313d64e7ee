package gui

import (
	"sync"

	"fotosort/internal/triage"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

var bindings = map[fyne.KeyName]triage.Event{
	fyne.KeyRight:        triage.On(triage.Next),
	fyne.KeyLeft:         triage.On(triage.Previous),
	fyne.KeyR:            triage.On(triage.RotateCW),
	fyne.KeyRightBracket: triage.On(triage.RotateCW),
	fyne.KeyL:            triage.On(triage.RotateCCW),
	fyne.KeyLeftBracket:  triage.On(triage.RotateCCW),
	fyne.Key1:            triage.AssignTo(1),
	fyne.Key2:            triage.AssignTo(2),
	fyne.Key3:            triage.AssignTo(3),
	fyne.Key4:            triage.AssignTo(4),
	fyne.Key5:            triage.AssignTo(5),
	fyne.KeyDelete:       triage.On(triage.RequestDelete),
	fyne.KeyD:            triage.On(triage.RequestDelete),
	fyne.KeyY:            triage.On(triage.Confirm),
	fyne.KeyReturn:       triage.On(triage.Confirm),
	fyne.KeyEnter:        triage.On(triage.Confirm),
	fyne.KeyN:            triage.On(triage.Deny),
	fyne.KeyEscape:       triage.On(triage.Deny),
	fyne.KeyQ:            triage.On(triage.Quit),
}

// Keyboard turns raw key down/up notifications into edge-triggered events
// and tracks which override keys are held.
type Keyboard struct {
	mu   sync.Mutex
	held map[fyne.KeyName]bool
}

// NewKeyboard returns a tracker with nothing held.
func NewKeyboard() *Keyboard {
	return &Keyboard{held: make(map[fyne.KeyName]bool)}
}

// Down records a press. It returns an event only on the transition from
// released to pressed, so auto-repeat never fires twice.
func (k *Keyboard) Down(name fyne.KeyName) (triage.Event, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.held[name] {
		return triage.Event{}, false
	}
	k.held[name] = true
	ev, ok := bindings[name]
	return ev, ok
}

// Up records a release.
func (k *Keyboard) Up(name fyne.KeyName) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.held, name)
}

// Reset forgets every held key, for when the window loses the keyboard.
func (k *Keyboard) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.held = make(map[fyne.KeyName]bool)
}

// Modifiers reports the overrides held right now: Shift forces a move and
// Control forces a copy.
func (k *Keyboard) Modifiers() triage.Modifiers {
	k.mu.Lock()
	defer k.mu.Unlock()
	return triage.Modifiers{
		ForceMove: k.held[desktop.KeyShiftLeft] || k.held[desktop.KeyShiftRight],
		ForceCopy: k.held[desktop.KeyControlLeft] || k.held[desktop.KeyControlRight],
	}
}
