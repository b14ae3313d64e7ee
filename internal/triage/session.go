// Package triage holds the interactive state machine that walks a list of
// images and disposes of each one by copying, moving or deleting it.
//
// A Session is owned by exactly one front-end loop. Each tick the loop
// delivers at most one Event to Handle together with the current override
// Modifiers, then reads Current and Rotation to refresh the display.
package triage

import (
	"fmt"
	"path/filepath"

	"fotosort/internal/config"
	"fotosort/internal/errors"
	"fotosort/internal/log"
	"fotosort/internal/transfer"
)

// State of the session.
type State int

const (
	Browsing State = iota
	ConfirmingDelete
	Done
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case ConfirmingDelete:
		return "confirming-delete"
	case Done:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ExitReason tells apart the ways a session reaches Done.
type ExitReason int

const (
	NotFinished ExitReason = iota
	UserQuit
	AllProcessed
)

func (r ExitReason) String() string {
	switch r {
	case UserQuit:
		return "quit"
	case AllProcessed:
		return "all images processed"
	}
	return "running"
}

// Outcome reports what one Handle call did.
type Outcome struct {
	// Redraw is set when the displayed path, rotation, prompt or state changed.
	Redraw bool
	// Removed is the path taken out of the list, if any.
	Removed string
	// Dest is where a copy or move put the file.
	Dest string
	// Err is a recoverable I/O error. The session keeps running.
	Err error
}

// Session is the triage state machine.
type Session struct {
	paths       []string
	cursor      int
	rotation    int
	defaultMode Mode
	state       State
	exit        ExitReason
	status      string
	ops         transfer.Transferer
}

// New starts a session over paths. The slice is copied. An empty list
// yields a session that is already Done with AllProcessed.
func New(paths []string, defaultMode Mode, ops transfer.Transferer) *Session {
	s := &Session{
		paths:       append([]string(nil), paths...),
		defaultMode: defaultMode,
		state:       Browsing,
		ops:         ops,
	}
	if len(s.paths) == 0 {
		s.finish(AllProcessed)
		return s
	}
	s.status = s.Position()
	return s
}

// Handle applies one event and returns what changed.
func (s *Session) Handle(ev Event, mods Modifiers) Outcome {
	switch s.state {
	case Browsing:
		return s.browse(ev, mods)
	case ConfirmingDelete:
		return s.confirm(ev)
	default:
		return Outcome{}
	}
}

func (s *Session) browse(ev Event, mods Modifiers) Outcome {
	n := len(s.paths)
	switch ev.Kind {
	case Next:
		s.cursor = (s.cursor + 1) % n
		s.rotation = 0
		s.setStatus(s.Position())
	case Previous:
		s.cursor = (s.cursor - 1 + n) % n
		s.rotation = 0
		s.setStatus(s.Position())
	case RotateCW:
		s.rotation = (s.rotation + 90) % 360
	case RotateCCW:
		s.rotation = (s.rotation - 90 + 360) % 360
	case Assign:
		return s.assign(ev.Slot, ResolveMode(s.defaultMode, mods))
	case RequestDelete:
		s.state = ConfirmingDelete
	case Quit:
		s.finish(UserQuit)
	default:
		return Outcome{}
	}
	return Outcome{Redraw: true}
}

func (s *Session) confirm(ev Event) Outcome {
	switch ev.Kind {
	case Confirm:
		path := s.paths[s.cursor]
		if err := s.ops.Delete(path); err != nil {
			// Best effort: the entry goes regardless.
			log.Warnf("Delete of %s failed: %v", path, err)
		}
		s.state = Browsing
		s.rotation = 0
		s.removeAt(s.cursor)
		if s.state != Done {
			s.setStatus(fmt.Sprintf("Deleted %s. %s", filepath.Base(path), s.Position()))
		} else {
			log.Info("Deleted %s", path)
		}
		return Outcome{Redraw: true, Removed: path}
	case Deny:
		s.state = Browsing
		s.setStatus(s.Position())
		return Outcome{Redraw: true}
	case Quit:
		s.finish(UserQuit)
		return Outcome{Redraw: true}
	default:
		return Outcome{}
	}
}

func (s *Session) assign(slot int, mode Mode) Outcome {
	if slot < 1 || slot > config.SlotCount {
		return Outcome{Err: errors.Wrapf(errors.ErrInvalidSlot, "slot %d", slot)}
	}

	src := s.paths[s.cursor]
	var dest string
	var err error
	if mode == Move {
		dest, err = s.ops.Move(src, slot)
	} else {
		dest, err = s.ops.Copy(src, slot)
	}
	if err != nil {
		// Never remove on failure, for copy and move alike.
		s.setStatus(fmt.Sprintf("Error: %v", err))
		log.Errorf("Could not %s %s to slot %d: %v", mode, src, slot, err)
		return Outcome{Redraw: true, Err: err}
	}

	if mode == Copy {
		s.setStatus(fmt.Sprintf("Copied %s to %s", src, dest))
		return Outcome{Redraw: true, Dest: dest}
	}

	s.rotation = 0
	s.removeAt(s.cursor)
	if s.state != Done {
		s.setStatus(fmt.Sprintf("Moved %s to %s. %s", src, dest, s.Position()))
	} else {
		log.Info("Moved %s to %s", src, dest)
	}
	return Outcome{Redraw: true, Removed: src, Dest: dest}
}

// Remove drops every entry equal to path, for files that disappeared from
// storage behind the session's back. It reports whether anything changed.
func (s *Session) Remove(path string) bool {
	if s.state == Done {
		return false
	}
	current := s.paths[s.cursor]
	removed := false
	for i := len(s.paths) - 1; i >= 0; i-- {
		if s.paths[i] != path {
			continue
		}
		removed = true
		if i < s.cursor {
			s.cursor--
		}
		s.removeAt(i)
		if s.state == Done {
			return true
		}
	}
	if !removed {
		return false
	}
	if current == path {
		s.state = Browsing
		s.rotation = 0
	}
	s.setStatus(fmt.Sprintf("%s vanished. %s", filepath.Base(path), s.Position()))
	return true
}

// removeAt deletes index i from the list and clamps the cursor. Callers
// reset rotation when the displayed image changes.
func (s *Session) removeAt(i int) {
	s.paths = append(s.paths[:i], s.paths[i+1:]...)
	if len(s.paths) == 0 {
		s.cursor = 0
		s.finish(AllProcessed)
		return
	}
	if s.cursor > len(s.paths)-1 {
		s.cursor = len(s.paths) - 1
	}
}

func (s *Session) finish(reason ExitReason) {
	s.state = Done
	s.exit = reason
	s.setStatus(reason.String())
}

func (s *Session) setStatus(msg string) {
	s.status = msg
	log.Info("%s", msg)
}

// Current returns the selected path. ok is false once the list is empty.
func (s *Session) Current() (string, bool) {
	if len(s.paths) == 0 {
		return "", false
	}
	return s.paths[s.cursor], true
}

// Position renders "Image i/N".
func (s *Session) Position() string {
	if len(s.paths) == 0 {
		return "Image 0/0"
	}
	return fmt.Sprintf("Image %d/%d", s.cursor+1, len(s.paths))
}

// Prompt is the confirmation question while ConfirmingDelete, else "".
func (s *Session) Prompt() string {
	if s.state != ConfirmingDelete {
		return ""
	}
	return fmt.Sprintf("Delete %s? (y/n)", s.paths[s.cursor])
}

// Paths returns a copy of the remaining candidates in order.
func (s *Session) Paths() []string {
	return append([]string(nil), s.paths...)
}

func (s *Session) Len() int { return len(s.paths) }

func (s *Session) Cursor() int { return s.cursor }

// Rotation is the preview rotation in degrees: 0, 90, 180 or 270.
func (s *Session) Rotation() int { return s.rotation }

func (s *Session) State() State { return s.state }

func (s *Session) ExitReason() ExitReason { return s.exit }

// Status is the last human readable progress or error line.
func (s *Session) Status() string { return s.status }

func (s *Session) DefaultMode() Mode { return s.defaultMode }

func (s *Session) Finished() bool { return s.state == Done }

// ModeFor resolves the transfer mode an assignment would use right now.
func (s *Session) ModeFor(m Modifiers) Mode { return ResolveMode(s.defaultMode, m) }
