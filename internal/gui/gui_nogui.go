//go:build nogui

package gui

import (
	"fmt"

	"fotosort/internal/triage"
	"fotosort/internal/watch"
)

// Available reports whether this build has a window front-end.
func Available() bool {
	return false
}

// Run is a stub for builds with the window front-end disabled.
func Run(session *triage.Session, vanished <-chan watch.Vanished) error {
	return fmt.Errorf("GUI not available in this build, use --tui")
}
