//go:build !nogui

// Package gui is the window front-end: it shows the current image fitted to
// the window and feeds raw key presses into a triage session.
package gui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fotosort/internal/catalog"
	"fotosort/internal/log"
	"fotosort/internal/preview"
	"fotosort/internal/triage"
	"fotosort/internal/watch"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
)

// App is the GUI application
type App struct {
	fyneApp  fyne.App
	window   fyne.Window
	session  *triage.Session
	loader   *preview.Loader
	keyboard *Keyboard

	image    *canvas.Image
	position *widget.Label
	name     *widget.Label
	prompt   *widget.Label
	status   *widget.Label

	// Guards session and loader between key callbacks and the watcher.
	mu sync.Mutex
}

// Available reports whether this build has a window front-end.
func Available() bool {
	return true
}

// Run opens the window and blocks until the session is done or the window
// is closed. vanished may be nil.
func Run(session *triage.Session, vanished <-chan watch.Vanished) error {
	a := NewApp(session)
	a.Run(vanished)
	return nil
}

// NewApp creates the window for session.
func NewApp(session *triage.Session) *App {
	return newApp(app.NewWithID("io.github.fotosort"), session)
}

func newApp(fyneApp fyne.App, session *triage.Session) *App {
	a := &App{
		fyneApp:  fyneApp,
		session:  session,
		loader:   preview.NewLoader(),
		keyboard: NewKeyboard(),
	}
	a.window = fyneApp.NewWindow("fotosort")
	a.window.SetMaster()
	a.window.SetCloseIntercept(a.closeRequested)

	a.buildUI()
	a.bindKeys()
	a.refresh()
	return a
}

func (a *App) buildUI() {
	a.image = canvas.NewImageFromImage(nil)
	a.image.FillMode = canvas.ImageFillContain
	a.image.ScaleMode = canvas.ImageScaleSmooth

	a.position = widget.NewLabel("")
	a.position.TextStyle = fyne.TextStyle{Bold: true}
	a.name = widget.NewLabel("")
	a.name.Truncation = fyne.TextTruncateEllipsis

	a.prompt = widget.NewLabel("")
	a.prompt.TextStyle = fyne.TextStyle{Bold: true}
	a.prompt.Importance = widget.WarningImportance
	a.prompt.Hide()
	a.status = widget.NewLabel("")
	a.status.Truncation = fyne.TextTruncateEllipsis

	top := container.NewBorder(nil, nil, a.position, nil, a.name)
	bottom := container.NewVBox(a.prompt, widget.NewSeparator(), a.status)
	a.window.SetContent(container.NewBorder(top, bottom, nil, nil, a.image))
	a.window.Resize(fyne.NewSize(900, 700))
}

func (a *App) bindKeys() {
	if dc, ok := a.window.Canvas().(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) { a.keyDown(ev.Name) })
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) { a.keyboard.Up(ev.Name) })
	} else {
		// Without raw key events no override can be held.
		a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
			a.keyDown(ev.Name)
			a.keyboard.Up(ev.Name)
		})
	}
	// Key releases are lost while another window has focus.
	a.fyneApp.Lifecycle().SetOnExitedForeground(a.keyboard.Reset)
}

func (a *App) keyDown(name fyne.KeyName) {
	ev, ok := a.keyboard.Down(name)
	if !ok {
		return
	}

	a.mu.Lock()
	// Escape leaves the program unless it answers a question.
	if name == fyne.KeyEscape && a.session.State() == triage.Browsing {
		ev = triage.On(triage.Quit)
	}
	out := a.session.Handle(ev, a.keyboard.Modifiers())
	if out.Removed != "" {
		a.loader.Forget()
	}
	done := a.session.Finished()
	a.mu.Unlock()

	if out.Redraw {
		a.refresh()
	}
	if done {
		a.window.Close()
	}
}

func (a *App) closeRequested() {
	a.mu.Lock()
	if !a.session.Finished() {
		a.session.Handle(triage.On(triage.Quit), triage.Modifiers{})
	}
	a.mu.Unlock()
	a.window.Close()
}

func (a *App) follow(vanished <-chan watch.Vanished) {
	for v := range vanished {
		a.mu.Lock()
		changed := a.session.Remove(v.Path)
		if changed {
			a.loader.Forget()
		}
		done := a.session.Finished()
		a.mu.Unlock()

		if changed {
			log.WithField("path", v.Path).Info("Removed by another program")
			a.refresh()
		}
		if done {
			a.window.Close()
			return
		}
	}
}

func (a *App) refresh() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session.Finished() {
		a.prompt.Hide()
		a.status.SetText(a.session.ExitReason().String())
		return
	}

	path, _ := a.session.Current()
	img, err := a.loader.Load(path, a.session.Rotation())
	if err != nil {
		log.Warnf("Cannot show %s: %v", path, err)
		a.image.Image = nil
		a.name.SetText(fmt.Sprintf("%s (cannot show image)", path))
	} else {
		a.image.Image = img
		a.name.SetText(describe(path, img.Bounds().Dx(), img.Bounds().Dy()))
	}
	a.image.Refresh()

	a.position.SetText(a.session.Position())
	a.window.SetTitle(fmt.Sprintf("fotosort - %s", filepath.Base(path)))

	if a.session.State() == triage.ConfirmingDelete {
		a.prompt.SetText(a.session.Prompt())
		a.prompt.Show()
	} else {
		a.prompt.Hide()
	}

	status := a.session.Status()
	switch {
	case strings.HasPrefix(status, "Error:"):
		a.status.Importance = widget.DangerImportance
	case strings.HasPrefix(status, "Copied"), strings.HasPrefix(status, "Moved"):
		a.status.Importance = widget.SuccessImportance
	default:
		a.status.Importance = widget.MediumImportance
	}
	a.status.SetText(status)
}

func describe(path string, w, h int) string {
	info, err := os.Stat(path)
	if err != nil {
		return path
	}
	text := fmt.Sprintf("%s  %s  %dx%d", path, humanize.Bytes(uint64(info.Size())), w, h)
	if meta, err := catalog.ReadMeta(path); err == nil && !meta.IsZero() {
		text += "  " + meta.String()
	}
	return text
}

// Run shows the window until the session ends.
func (a *App) Run(vanished <-chan watch.Vanished) {
	if a.session.Finished() {
		return
	}
	if vanished != nil {
		go a.follow(vanished)
	}
	a.window.ShowAndRun()
}

// Session returns the driven session
func (a *App) Session() *triage.Session {
	return a.session
}
