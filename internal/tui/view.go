package tui

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"fotosort/internal/catalog"
	"fotosort/internal/preview"
	"fotosort/internal/triage"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// Rows taken by the title, file line, status and short help.
const chromeRows = 5

// View implements tea.Model
func (m *Model) View() string {
	if m.session.Finished() {
		return m.styles.Status.Render(m.session.ExitReason().String()) + "\n"
	}

	path, _ := m.session.Current()
	cols := max(m.width-2, 1)

	var sections []string
	sections = append(sections, m.renderTitle())

	rows := m.height - chromeRows
	if m.help.ShowAll {
		// The tallest help column has four bindings.
		rows -= 3
	}
	if m.session.State() == triage.ConfirmingDelete {
		rows -= 3
	}

	img, err := m.loader.Load(path, m.session.Rotation())
	if err != nil {
		sections = append(sections, m.styles.Error.Render(fmt.Sprintf("Cannot show image: %v", err)))
	} else {
		sections = append(sections, preview.RenderBlocks(img, cols, max(rows, 1)))
	}

	sections = append(sections, m.renderFileLine(path, cols, img))
	if m.session.State() == triage.ConfirmingDelete {
		sections = append(sections, m.styles.Prompt.Render(m.session.Prompt()))
	}
	sections = append(sections, m.renderStatus(cols))
	sections = append(sections, m.help.View(m.keys))

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderTitle() string {
	parts := []string{
		m.styles.Title.Render("fotosort"),
		m.styles.Info.Render(m.session.Position()),
		m.styles.Status.Render("default: " + m.session.DefaultMode().String()),
	}
	if r := m.session.Rotation(); r != 0 {
		parts = append(parts, m.styles.Info.Render(fmt.Sprintf("↻ %d°", r)))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderFileLine(path string, cols int, img *image.RGBA) string {
	var details []string
	if info, err := os.Stat(path); err == nil {
		details = append(details, humanize.Bytes(uint64(info.Size())))
	}
	if img != nil {
		b := img.Bounds()
		details = append(details, fmt.Sprintf("%dx%d", b.Dx(), b.Dy()))
	}
	if meta := m.metaFor(path); !meta.IsZero() {
		details = append(details, meta.String())
	}
	suffix := ""
	if len(details) > 0 {
		suffix = "  " + strings.Join(details, "  ")
	}

	name := filepath.Base(path)
	room := cols - runewidth.StringWidth(suffix)
	if room < 1 {
		room = 1
	}
	name = runewidth.Truncate(name, room, "…")
	return m.styles.Info.Render(name) + m.styles.Status.Render(suffix)
}

// metaFor reads EXIF once per displayed path.
func (m *Model) metaFor(path string) catalog.Meta {
	if path != m.metaPath {
		m.metaPath = path
		m.meta, _ = catalog.ReadMeta(path)
	}
	return m.meta
}

func (m *Model) renderStatus(cols int) string {
	status := runewidth.Truncate(m.session.Status(), cols, "…")
	switch {
	case strings.HasPrefix(status, "Error:"):
		return m.styles.Error.Render(status)
	case strings.HasPrefix(status, "Copied"), strings.HasPrefix(status, "Moved"):
		return m.styles.Success.Render(status)
	default:
		return m.styles.Status.Render(status)
	}
}
