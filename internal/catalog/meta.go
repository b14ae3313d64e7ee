package catalog

import (
	"os"
	"strings"
	"time"

	"fotosort/internal/errors"
	"fotosort/internal/log"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	exif.RegisterParsers(mknote.All...)
}

// Meta is what the camera recorded about a photo.
type Meta struct {
	Taken  time.Time
	Camera string
}

// ReadMeta extracts the EXIF capture time and camera model of path. Images
// without EXIF data yield a zero Meta and no error.
func ReadMeta(path string) (Meta, error) {
	file, err := os.Open(path)
	if err != nil {
		return Meta{}, errors.NewFileError("failed to open image file for exif", path, errors.FileNotFound, err)
	}
	defer file.Close()

	x, err := exif.Decode(file)
	if err != nil {
		log.Debugf("No EXIF data found or failed to decode for %s: %v", path, err)
		return Meta{}, nil
	}

	var m Meta
	if taken, err := x.DateTime(); err == nil {
		m.Taken = taken
	}
	if model, err := x.Get(exif.Model); err == nil {
		if s, err := model.StringVal(); err == nil {
			m.Camera = strings.TrimSpace(strings.TrimRight(s, "\x00"))
		}
	}
	return m, nil
}

// IsZero reports whether nothing was recorded.
func (m Meta) IsZero() bool {
	return m.Taken.IsZero() && m.Camera == ""
}

// String renders "2006-01-02 15:04  Camera", omitting missing parts.
func (m Meta) String() string {
	var parts []string
	if !m.Taken.IsZero() {
		parts = append(parts, m.Taken.Format("2006-01-02 15:04"))
	}
	if m.Camera != "" {
		parts = append(parts, m.Camera)
	}
	return strings.Join(parts, "  ")
}
