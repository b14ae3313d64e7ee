// Package preview decodes, rotates and scales the image currently under
// review so a front-end can show it fitted to its window.
package preview

import (
	"image"
	"image/draw"
	"os"
	"sync"

	// Same decoder set the catalog probes with.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	xdraw "golang.org/x/image/draw"

	"fotosort/internal/errors"
	"fotosort/internal/log"
)

// Loader keeps the most recently displayed image so repeated display calls
// for the same path are cheap. It holds a single entry and is not a cache
// of the list.
type Loader struct {
	mu       sync.Mutex
	path     string
	base     *image.RGBA
	rotation int
	rotated  *image.RGBA
}

// NewLoader returns an empty loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load returns path decoded and rotated clockwise by rotation degrees.
func (l *Loader) Load(path string, rotation int) (*image.RGBA, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rotation = normalize(rotation)
	if l.path == path && l.base != nil {
		if l.rotation == rotation && l.rotated != nil {
			return l.rotated, nil
		}
		l.rotation = rotation
		l.rotated = Rotate(l.base, rotation)
		return l.rotated, nil
	}

	base, err := decode(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("Decoded %s (%dx%d)", path, base.Bounds().Dx(), base.Bounds().Dy())

	l.path = path
	l.base = base
	l.rotation = rotation
	l.rotated = Rotate(base, rotation)
	return l.rotated, nil
}

// Forget drops the held image, for example after its file was deleted.
func (l *Loader) Forget() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.path, l.base, l.rotated = "", nil, nil
}

func decode(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFileError("cannot open image", path, errors.FileNotFound, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.NewFileError("cannot decode image", path, errors.InvalidPath, err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

func normalize(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg - deg%90
}

// Rotate returns img turned clockwise by deg, which is rounded down to a
// multiple of 90. The source is never modified.
func Rotate(img *image.RGBA, deg int) *image.RGBA {
	deg = normalize(deg)
	if deg == 0 {
		return img
	}

	src := toRGBA(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dw, dh := w, h
	if deg != 180 {
		dw, dh = h, w
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))

	for dy := 0; dy < dh; dy++ {
		for dx := 0; dx < dw; dx++ {
			var sx, sy int
			switch deg {
			case 90:
				sx, sy = dy, h-1-dx
			case 180:
				sx, sy = w-1-dx, h-1-dy
			case 270:
				sx, sy = w-1-dy, dx
			}
			si := src.PixOffset(sx, sy)
			di := dst.PixOffset(dx, dy)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst
}

// Fit returns the largest size with the source aspect ratio that fits in
// the box. Both results are at least 1 when the box is non-empty.
func Fit(srcW, srcH, boxW, boxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || boxW <= 0 || boxH <= 0 {
		return 0, 0
	}
	// Compare boxW/srcW with boxH/srcH without floats.
	if boxW*srcH <= boxH*srcW {
		h := (srcH*boxW + srcW/2) / srcW
		return boxW, max(h, 1)
	}
	w := (srcW*boxH + srcH/2) / srcH
	return max(w, 1), boxH
}

// Scale resamples img to exactly w×h.
func Scale(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// FitTo scales img to fit a boxW×boxH area preserving aspect ratio.
func FitTo(img image.Image, boxW, boxH int) *image.RGBA {
	w, h := Fit(img.Bounds().Dx(), img.Bounds().Dy(), boxW, boxH)
	if w == 0 || h == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	return Scale(img, w, h)
}
