package preview

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const halfBlock = "▀"

// RenderBlocks draws img into at most cols×rows terminal cells. Each cell
// carries two vertically stacked pixels: the upper one as foreground of
// "▀" and the lower one as background.
func RenderBlocks(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	fitted := FitTo(img, cols, rows*2)
	w, h := fitted.Bounds().Dx(), fitted.Bounds().Dy()
	if w == 0 || h == 0 {
		return ""
	}

	var sb strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			style := lipgloss.NewStyle().Foreground(hex(fitted, x, y))
			if y+1 < h {
				style = style.Background(hex(fitted, x, y+1))
			}
			sb.WriteString(style.Render(halfBlock))
		}
	}
	return sb.String()
}

func hex(img *image.RGBA, x, y int) lipgloss.Color {
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+3]
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", p[0], p[1], p[2]))
}
