package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/charmbracelet/lipgloss"
)

// imageCells renders img into a grid of at most maxCols x maxRows terminal
// cells. Each cell carries two vertically stacked pixels via the upper
// half-block glyph, so the pixel budget is maxCols x (maxRows * 2).
func imageCells(img image.Image, maxCols, maxRows int) string {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w == 0 || h == 0 || maxCols < 1 || maxRows < 1 {
		return ""
	}

	cols, rows := cellGrid(w, h, maxCols, maxRows)
	small := transform.Resize(img, cols, rows*2, transform.Lanczos)

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := cellColor(small, x, y*2)
			bot := cellColor(small, x, y*2+1)
			b.WriteString(lipgloss.NewStyle().Foreground(top).Background(bot).Render("▀"))
		}
		if y < rows-1 {
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// cellGrid fits a w x h image into a maxCols x maxRows cell grid,
// preserving aspect ratio at two pixels per cell row.
func cellGrid(w, h, maxCols, maxRows int) (int, int) {
	maxPxY := maxRows * 2

	cols, pxY := w, h
	if cols > maxCols || pxY > maxPxY {
		if w*maxPxY >= h*maxCols {
			cols = maxCols
			pxY = h * maxCols / w
		} else {
			pxY = maxPxY
			cols = w * maxPxY / h
		}
	}

	rows := pxY / 2
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

func cellColor(img image.Image, x, y int) lipgloss.Color {
	r, g, b, _ := img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// placeholder fills a slot when no preview is available.
func placeholder(cols, rows int) string {
	line := strings.Repeat("·", cols)
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return helpStyle.Render(strings.Join(lines, "\n"))
}
