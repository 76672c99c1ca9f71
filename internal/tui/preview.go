package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/draw"

	"github.com/f3rmion/mcg/internal/layout"
	"github.com/f3rmion/mcg/internal/markov"
)

const halfBlock = "▀"

// FitCells returns the largest grid of terminal cells, at most maxCols by
// maxRows, that keeps the aspect ratio of a w by h image. Each cell shows two
// vertically stacked pixels.
func FitCells(w, h, maxCols, maxRows int) (cols, rows int) {
	if w <= 0 || h <= 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}
	cols = maxCols
	rows = (h*cols/w + 1) / 2
	if rows > maxRows {
		rows = maxRows
		cols = w * rows * 2 / h
	}
	return max(cols, 1), max(rows, 1)
}

// RenderImage draws img as cols by rows half-block cells, the upper pixel in
// the foreground colour and the lower one in the background colour.
func RenderImage(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := dst.RGBAAt(col, row*2)
			bottom := dst.RGBAAt(col, row*2+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(hexColor(top)).
				Background(hexColor(bottom)).
				Render(halfBlock))
		}
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// cellWidth measures text in terminal cells. Emphasis does not change the
// width of a cell.
var cellWidth = layout.MeasureFunc(func(text string, _ markov.Style) int {
	return runewidth.StringWidth(text)
})

// RenderWords wraps a sentence to width cells and shows its emphasis with
// terminal attributes.
func RenderWords(words []markov.StyledWord, width int) string {
	lines := layout.NewWrapper(cellWidth).Wrap(words, width, false)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		parts := make([]string, 0, len(l.Words))
		for _, w := range l.Words {
			if w.Text == "" {
				continue
			}
			parts = append(parts, wordStyle(w.Style).Render(w.Text))
		}
		out = append(out, strings.Join(parts, " "))
	}
	return strings.Join(out, "\n")
}

func wordStyle(st markov.Style) lipgloss.Style {
	return LineStyle.
		Bold(st.Bold).
		Italic(st.Italic).
		Underline(st.Underline)
}
