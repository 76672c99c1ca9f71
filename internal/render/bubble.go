// Package render draws generated text into comic images and encodes the
// result as PNG with the transcript embedded.
package render

import (
	"image"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"

	"github.com/f3rmion/mcg/internal/fonts"
	"github.com/f3rmion/mcg/internal/layout"
	"github.com/f3rmion/mcg/internal/markov"
)

// DefaultSizeScale relates the starting font size to the bubble height.
// Glyphs are smaller than the nominal size, so the search starts above it.
const DefaultSizeScale = 1.2

// Options configure bubble rendering.
type Options struct {
	Center    bool
	SizeScale float64
}

// DefaultOptions returns centered text with the default size scale.
func DefaultOptions() Options {
	return Options{Center: true, SizeScale: DefaultSizeScale}
}

// Renderer fits and draws word bubbles.
type Renderer struct {
	fonts  *fonts.Set
	opts   Options
	logger *log.Logger
}

// NewRenderer creates a Renderer. A nil logger uses the default logger.
func NewRenderer(set *fonts.Set, opts Options, logger *log.Logger) *Renderer {
	if opts.SizeScale <= 0 {
		opts.SizeScale = DefaultSizeScale
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{fonts: set, opts: opts, logger: logger}
}

// Fit is the result of fitting words into a bubble.
type Fit struct {
	Faces *fonts.Faces
	Lines []layout.Line
	Fits  bool
}

// Fit finds the largest font size at which words wrap inside box. When even
// size 1 overflows, the size 1 layout is returned with Fits unset.
func (r *Renderer) Fit(words []markov.StyledWord, box image.Rectangle) Fit {
	width, height := max(box.Dx(), 1), max(box.Dy(), 1)
	size := max(int(float64(height)*r.opts.SizeScale), 1)
	for {
		faces := r.fonts.Faces(size)
		lines := layout.NewWrapper(faces).Wrap(words, width, r.opts.Center)
		if fits(faces, lines, width, height) {
			return Fit{Faces: faces, Lines: lines, Fits: true}
		}
		if size == 1 {
			return Fit{Faces: faces, Lines: lines}
		}
		size--
	}
}

func fits(faces *fonts.Faces, lines []layout.Line, width, height int) bool {
	space := faces.Measure(" ", markov.Style{})
	lineHeight := faces.Height()
	total := 0
	for _, l := range lines {
		w := -space
		for _, word := range l.Words {
			w += faces.Measure(word.Text+" ", word.Style)
		}
		if w > width {
			return false
		}
		total += lineHeight
	}
	return total <= height
}

// Draw fits words into box and draws them on dc, clipped to the box, in a
// colour chosen against the box background.
func (r *Renderer) Draw(dc *gg.Context, words []markov.StyledWord, box image.Rectangle) Fit {
	fit := r.Fit(words, box)
	if !fit.Fits {
		r.logger.Warn("text overflows word bubble", "box", box, "words", len(words))
	}

	dc.Push()
	defer dc.Pop()

	dc.DrawRectangle(float64(box.Min.X), float64(box.Min.Y), float64(box.Dx()), float64(box.Dy()))
	dc.Clip()

	c := TextColor(dc.Image(), box)
	dc.SetColor(c)
	dc.SetLineWidth(max(1, float64(fit.Faces.Size())/16))

	lineHeight := float64(fit.Faces.Height())
	ascent := float64(fit.Faces.Ascent())
	y := float64(box.Min.Y)
	for _, l := range fit.Lines {
		x := float64(box.Min.X)
		baseline := y + ascent
		for _, word := range l.Words {
			advance := float64(fit.Faces.Measure(word.Text+" ", word.Style))
			if word.Text != "" {
				dc.SetFontFace(fit.Faces.Face(word.Style))
				dc.DrawString(word.Text, x, baseline)
				if word.Style.Underline {
					w := float64(fit.Faces.Measure(word.Text, word.Style))
					under := baseline + max(1, lineHeight-ascent)/2
					dc.DrawLine(x, under, x+w, under)
					dc.Stroke()
				}
			}
			x += advance
		}
		y += lineHeight
	}
	r.logger.Debug("drew word bubble", "box", box, "size", fit.Faces.Size(), "lines", len(fit.Lines))
	return fit
}
