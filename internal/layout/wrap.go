// Package layout packs styled words into lines that fit a pixel width.
package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/f3rmion/mcg/internal/markov"
)

const softHyphen = '\u00ad'

// Measurer reports the rendered width of text in pixels.
type Measurer interface {
	Measure(text string, style markov.Style) int
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string, style markov.Style) int

// Measure calls f.
func (f MeasureFunc) Measure(text string, style markov.Style) int {
	return f(text, style)
}

// Line is one wrapped line. Padding words at the front have empty text.
type Line struct {
	Words   []markov.StyledWord
	Width   int
	Padding int
}

// Text returns the visible words joined by single spaces.
func (l Line) Text() string {
	parts := make([]string, 0, len(l.Words))
	for _, w := range l.Words {
		if w.Text != "" {
			parts = append(parts, w.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Wrapper wraps words using an injected Measurer.
type Wrapper struct {
	m Measurer
}

// NewWrapper creates a Wrapper.
func NewWrapper(m Measurer) *Wrapper {
	return &Wrapper{m: m}
}

// SpaceWidth returns the width of a normal-style space.
func (w *Wrapper) SpaceWidth() int {
	return w.m.Measure(" ", markov.Style{})
}

// Wrap packs words greedily into lines no wider than widthPx, splitting
// words that are too wide on their own. With center set, each line is
// prefixed with padding words.
func (w *Wrapper) Wrap(words []markov.StyledWord, widthPx int, center bool) []Line {
	widthPx = max(widthPx, 1)
	space := w.SpaceWidth()

	var (
		lines   []Line
		current Line
	)
	for _, word := range words {
		for _, piece := range w.split(word, widthPx) {
			pw := w.m.Measure(piece.Text, piece.Style)
			if len(current.Words) > 0 && current.Width+space+pw > widthPx {
				lines = append(lines, current)
				current = Line{}
			}
			if len(current.Words) > 0 {
				current.Width += space
			}
			current.Words = append(current.Words, piece)
			current.Width += pw
		}
	}
	if len(current.Words) > 0 {
		lines = append(lines, current)
	}

	if center {
		for i := range lines {
			lines[i] = pad(lines[i], CenterPadding(lines[i].Width, widthPx, space))
		}
	}
	return lines
}

// CenterPadding returns the number of space-wide padding words that center a
// line of lineWidth in widthPx. The remainder is dropped, so lines lean
// slightly left.
func CenterPadding(lineWidth, widthPx, space int) int {
	if space <= 0 || space >= widthPx-lineWidth {
		return 0
	}
	return (widthPx - lineWidth - space) / space / 2
}

func pad(l Line, n int) Line {
	if n <= 0 {
		return l
	}
	words := make([]markov.StyledWord, n, n+len(l.Words))
	words = append(words, l.Words...)
	l.Words = words
	l.Padding = n
	return l
}

// split cuts word into pieces that fit widthPx where possible and removes
// non-printable runes from the result.
func (w *Wrapper) split(word markov.StyledWord, widthPx int) []markov.StyledWord {
	// Soft hyphens survive until the word has been cut.
	text := strings.Map(func(r rune) rune {
		if r != softHyphen && !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, word.Text)

	var pieces []markov.StyledWord
	for _, text := range w.fit(text, word.Style, widthPx, false) {
		text = Clean(text)
		if text == "" {
			continue
		}
		p := word
		p.Text = text
		pieces = append(pieces, p)
	}
	// Only the last piece closes the word.
	for i := range len(pieces) - 1 {
		pieces[i].SentenceEnd = false
	}
	return pieces
}

func (w *Wrapper) fit(text string, st markov.Style, widthPx int, hyphen bool) []string {
	candidate := text
	if hyphen {
		candidate += "-"
	}
	if utf8.RuneCountInString(Clean(text)) <= 1 || w.m.Measure(Clean(candidate), st) <= widthPx {
		return []string{candidate}
	}

	left, right := splitPoint(text)
	return append(w.fit(left, st, widthPx, true), w.fit(right, st, widthPx, hyphen)...)
}

// splitPoint divides text at its first inner soft hyphen, else its first
// inner ASCII hyphen, else the rune midpoint. The hyphen at the cut is
// dropped since the first half gets its own.
func splitPoint(text string) (string, string) {
	runes := []rune(text)
	for _, sep := range []rune{softHyphen, '-'} {
		for i := 1; i < len(runes)-1; i++ {
			if runes[i] == sep {
				return string(runes[:i]), string(runes[i+1:])
			}
		}
	}
	mid := len(runes) / 2
	return string(runes[:mid]), string(runes[mid:])
}

// Clean removes runes that cannot be printed.
func Clean(text string) string {
	return strings.Map(func(r rune) rune {
		if !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, text)
}
