// Package fonts loads the four font slots used for word-bubble text and
// creates sized faces from them.
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/f3rmion/mcg/internal/markov"
)

// Slot selects one of the four fonts of a Set.
type Slot int

// Font slots. Underline is drawn, so it has no slot.
const (
	Regular Slot = iota
	Bold
	Italic
	BoldItalic
	numSlots
)

func (s Slot) String() string {
	switch s {
	case Regular:
		return "regular"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bold italic"
	}
	return fmt.Sprintf("Slot(%d)", int(s))
}

// SlotFor returns the slot that renders st.
func SlotFor(st markov.Style) Slot {
	switch {
	case st.Bold && st.Italic:
		return BoldItalic
	case st.Bold:
		return Bold
	case st.Italic:
		return Italic
	}
	return Regular
}

// Paths names font files per slot. Empty entries use the built-in Go fonts.
type Paths struct {
	Regular    string `yaml:"regular,omitempty" mapstructure:"regular"`
	Bold       string `yaml:"bold,omitempty" mapstructure:"bold"`
	Italic     string `yaml:"italic,omitempty" mapstructure:"italic"`
	BoldItalic string `yaml:"bold_italic,omitempty" mapstructure:"bold_italic"`
}

func (p Paths) get(s Slot) string {
	switch s {
	case Bold:
		return p.Bold
	case Italic:
		return p.Italic
	case BoldItalic:
		return p.BoldItalic
	}
	return p.Regular
}

// Merge returns p with its empty entries taken from fallback.
func (p Paths) Merge(fallback Paths) Paths {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	return Paths{
		Regular:    pick(p.Regular, fallback.Regular),
		Bold:       pick(p.Bold, fallback.Bold),
		Italic:     pick(p.Italic, fallback.Italic),
		BoldItalic: pick(p.BoldItalic, fallback.BoldItalic),
	}
}

// Discover assigns font files to slots by their names. The first file that
// is neither bold nor italic becomes the regular font.
func Discover(files []string) Paths {
	var p Paths
	for _, f := range files {
		name := strings.ToLower(filepath.Base(f))
		bold := strings.Contains(name, "bold")
		italic := strings.Contains(name, "italic") || strings.Contains(name, "oblique")
		var dst *string
		switch {
		case bold && italic:
			dst = &p.BoldItalic
		case bold:
			dst = &p.Bold
		case italic:
			dst = &p.Italic
		default:
			dst = &p.Regular
		}
		if *dst == "" {
			*dst = f
		}
	}
	return p
}

var builtin = [numSlots][]byte{
	Regular:    goregular.TTF,
	Bold:       gobold.TTF,
	Italic:     goitalic.TTF,
	BoldItalic: gobolditalic.TTF,
}

// Set holds one parsed font per slot.
type Set struct {
	fonts [numSlots]*truetype.Font
}

// Load parses the fonts named by p, falling back to the Go fonts.
func Load(p Paths) (*Set, error) {
	s := &Set{}
	for slot := Regular; slot < numSlots; slot++ {
		data := builtin[slot]
		if path := p.get(slot); path != "" {
			b, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading %s font: %w", slot, err)
			}
			data = b
		}
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s font: %w", slot, err)
		}
		s.fonts[slot] = f
	}
	return s, nil
}

// Default returns the built-in Go fonts.
func Default() *Set {
	s, err := Load(Paths{})
	if err != nil {
		panic(err)
	}
	return s
}

// Faces creates faces of the given pixel size.
func (s *Set) Faces(size int) *Faces {
	size = max(size, 1)
	f := &Faces{size: size}
	for slot := Regular; slot < numSlots; slot++ {
		f.faces[slot] = truetype.NewFace(s.fonts[slot], &truetype.Options{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingNone,
		})
	}
	return f
}

// Faces is a Set at one size. It implements layout.Measurer.
type Faces struct {
	size  int
	faces [numSlots]font.Face
}

// Size returns the pixel size the faces were created with.
func (f *Faces) Size() int {
	return f.size
}

// Face returns the face that renders st.
func (f *Faces) Face(st markov.Style) font.Face {
	return f.faces[SlotFor(st)]
}

// Measure returns the advance width of text in pixels.
func (f *Faces) Measure(text string, st markov.Style) int {
	return font.MeasureString(f.Face(st), text).Ceil()
}

// Height returns the tallest line height of the four faces.
func (f *Faces) Height() int {
	h := 0
	for _, face := range f.faces {
		h = max(h, face.Metrics().Height.Ceil())
	}
	return h
}

// Ascent returns the largest ascent of the four faces.
func (f *Faces) Ascent() int {
	a := 0
	for _, face := range f.faces {
		a = max(a, face.Metrics().Ascent.Ceil())
	}
	return a
}
