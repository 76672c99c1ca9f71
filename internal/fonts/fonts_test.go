package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/f3rmion/mcg/internal/layout"
	"github.com/f3rmion/mcg/internal/markov"
)

var _ layout.Measurer = (*Faces)(nil)

func TestSlotFor(t *testing.T) {
	assert.Equal(t, Regular, SlotFor(markov.Style{}))
	assert.Equal(t, Regular, SlotFor(markov.Style{Underline: true}))
	assert.Equal(t, Bold, SlotFor(markov.Style{Bold: true}))
	assert.Equal(t, Italic, SlotFor(markov.Style{Italic: true}))
	assert.Equal(t, BoldItalic, SlotFor(markov.Style{Bold: true, Italic: true, Underline: true}))
}

func TestDiscover(t *testing.T) {
	p := Discover([]string{
		"fonts/Comic-Regular.ttf",
		"fonts/Comic-BoldOblique.ttf",
		"fonts/Comic-Bold.ttf",
		"fonts/Comic-Italic.ttf",
		"fonts/Other.ttf",
	})
	assert.Equal(t, Paths{
		Regular:    "fonts/Comic-Regular.ttf",
		Bold:       "fonts/Comic-Bold.ttf",
		Italic:     "fonts/Comic-Italic.ttf",
		BoldItalic: "fonts/Comic-BoldOblique.ttf",
	}, p)
}

func TestMerge(t *testing.T) {
	p := Paths{Bold: "b.ttf"}.Merge(Paths{Regular: "r.ttf", Bold: "x.ttf"})
	assert.Equal(t, Paths{Regular: "r.ttf", Bold: "b.ttf"}, p)
}

func TestFacesMeasure(t *testing.T) {
	faces := Default().Faces(24)
	assert.Equal(t, 24, faces.Size())

	short := faces.Measure("hi", markov.Style{})
	long := faces.Measure("hello there", markov.Style{})
	assert.Greater(t, short, 0)
	assert.Greater(t, long, short)
	assert.Greater(t, faces.Measure("hello there", markov.Style{Bold: true}), 0)
	assert.Equal(t, 0, faces.Measure("", markov.Style{}))

	assert.Greater(t, faces.Height(), 0)
	assert.Greater(t, faces.Ascent(), 0)
	assert.LessOrEqual(t, faces.Ascent(), faces.Height())

	bigger := Default().Faces(48)
	assert.Greater(t, bigger.Measure("hello there", markov.Style{}), long)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0644))

	s, err := Load(Paths{Regular: path})
	require.NoError(t, err)
	assert.NotNil(t, s.Faces(12).Face(markov.Style{}))

	_, err = Load(Paths{Bold: filepath.Join(dir, "missing.ttf")})
	assert.ErrorContains(t, err, "reading bold font")

	junk := filepath.Join(dir, "junk.ttf")
	require.NoError(t, os.WriteFile(junk, []byte("not a font"), 0644))
	_, err = Load(Paths{Italic: junk})
	assert.ErrorContains(t, err, "parsing italic font")
}
