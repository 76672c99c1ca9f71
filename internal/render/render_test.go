package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/mcg/internal/fonts"
	"github.com/f3rmion/mcg/internal/markov"
)

func styled(text string) []markov.StyledWord {
	var out []markov.StyledWord
	for _, f := range strings.Fields(text) {
		out = append(out, markov.StyledWord{Key: f, Text: f})
	}
	return out
}

func TestTextColor(t *testing.T) {
	tests := []struct {
		name string
		fill color.Color
		want color.NRGBA
	}{
		{"white", color.White, color.NRGBA{0, 0, 0, 255}},
		{"black", color.Black, color.NRGBA{255, 255, 255, 255}},
		{"grey", color.NRGBA{100, 100, 100, 255}, color.NRGBA{105, 105, 105, 255}},
		{"mixed", color.NRGBA{170, 0, 20, 255}, color.NRGBA{0, 255, 225, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := imaging.New(10, 10, tt.fill)
			assert.Equal(t, tt.want, TextColor(img, image.Rect(2, 2, 8, 8)))
		})
	}

	img := imaging.New(10, 10, color.Black)
	assert.Equal(t, color.NRGBA{A: 255}, TextColor(img, image.Rect(20, 20, 30, 30)))
}

func TestFit(t *testing.T) {
	r := NewRenderer(fonts.Default(), DefaultOptions(), log.New(&bytes.Buffer{}))

	fit := r.Fit(styled("hello there how are you today"), image.Rect(0, 0, 200, 80))
	require.True(t, fit.Fits)
	assert.NotEmpty(t, fit.Lines)
	assert.LessOrEqual(t, len(fit.Lines)*fit.Faces.Height(), 80)
	assert.LessOrEqual(t, fit.Faces.Size(), 96)

	tiny := r.Fit(styled("this will never fit in two pixels"), image.Rect(0, 0, 2, 2))
	assert.False(t, tiny.Fits)
	assert.Equal(t, 1, tiny.Faces.Size())
}

func TestFitShrinksForLongText(t *testing.T) {
	r := NewRenderer(fonts.Default(), Options{SizeScale: DefaultSizeScale}, nil)
	box := image.Rect(0, 0, 200, 60)
	short := r.Fit(styled("hi"), box)
	long := r.Fit(styled(strings.Repeat("many words here ", 10)), box)
	require.True(t, short.Fits)
	require.True(t, long.Fits)
	assert.Greater(t, short.Faces.Size(), long.Faces.Size())
}

func TestDraw(t *testing.T) {
	dc := gg.NewContext(200, 100)
	dc.SetColor(color.White)
	dc.Clear()

	var logs bytes.Buffer
	r := NewRenderer(fonts.Default(), DefaultOptions(), log.New(&logs))
	words := styled("hello there")
	words[1].Style = markov.Style{Bold: true, Underline: true}
	box := image.Rect(20, 20, 180, 80)
	fit := r.Draw(dc, words, box)
	require.True(t, fit.Fits)

	img := dc.Image()
	dark := false
	for y := box.Min.Y; y < box.Max.Y && !dark; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			c := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if c.Y < 128 {
				dark = true
				break
			}
		}
	}
	assert.True(t, dark, "expected text pixels inside the box")

	for _, p := range []image.Point{{0, 0}, {199, 99}, {10, 50}, {190, 50}} {
		c := color.GrayModel.Convert(img.At(p.X, p.Y)).(color.Gray)
		assert.Equal(t, uint8(255), c.Y, "pixel %v outside the box changed", p)
	}
	assert.NotContains(t, logs.String(), "overflows")

	r.Draw(dc, styled("far too much text for this"), image.Rect(0, 0, 3, 3))
	assert.Contains(t, logs.String(), "overflows")
}

func TestLatin1(t *testing.T) {
	assert.Equal(t, []byte("a?\xe9"), Latin1("a€é"))
}

func TestEncodePNG(t *testing.T) {
	img := imaging.New(4, 4, color.NRGBA{10, 20, 30, 255})
	text := "1\nALICE: héllo ☺\n\nhttps://example.com/1"

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, img, text, EncodeOptions{}))

	decoded, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 4, decoded.Bounds().Dx())

	chunks, err := ReadText(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	latin := "1\nALICE: héllo ?\n\nhttps://example.com/1"
	assert.Equal(t, []TextChunk{
		{Kind: "iTXt", Keyword: KeyTranscript, Text: text},
		{Kind: "tEXt", Keyword: KeyTranscript, Text: latin},
		{Kind: "tEXt", Keyword: KeyComment, Text: latin},
		{Kind: "iTXt", Keyword: KeyComment, Text: text},
	}, chunks)
}

func TestEncodePNGForWeb(t *testing.T) {
	img := imaging.New(8, 8, color.NRGBA{200, 10, 10, 255})
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, img, "1", EncodeOptions{ForWeb: true}))

	decoded, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	_, ok := decoded.(*image.Paletted)
	assert.True(t, ok)
}

func TestReadTextRejectsNonPNG(t *testing.T) {
	_, err := ReadText(strings.NewReader("GIF89a"))
	assert.ErrorIs(t, err, ErrNotPNG)
}

func TestStackTop(t *testing.T) {
	red := color.NRGBA{255, 0, 0, 255}
	blue := color.NRGBA{0, 0, 255, 255}
	out := StackTop(imaging.New(10, 5, red), imaging.New(8, 7, blue))

	assert.Equal(t, image.Rect(0, 0, 10, 12), out.Bounds())
	assert.Equal(t, red, out.NRGBAAt(0, 0))
	assert.Equal(t, blue, out.NRGBAAt(0, 5))
	assert.Equal(t, uint8(0), out.NRGBAAt(9, 11).A)
}
