package comic

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/mcg/internal/dataset"
	"github.com/f3rmion/mcg/internal/markov"
	"github.com/f3rmion/mcg/internal/render"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newEngine(t *testing.T, bubbles string) (*Engine, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, dataset.TranscriptsDir, "1.txt"),
		"1\nALICE: Hello *world*.\nBOB: Good _day_ to you.\nCAROL:\n")
	writeFile(t, filepath.Join(dir, dataset.BubblesDir, "1.tsv"), bubbles)
	writeFile(t, filepath.Join(dir, dataset.SourcesFile), "1\thttps://example.com/1\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, dataset.ImagesDir), 0755))
	require.NoError(t, imaging.Save(imaging.New(120, 80, color.White), filepath.Join(dir, dataset.ImagesDir, "1.png")))

	var logs bytes.Buffer
	logger := log.New(&logs)
	data, err := dataset.Open(dir, "", logger)
	require.NoError(t, err)
	opts := Options{Markov: markov.DefaultOptions(), MaxWords: markov.DefaultMaxWords, Render: render.DefaultOptions()}
	return NewEngine(data, opts, rand.New(rand.NewPCG(1, 2)), logger), &logs
}

const twoSpeakers = "1\nALICE\tBOB\nALICE\t0\t0\t120\t40\nBOB\t0\t0\t120\t40\nBOB\t0\t40\t120\t80\n"

func TestGenerate(t *testing.T) {
	e, logs := newEngine(t, twoSpeakers)

	c, err := e.Generate(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "1", c.ID)
	assert.Equal(t, "https://example.com/1", c.URL)
	assert.Equal(t, 120, c.Image.Bounds().Dx())

	// The second bubble shares the first one's box.
	require.Len(t, c.Panels, 2)
	assert.Equal(t, "ALICE", c.Panels[0].Speaker)
	assert.Equal(t, "BOB", c.Panels[1].Speaker)

	tr := c.Transcript(e.Sigils())
	assert.Equal(t, "1\nALICE: Hello *world*\nBOB: Good _day_ to you\n", tr)
	assert.Equal(t, tr+"\nhttps://example.com/1", c.EmbeddedText(e.Sigils()))
	assert.Contains(t, logs.String(), "building Markov graph")
}

func TestChainIsCached(t *testing.T) {
	e, _ := newEngine(t, twoSpeakers)
	a, err := e.Chain("alice:")
	require.NoError(t, err)
	b, err := e.Chain("ALICE")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 2, a.Stats().Words)
}

func TestSentences(t *testing.T) {
	e, _ := newEngine(t, twoSpeakers)
	s, err := e.Sentences("BOB", 3)
	require.NoError(t, err)
	require.Len(t, s, 3)
	for _, words := range s {
		assert.Equal(t, "Good day to you", markov.Plain(words))
	}
}

func TestGenerateNoTrainingData(t *testing.T) {
	e, _ := newEngine(t, "1\nCAROL\nCAROL\t0\t0\t10\t10\n")
	_, err := e.Generate(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, markov.ErrNoTrainingData))
}

func TestGenerateCancelled(t *testing.T) {
	e, _ := newEngine(t, twoSpeakers)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Generate(ctx, "1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNumberedPath(t *testing.T) {
	assert.Equal(t, "out3.png", NumberedPath("out.png", 3))
	assert.Equal(t, "dir/default out0.txt", NumberedPath("dir/default out.txt", 0))
	assert.Equal(t, "noext1", NumberedPath("noext", 1))

	o := Output{TextPath: "a.txt"}.Numbered(2)
	assert.Equal(t, "a2.txt", o.TextPath)
	assert.Empty(t, o.ImagePath)
}

func TestWrite(t *testing.T) {
	e, _ := newEngine(t, twoSpeakers)
	c, err := e.Generate(context.Background(), "1")
	require.NoError(t, err)

	dir := t.TempDir()
	out := Output{
		TextPath:  filepath.Join(dir, "out.txt"),
		ImagePath: filepath.Join(dir, "out.png"),
		Top:       imaging.New(100, 20, color.Black),
	}
	require.NoError(t, Write(c, out, e.Sigils()))

	text, err := os.ReadFile(out.TextPath)
	require.NoError(t, err)
	assert.Equal(t, c.Transcript(e.Sigils()), string(text))

	data, err := os.ReadFile(out.ImagePath)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())

	chunks, err := render.ReadText(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, chunks, 4)
	assert.True(t, strings.HasSuffix(chunks[0].Text, "https://example.com/1"))
}

func TestWriteFailure(t *testing.T) {
	c := &Comic{ID: "1", Image: imaging.New(1, 1, color.White)}
	err := Write(c, Output{TextPath: filepath.Join(t.TempDir(), "missing", "out.txt")}, markov.DefaultSigils())
	var oerr *OutputError
	require.ErrorAs(t, err, &oerr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
