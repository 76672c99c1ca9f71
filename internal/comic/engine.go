// Package comic runs the generation pipeline: it builds one chain per
// character, fills every word bubble of a comic with a generated sentence and
// assembles the transcript.
package comic

import (
	"context"
	"fmt"
	"image"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"

	"github.com/f3rmion/mcg/internal/dataset"
	"github.com/f3rmion/mcg/internal/fonts"
	"github.com/f3rmion/mcg/internal/markov"
	"github.com/f3rmion/mcg/internal/render"
)

// Options configure an Engine.
type Options struct {
	Markov   markov.Options
	MaxWords int
	Render   render.Options
	Fonts    *fonts.Set // nil selects the built-in fonts
}

// Engine generates comics from one data directory. Chains are built on first
// use and kept for the engine's lifetime. An Engine is not safe for
// concurrent use.
type Engine struct {
	data     *dataset.Dataset
	opts     Options
	rng      *rand.Rand
	renderer *render.Renderer
	logger   *log.Logger

	chains map[string]*markov.Chain
}

// NewEngine creates an Engine drawing all randomness from rng.
func NewEngine(data *dataset.Dataset, opts Options, rng *rand.Rand, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Fonts == nil {
		opts.Fonts = fonts.Default()
	}
	return &Engine{
		data:     data,
		opts:     opts,
		rng:      rng,
		renderer: render.NewRenderer(opts.Fonts, opts.Render, logger),
		logger:   logger,
		chains:   make(map[string]*markov.Chain),
	}
}

// Sigils returns the emphasis markers used for transcripts.
func (e *Engine) Sigils() markov.Sigils {
	return e.opts.Markov.Sigils
}

// Chain returns the chain of a character, building it from the corpus on
// first request.
func (e *Engine) Chain(speaker string) (*markov.Chain, error) {
	key := strings.ToUpper(strings.TrimSpace(strings.TrimRight(speaker, ":")))
	if c, ok := e.chains[key]; ok {
		return c, nil
	}

	lines, err := e.data.Corpus()
	if err != nil {
		return nil, err
	}
	e.logger.Info("building Markov graph", "speaker", key)
	b := markov.NewBuilder(e.opts.Markov, e.rng)
	b.Ingest(lines, key)
	c := b.Chain()

	st := c.Stats()
	if st.Sentences > 0 {
		e.logger.Info("character stats", "speaker", key, "words", st.Words, "sentences", st.Sentences,
			"words_per_sentence", fmt.Sprintf("%.2f", st.WordsPerSentence()))
	} else {
		e.logger.Info("character stats", "speaker", key, "words", st.Words)
	}

	e.chains[key] = c
	return c, nil
}

// Sentences generates n sentences for a character.
func (e *Engine) Sentences(speaker string, n int) ([][]markov.StyledWord, error) {
	c, err := e.Chain(speaker)
	if err != nil {
		return nil, err
	}
	return e.sampler(c).Generate(n)
}

func (e *Engine) sampler(c *markov.Chain) *markov.Sampler {
	return markov.NewSampler(c, e.rng, markov.WithMaxWords(e.opts.MaxWords))
}

// RandomID picks a comic with a word-bubble file.
func (e *Engine) RandomID() (string, error) {
	return e.data.RandomComicID(e.rng)
}

// Panel is one filled word bubble.
type Panel struct {
	Speaker string
	Box     image.Rectangle
	Words   []markov.StyledWord
	Fits    bool
}

// Comic is a generated comic.
type Comic struct {
	ID     string
	URL    string
	Image  image.Image
	Panels []Panel
}

// Transcript returns the ID line followed by one "NAME: words" line per
// panel, with emphasis written as sigils.
func (c *Comic) Transcript(sigils markov.Sigils) string {
	var b strings.Builder
	b.WriteString(c.ID)
	b.WriteByte('\n')
	for _, p := range c.Panels {
		b.WriteString(p.Speaker)
		b.WriteString(": ")
		b.WriteString(markov.Format(p.Words, sigils))
		b.WriteByte('\n')
	}
	return b.String()
}

// EmbeddedText returns the transcript followed by the source URL, as stored
// in the image file.
func (c *Comic) EmbeddedText(sigils markov.Sigils) string {
	return c.Transcript(sigils) + "\n" + c.URL
}

// Generate fills the comic with the given ID. Consecutive bubbles with the
// same box are shared by their speakers and filled once.
func (e *Engine) Generate(ctx context.Context, id string) (*Comic, error) {
	l, err := e.data.Bubbles(id)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("loaded word bubbles", "comic", id, "speakers", strings.Join(l.Speakers, ","), "bubbles", len(l.Bubbles))

	samplers := make(map[string]*markov.Sampler, len(l.Speakers))
	for _, speaker := range l.Speakers {
		c, err := e.Chain(speaker)
		if err != nil {
			return nil, err
		}
		samplers[speaker] = e.sampler(c)
	}

	img, err := e.data.Image(id)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContextForImage(img)

	comic := &Comic{ID: id}
	previous := image.Rectangle{Min: image.Pt(-1, -1), Max: image.Pt(-1, -1)}
	for _, bubble := range l.Bubbles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if bubble.Box == previous {
			continue
		}
		previous = bubble.Box

		words, err := samplers[bubble.Speaker].Sentence()
		if err != nil {
			return nil, fmt.Errorf("generating text for %s: %w", bubble.Speaker, err)
		}
		fit := e.renderer.Draw(dc, words, bubble.Box)
		comic.Panels = append(comic.Panels, Panel{
			Speaker: bubble.Speaker,
			Box:     bubble.Box,
			Words:   words,
			Fits:    fit.Fits,
		})
		e.logger.Debug("filled bubble", "speaker", bubble.Speaker, "text", markov.Format(words, e.Sigils()))
	}
	comic.Image = dc.Image()

	url, err := e.data.SourceURL(id)
	if err != nil {
		e.logger.Warn("no source URL", "comic", id, "err", err)
	}
	comic.URL = url
	return comic, nil
}
