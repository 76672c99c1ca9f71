package markov

import (
	"math/rand/v2"
	"strings"
	"unicode"
)

// sentenceEndings are the suffixes that close a sentence, checked after
// emphasis sigils have been removed.
var sentenceEndings = []string{".", "?", "!", `."`, `?"`, `!"`, ".'", "?'", "!'"}

// Options control how tokens become nodes.
type Options struct {
	// RandomizeCapitals flips the case of each letter of a new word's display
	// text with probability 0.5. The result is fixed for the node's lifetime.
	RandomizeCapitals bool
	// KeepPunctuation displays a word with the surrounding punctuation of its
	// first sighting instead of the bare key.
	KeepPunctuation bool
	Sigils          Sigils
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{Sigils: DefaultSigils()}
}

// Builder turns dialogue lines into a Chain.
type Builder struct {
	opts  Options
	rng   *rand.Rand
	chain *Chain
}

// NewBuilder creates a builder. rng drives capitalization randomization only.
func NewBuilder(opts Options, rng *rand.Rand) *Builder {
	return &Builder{opts: opts, rng: rng}
}

// token is a usable word of a line after normalization.
type token struct {
	key     string
	surface string
	style   Style
	end     bool
}

// Ingest adds every line spoken by speaker to the chain. The first call
// fixes the chain's speaker label; lines of other speakers are ignored.
func (b *Builder) Ingest(lines []Line, speaker string) {
	if b.chain == nil {
		b.chain = newChain(speaker)
	}
	c := b.chain

	// The previous word carries over between lines of one call, so a line
	// that does not end a sentence continues into the next one.
	previous := -1
	for _, line := range lines {
		if !SameSpeaker(line.Speaker, speaker) {
			continue
		}
		tokens := b.tokenize(line.Tokens)
		if len(tokens) == 0 {
			continue
		}

		for _, tok := range tokens {
			current := c.add(tok.key, b.display(tok), tok.end)
			switch {
			case previous < 0, c.nodes[previous].SentenceEnd:
				c.starts = append(c.starts, current)
			default:
				c.nodes[previous].AddLink(current)
			}
			c.nodes[current].RecordOccurrence(tok.style)

			c.words++
			if tok.end {
				c.sentences++
			}
			previous = current
		}
	}
}

// Chain returns the graph built so far. It is never nil.
func (b *Builder) Chain() *Chain {
	if b.chain == nil {
		b.chain = newChain("")
	}
	return b.chain
}

// Stats returns the counts of the graph built so far.
func (b *Builder) Stats() Stats {
	return b.Chain().Stats()
}

func (b *Builder) tokenize(raw []string) []token {
	tokens := make([]token, 0, len(raw))
	for _, r := range raw {
		style, surface := b.opts.Sigils.Detect(r)
		key := Normalize(surface)
		if key == "" {
			continue
		}
		tokens = append(tokens, token{
			key:     key,
			surface: surface,
			style:   style,
			end:     isSentenceEnd(surface),
		})
	}
	if len(tokens) > 0 {
		tokens[len(tokens)-1].end = true
	}
	return tokens
}

func (b *Builder) display(tok token) string {
	text := tok.key
	if b.opts.KeepPunctuation {
		text = tok.surface
	}
	if !b.opts.RandomizeCapitals || b.rng == nil {
		return text
	}
	return strings.Map(func(r rune) rune {
		if upper, _ := RandomBool(b.rng, 0.5); upper {
			return unicode.ToUpper(r)
		}
		return unicode.ToLower(r)
	}, text)
}

// Normalize strips leading and trailing runes that are neither letters nor
// digits. The result is the node key of a sigil-free token.
func Normalize(token string) string {
	return strings.TrimFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isSentenceEnd(surface string) bool {
	for _, suffix := range sentenceEndings {
		if strings.HasSuffix(surface, suffix) {
			return true
		}
	}
	return false
}
