package markov

import "math/rand/v2"

// DefaultMaxWords bounds a walk through a cycle that never reaches a
// sentence end.
const DefaultMaxWords = 200

// Sampler walks a Chain to produce sentences.
type Sampler struct {
	chain    *Chain
	rng      *rand.Rand
	maxWords int
}

// SamplerOption configures a Sampler.
type SamplerOption func(*Sampler)

// WithMaxWords sets the sentence length cutoff. Zero disables it.
func WithMaxWords(n int) SamplerOption {
	return func(s *Sampler) {
		if n >= 0 {
			s.maxWords = n
		}
	}
}

// NewSampler creates a sampler over chain drawing from rng.
func NewSampler(chain *Chain, rng *rand.Rand, opts ...SamplerOption) *Sampler {
	s := &Sampler{
		chain:    chain,
		rng:      rng,
		maxWords: DefaultMaxWords,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sentence generates one sentence.
func (s *Sampler) Sentence() ([]StyledWord, error) {
	if len(s.chain.starts) == 0 {
		return nil, &NoTrainingDataError{Speaker: s.chain.speaker}
	}

	// A node repeated within one sentence keeps the style it got first.
	styles := make(map[int]Style)
	var words []StyledWord
	emit := func(i int) {
		n := &s.chain.nodes[i]
		st, ok := styles[i]
		if !ok {
			st = n.SampleStyle(s.rng)
			styles[i] = st
		}
		words = append(words, StyledWord{
			Key:         n.Key,
			Text:        n.Display,
			Style:       st,
			SentenceEnd: n.SentenceEnd,
		})
	}

	current := s.chain.starts[s.rng.IntN(len(s.chain.starts))]
	for {
		n := &s.chain.nodes[current]
		if !n.HasLinks() || n.SentenceEnd {
			break
		}
		if s.maxWords > 0 && len(words)+1 >= s.maxWords {
			break
		}
		emit(current)
		current, _ = n.PickLink(s.rng)
	}
	emit(current)
	return words, nil
}

// Generate produces count sentences. A count of zero or less yields none.
func (s *Sampler) Generate(count int) ([][]StyledWord, error) {
	if count <= 0 {
		return nil, nil
	}
	sentences := make([][]StyledWord, 0, count)
	for range count {
		words, err := s.Sentence()
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, words)
	}
	return sentences, nil
}
