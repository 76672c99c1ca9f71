// Package markov builds word-level Markov chains from speaker-attributed
// dialogue and walks them to generate sentences.
//
// Nodes live in an arena owned by a Chain and refer to each other by index.
// Transition frequency is encoded by repetition in a node's link list, and
// sentence starts are likewise kept as a list with repeats.
package markov

import (
	"strings"
)

// Line is one line of dialogue as extracted from a transcript.
type Line struct {
	Speaker string
	Tokens  []string
}

// SameSpeaker compares speaker labels ignoring case and a trailing colon.
func SameSpeaker(a, b string) bool {
	return strings.EqualFold(normalizeSpeaker(a), normalizeSpeaker(b))
}

func normalizeSpeaker(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), ":"))
}

// Stats describes what went into a chain.
type Stats struct {
	Words     int // word occurrences ingested
	Sentences int // sentence-ending occurrences ingested
	Nodes     int // distinct words
	Starts    int // sentence-start entries, repeats included
}

// WordsPerSentence returns the average sentence length of the corpus.
func (s Stats) WordsPerSentence() float64 {
	if s.Sentences == 0 {
		return 0
	}
	return float64(s.Words) / float64(s.Sentences)
}

// Chain is the word graph of one speaker.
type Chain struct {
	speaker string
	nodes   []Node
	index   map[string]int
	starts  []int

	words     int
	sentences int
}

func newChain(speaker string) *Chain {
	return &Chain{
		speaker: speaker,
		index:   make(map[string]int),
	}
}

// Speaker returns the label the chain was built for.
func (c *Chain) Speaker() string {
	return c.speaker
}

// Len returns the number of distinct words.
func (c *Chain) Len() int {
	return len(c.nodes)
}

// Node returns the node at arena index i.
func (c *Chain) Node(i int) *Node {
	return &c.nodes[i]
}

// Lookup returns the node for a normalized word.
func (c *Chain) Lookup(key string) (*Node, bool) {
	i, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return &c.nodes[i], true
}

// Starts returns the sentence-start words in recording order, repeats included.
func (c *Chain) Starts() []string {
	keys := make([]string, len(c.starts))
	for i, idx := range c.starts {
		keys[i] = c.nodes[idx].Key
	}
	return keys
}

// Stats returns corpus and graph counts.
func (c *Chain) Stats() Stats {
	return Stats{
		Words:     c.words,
		Sentences: c.sentences,
		Nodes:     len(c.nodes),
		Starts:    len(c.starts),
	}
}

// add returns the index of key, creating the node when missing.
func (c *Chain) add(key, display string, sentenceEnd bool) int {
	if i, ok := c.index[key]; ok {
		return i
	}
	c.nodes = append(c.nodes, Node{
		Key:         key,
		Display:     display,
		SentenceEnd: sentenceEnd,
	})
	i := len(c.nodes) - 1
	c.index[key] = i
	return i
}
