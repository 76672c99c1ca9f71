package markov

import (
	"strings"
)

// Style is the emphasis of a word: detected on a training occurrence, or
// sampled for a generated word.
type Style struct {
	Bold      bool
	Italic    bool
	Underline bool
}

// IsNormal reports whether no emphasis is set.
func (s Style) IsNormal() bool {
	return !s.Bold && !s.Italic && !s.Underline
}

// Sigils are the marker characters used in transcripts for emphasis.
type Sigils struct {
	Bold      rune
	Italic    rune
	Underline rune
}

// DefaultSigils returns the transcript convention: *bold*, /italic/, _underline_.
func DefaultSigils() Sigils {
	return Sigils{Bold: '*', Italic: '/', Underline: '_'}
}

// Detect reports which sigils occur anywhere in token and returns the token
// with every sigil removed.
func (s Sigils) Detect(token string) (Style, string) {
	st := Style{
		Bold:      strings.ContainsRune(token, s.Bold),
		Italic:    strings.ContainsRune(token, s.Italic),
		Underline: strings.ContainsRune(token, s.Underline),
	}
	if st.IsNormal() {
		return st, token
	}

	stripped := strings.Map(func(r rune) rune {
		if r == s.Bold || r == s.Italic || r == s.Underline {
			return -1
		}
		return r
	}, token)
	return st, stripped
}

// Wrap surrounds text with the sigils for st, underline outermost and bold
// innermost: _/*word*/_.
func (s Sigils) Wrap(text string, st Style) string {
	var prefix, suffix string
	if st.Bold {
		prefix = string(s.Bold) + prefix
		suffix += string(s.Bold)
	}
	if st.Italic {
		prefix = string(s.Italic) + prefix
		suffix += string(s.Italic)
	}
	if st.Underline {
		prefix = string(s.Underline) + prefix
		suffix += string(s.Underline)
	}
	return prefix + text + suffix
}

// StyledWord is one generated word with its emphasis resolved for a single
// generation pass.
type StyledWord struct {
	Key         string
	Text        string
	Style       Style
	SentenceEnd bool
}

// Format renders a sentence the way transcripts write it, with emphasis
// sigils around styled words.
func Format(words []StyledWord, sigils Sigils) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, sigils.Wrap(w.Text, w.Style))
	}
	return strings.Join(parts, " ")
}

// Plain renders a sentence without emphasis markers.
func Plain(words []StyledWord) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}
