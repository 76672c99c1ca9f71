package dataset

import (
	"fmt"
	"image"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/f3rmion/mcg/internal/transcript"
)

// FormatError reports malformed content in a data file.
type FormatError struct {
	File   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

// Bubble is one speech-bubble region of a comic. Box is kept as written in
// the file, so it may be empty or inverted.
type Bubble struct {
	Speaker string
	Box     image.Rectangle
}

// Layout is a parsed word-bubble file.
type Layout struct {
	ID       string
	Speakers []string
	Bubbles  []Bubble
}

// ParseBubbles reads a word-bubble file: the ID header, a tab separated line
// of speakers, then one NAME<tab>x1<tab>y1<tab>x2<tab>y2 line per bubble.
// Speaker labels are upper-cased.
func ParseBubbles(r io.Reader, name string, p *transcript.Parser) (*Layout, error) {
	id, body, err := p.Body(r, name)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, &FormatError{File: name, Reason: "contains no speakers"}
	}

	l := &Layout{ID: id}
	for _, s := range strings.Split(body[0], "\t") {
		if s = normalizeSpeaker(s); s != "" {
			l.Speakers = append(l.Speakers, s)
		}
	}
	if len(l.Speakers) == 0 {
		return nil, &FormatError{File: name, Reason: "contains no speakers"}
	}

	for _, line := range body[1:] {
		fields := strings.Split(line, "\t")
		speaker := normalizeSpeaker(fields[0])
		if !slices.Contains(l.Speakers, speaker) {
			return nil, &FormatError{File: name, Reason: fmt.Sprintf("does not list %s in its speakers", speaker)}
		}
		if len(fields) < 5 {
			return nil, &FormatError{File: name, Reason: fmt.Sprintf("bubble for %s needs four coordinates", speaker)}
		}
		var coords [4]int
		for i := range coords {
			n, err := strconv.Atoi(strings.TrimSpace(fields[i+1]))
			if err != nil {
				return nil, &FormatError{File: name, Reason: fmt.Sprintf("bad coordinate %q", fields[i+1])}
			}
			coords[i] = n
		}
		l.Bubbles = append(l.Bubbles, Bubble{
			Speaker: speaker,
			Box: image.Rectangle{
				Min: image.Pt(coords[0], coords[1]),
				Max: image.Pt(coords[2], coords[3]),
			},
		})
	}
	return l, nil
}

func normalizeSpeaker(s string) string {
	return strings.ToUpper(strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), ":")))
}
