// Package clipboard copies comic transcripts to the system clipboard.
package clipboard

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard utility is installed.
var ErrUnavailable = errors.New("clipboard unavailable")

// Available reports whether the system clipboard can be written.
func Available() bool {
	return !clipboard.Unsupported
}

// Write copies text to the system clipboard.
func Write(text string) error {
	if !Available() {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Transcript returns a transcript without its leading ID line, ready for
// pasting into a post.
func Transcript(transcript string) string {
	_, body, found := strings.Cut(transcript, "\n")
	if !found {
		return transcript
	}
	return strings.TrimRight(body, "\n")
}
