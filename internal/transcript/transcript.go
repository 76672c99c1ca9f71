// Package transcript reads the ID-headed text files that hold comic dialogue
// and word-bubble layouts.
package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/f3rmion/mcg/internal/markov"
)

// DefaultCommentMark starts a comment that runs to the end of the line.
const DefaultCommentMark = "}}"

// HeaderError reports a file whose first non-comment line is not its ID.
type HeaderError struct {
	File  string
	Found string
}

func (e *HeaderError) Error() string {
	if e.Found == "" {
		return fmt.Sprintf("%s: missing ID header", e.File)
	}
	return fmt.Sprintf("%s: ID header %q does not match file name", e.File, e.Found)
}

// Transcript is one parsed transcript file.
type Transcript struct {
	ID    string
	Lines []markov.Line
}

// Parser reads files using one comment marker.
type Parser struct {
	CommentMark string
}

// NewParser creates a parser. An empty mark selects DefaultCommentMark.
func NewParser(commentMark string) *Parser {
	if commentMark == "" {
		commentMark = DefaultCommentMark
	}
	return &Parser{CommentMark: commentMark}
}

// StripComment drops everything from the comment mark on and trims spaces.
func (p *Parser) StripComment(line string) string {
	before, _, _ := strings.Cut(line, p.CommentMark)
	return strings.TrimSpace(before)
}

// ValidID reports whether s can be used as a comic ID.
func ValidID(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// IDFromName returns the ID a file must carry: its base name without extension.
func IDFromName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Body verifies the ID header of r and returns the remaining non-empty lines
// with comments removed. name is used to derive the expected ID.
func (p *Parser) Body(r io.Reader, name string) (string, []string, error) {
	scanner := bufio.NewScanner(r)
	id := ""
	var lines []string
	for scanner.Scan() {
		line := p.StripComment(scanner.Text())
		if line == "" {
			continue
		}
		if id == "" {
			if !ValidID(line) || line != IDFromName(name) {
				return "", nil, &HeaderError{File: name, Found: line}
			}
			id = line
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if id == "" {
		return "", nil, &HeaderError{File: name}
	}
	return id, lines, nil
}

// Parse reads a transcript. Each line starts with the speaker label.
func (p *Parser) Parse(r io.Reader, name string) (*Transcript, error) {
	id, body, err := p.Body(r, name)
	if err != nil {
		return nil, err
	}
	t := &Transcript{ID: id}
	for _, line := range body {
		if l, ok := ParseLine(line); ok {
			t.Lines = append(t.Lines, l)
		}
	}
	return t, nil
}

// ParseFile opens and parses the transcript at path.
func (p *Parser) ParseFile(path string) (*Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()
	return p.Parse(f, path)
}

// CheckFile validates the ID header of any transcript or word-bubble file.
func (p *Parser) CheckFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	_, _, err = p.Body(f, path)
	return err
}

// ParseLine splits "NAME: words..." into speaker and tokens. The trailing
// colon of the label is optional.
func ParseLine(line string) (markov.Line, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return markov.Line{}, false
	}
	speaker := strings.TrimSpace(strings.TrimRight(fields[0], ":"))
	if speaker == "" {
		return markov.Line{}, false
	}
	return markov.Line{Speaker: speaker, Tokens: fields[1:]}, true
}
