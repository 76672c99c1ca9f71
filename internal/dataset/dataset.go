// Package dataset provides access to a comic data directory: transcripts,
// word-bubble layouts, comic images, fonts and source URLs.
package dataset

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/f3rmion/mcg/internal/markov"
	"github.com/f3rmion/mcg/internal/transcript"
)

// Subdirectories and files of a data directory.
const (
	TranscriptsDir = "transcripts"
	BubblesDir     = "word-bubbles"
	ImagesDir      = "images"
	FontsDir       = "fonts"
	SourcesFile    = "sources.tsv"
)

// ErrNoComics is returned when the word-bubbles directory lists no comics.
var ErrNoComics = errors.New("no word-bubble files found")

// Dataset is an opened data directory.
type Dataset struct {
	dir    string
	parser *transcript.Parser
	logger *log.Logger

	corpus []markov.Line
	loaded bool
}

// Open checks that dir is a directory and returns a Dataset reading it with
// the given comment mark.
func Open(dir, commentMark string, logger *log.Logger) (*Dataset, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening data directory: %s: %w", dir, os.ErrNotExist)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Dataset{
		dir:    dir,
		parser: transcript.NewParser(commentMark),
		logger: logger,
	}, nil
}

// Dir returns the data directory path.
func (d *Dataset) Dir() string {
	return d.dir
}

// Parser returns the parser configured for this directory.
func (d *Dataset) Parser() *transcript.Parser {
	return d.parser
}

func (d *Dataset) path(parts ...string) string {
	return filepath.Join(append([]string{d.dir}, parts...)...)
}

// Corpus returns every dialogue line of every valid transcript. Invalid
// transcripts are logged and skipped. The result is read once and cached.
func (d *Dataset) Corpus() ([]markov.Line, error) {
	if d.loaded {
		return d.corpus, nil
	}

	entries, err := os.ReadDir(d.path(TranscriptsDir))
	if err != nil {
		return nil, fmt.Errorf("reading transcripts: %w", err)
	}

	var lines []markov.Line
	files := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := d.path(TranscriptsDir, entry.Name())
		t, err := d.parser.ParseFile(path)
		if err != nil {
			d.logger.Error("skipping transcript", "file", path, "err", err)
			continue
		}
		lines = append(lines, t.Lines...)
		files++
	}
	d.logger.Debug("loaded transcripts", "files", files, "lines", len(lines))

	d.corpus = lines
	d.loaded = true
	return lines, nil
}

// ComicIDs lists the comics that have a word-bubble file, sorted.
func (d *Dataset) ComicIDs() ([]string, error) {
	entries, err := os.ReadDir(d.path(BubblesDir))
	if err != nil {
		return nil, fmt.Errorf("reading word bubbles: %w", err)
	}
	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".tsv" {
			continue
		}
		ids = append(ids, transcript.IDFromName(name))
	}
	slices.Sort(ids)
	return ids, nil
}

// RandomComicID picks one of ComicIDs uniformly.
func (d *Dataset) RandomComicID(r *rand.Rand) (string, error) {
	ids, err := d.ComicIDs()
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", ErrNoComics
	}
	return ids[r.IntN(len(ids))], nil
}

// BubblesPath returns the word-bubble file of a comic.
func (d *Dataset) BubblesPath(id string) string {
	return d.path(BubblesDir, id+".tsv")
}

// ImagePath returns the image file of a comic.
func (d *Dataset) ImagePath(id string) string {
	return d.path(ImagesDir, id+".png")
}

// Bubbles loads the word-bubble layout of a comic.
func (d *Dataset) Bubbles(id string) (*Layout, error) {
	f, err := os.Open(d.BubblesPath(id))
	if err != nil {
		return nil, fmt.Errorf("opening word bubbles: %w", err)
	}
	defer f.Close()
	return ParseBubbles(f, d.BubblesPath(id), d.parser)
}

// Image loads the comic image.
func (d *Dataset) Image(id string) (image.Image, error) {
	img, err := imaging.Open(d.ImagePath(id))
	if err != nil {
		return nil, fmt.Errorf("loading comic image: %w", err)
	}
	return img, nil
}

// SourceURL returns the original URL of a comic from sources.tsv. It
// returns an empty string when the comic is not listed.
func (d *Dataset) SourceURL(id string) (string, error) {
	data, err := os.ReadFile(d.path(SourcesFile))
	if err != nil {
		return "", fmt.Errorf("reading sources: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = d.parser.StripComment(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) >= 2 && fields[0] == id {
			return strings.TrimSpace(fields[1]), nil
		}
	}
	return "", nil
}

// FontFiles lists the TrueType and OpenType files in the fonts directory.
// A missing directory yields no files.
func (d *Dataset) FontFiles() ([]string, error) {
	entries, err := os.ReadDir(d.path(FontsDir))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading fonts: %w", err)
	}
	var files []string
	for _, entry := range entries {
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".ttf", ".otf":
			files = append(files, d.path(FontsDir, entry.Name()))
		}
	}
	return files, nil
}
