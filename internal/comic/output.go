package comic

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/f3rmion/mcg/internal/markov"
	"github.com/f3rmion/mcg/internal/render"
)

// OutputError reports an output file that could not be created or written.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// Output describes where and how a comic is saved.
type Output struct {
	TextPath  string // empty skips the transcript file
	ImagePath string // empty skips the image file
	Top       image.Image
	ForWeb    bool
}

// NumberedPath inserts n before the extension of path: "out.png" becomes
// "out3.png".
func NumberedPath(path string, n int) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + strconv.Itoa(n) + ext
}

// Numbered returns o with both paths numbered.
func (o Output) Numbered(n int) Output {
	if o.TextPath != "" {
		o.TextPath = NumberedPath(o.TextPath, n)
	}
	if o.ImagePath != "" {
		o.ImagePath = NumberedPath(o.ImagePath, n)
	}
	return o
}

// Compose returns the comic image with top stacked above it, if set.
func (c *Comic) Compose(top image.Image) image.Image {
	if top == nil {
		return c.Image
	}
	return render.StackTop(top, c.Image)
}

// Write saves the transcript and image of c.
func Write(c *Comic, out Output, sigils markov.Sigils) error {
	if out.TextPath != "" {
		if err := os.WriteFile(out.TextPath, []byte(c.Transcript(sigils)), 0644); err != nil {
			return &OutputError{Path: out.TextPath, Err: err}
		}
	}
	if out.ImagePath == "" {
		return nil
	}

	f, err := os.Create(out.ImagePath)
	if err != nil {
		return &OutputError{Path: out.ImagePath, Err: err}
	}
	err = render.EncodePNG(f, c.Compose(out.Top), c.EmbeddedText(sigils), render.EncodeOptions{ForWeb: out.ForWeb})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &OutputError{Path: out.ImagePath, Err: err}
	}
	return nil
}
