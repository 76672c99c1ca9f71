package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/f3rmion/mcg/internal/comic"
	"github.com/f3rmion/mcg/internal/history"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate comics and save their transcripts and images",
	Long: `Generate one or more comics. Each word bubble of the chosen comic is filled
with a sentence generated for its speaker, and the result is saved as a
transcript and a PNG image. The PNG carries the transcript and the original
comic's URL in its text metadata.

With more than one comic, a running number is added to each file name.

Examples:
  mcg generate
  mcg generate -g 5 -o out.txt -p out.png
  mcg generate -c 42 --seed 7 -w`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runGenerate,
}

var (
	generateCount     int
	generateComicID   string
	generateNoHistory bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.IntVarP(&generateCount, "generate", "g", 1, "number of comics to generate")
	f.StringVarP(&generateComicID, "comic-id", "c", "", "comic to fill (default: random)")
	f.StringP("outtextfile", "o", "", "transcript output file")
	f.StringP("outimagefile", "p", "", "image output file")
	f.StringP("top", "t", "", "image to stack above every comic")
	f.BoolP("saveforweb", "w", false, "write smaller paletted images")
	f.StringP("font", "f", "", "regular font file")
	f.String("bold-font", "", "bold font file")
	f.BoolP("randomize-capitals", "r", false, "randomly capitalize letters")
	f.BoolVar(&generateNoHistory, "no-history", false, "do not record generated comics")

	bindFlag("output.text_file", f.Lookup("outtextfile"))
	bindFlag("output.image_file", f.Lookup("outimagefile"))
	bindFlag("output.top_image", f.Lookup("top"))
	bindFlag("output.save_for_web", f.Lookup("saveforweb"))
	bindFlag("fonts.regular", f.Lookup("font"))
	bindFlag("fonts.bold", f.Lookup("bold-font"))
	bindFlag("markov.randomize_capitals", f.Lookup("randomize-capitals"))
}

// outputOptions builds the output settings from the config.
func outputOptions() (comic.Output, error) {
	out := comic.Output{
		TextPath:  cfg.Output.TextFile,
		ImagePath: cfg.Output.ImageFile,
		ForWeb:    cfg.Output.SaveForWeb,
	}
	if cfg.Output.TopImage != "" {
		top, err := imaging.Open(cfg.Output.TopImage)
		if err != nil {
			return comic.Output{}, fmt.Errorf("opening top image: %w", err)
		}
		out.Top = top
	}
	return out, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generateCount < 1 {
		return &usageError{err: fmt.Errorf("--generate must be at least 1, got %d", generateCount)}
	}
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	out, err := outputOptions()
	if err != nil {
		return err
	}
	store, err := openHistory(generateNoHistory)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	prog := newProgress(logger)
	for n := 0; n < generateCount; n++ {
		id := generateComicID
		if id == "" {
			if id, err = s.engine.RandomID(); err != nil {
				return err
			}
		}
		logger.Info("generating comic", "comic", id)
		c, err := s.engine.Generate(ctx, id)
		if err != nil {
			return fmt.Errorf("generating comic %s: %w", id, err)
		}

		o := out
		if generateCount > 1 {
			o = out.Numbered(n)
		}
		if err := comic.Write(c, o, s.engine.Sigils()); err != nil {
			return err
		}
		if !silent {
			fmt.Fprint(cmd.OutOrStdout(), c.Transcript(s.engine.Sigils()))
		}
		if store != nil {
			record(ctx, logger, store, c, o, s)
		}
	}
	prog.done(fmt.Sprintf("Generated %d comic(s)", generateCount))
	return nil
}

// record logs failures instead of returning them; the comic is already
// saved by then.
func record(ctx context.Context, logger *log.Logger, store *history.Store, c *comic.Comic, o comic.Output, s *session) {
	e := &history.Entry{
		ComicID:    c.ID,
		Seed:       s.seed,
		Transcript: c.Transcript(s.engine.Sigils()),
		TextPath:   o.TextPath,
		ImagePath:  o.ImagePath,
	}
	if err := store.Record(ctx, e); err != nil {
		logger.Warn("could not record comic in history", "comic", c.ID, "err", err)
		return
	}
	logger.Debug("recorded comic", "id", e.ID)
}
