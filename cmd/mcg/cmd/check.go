package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/mcg/internal/dataset"
	"github.com/f3rmion/mcg/internal/transcript"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate transcript and word-bubble files",
	Long: `Check that every file starts with an ID line matching its file name.
Word-bubble files (.tsv) are also checked for a speakers line and well-formed
bubbles.

Exits with status 65 when any file is invalid.`,
	Args: usageArgs(cobra.MinimumNArgs(1)),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	p := transcript.NewParser(cfg.CommentMark)

	var errs []error
	for _, path := range args {
		if err := checkFile(p, path); err != nil {
			logger.Error("invalid file", "file", path, "err", err)
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
	}
	return errors.Join(errs...)
}

func checkFile(p *transcript.Parser, path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".tsv") {
		return p.CheckFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	_, err = dataset.ParseBubbles(f, path, p)
	return err
}
