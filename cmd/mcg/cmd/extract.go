package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/f3rmion/mcg/internal/render"
)

var extractCmd = &cobra.Command{
	Use:   "extract <image.png>",
	Short: "Print the transcript embedded in a generated image",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE:  runExtract,
}

var extractAll bool

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVar(&extractAll, "all", false, "print every text chunk")
}

func runExtract(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	chunks, err := render.ReadText(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	w := cmd.OutOrStdout()
	for _, c := range chunks {
		if extractAll {
			fmt.Fprintf(w, "[%s %s]\n%s\n", c.Kind, c.Keyword, c.Text)
			continue
		}
		if c.Kind == "iTXt" && c.Keyword == render.KeyTranscript {
			fmt.Fprintln(w, c.Text)
			return nil
		}
	}
	if !extractAll {
		return fmt.Errorf("%s has no embedded transcript", args[0])
	}
	return nil
}
