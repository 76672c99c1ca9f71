package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/mcg/internal/markov"
)

var sentenceCmd = &cobra.Command{
	Use:   "sentence <NAME>",
	Short: "Print generated sentences for a character",
	Long: `Print sentences generated from a character's Markov chain, one per line,
with emphasis written as sigils.

Example:
  mcg sentence ALICE -n 5`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runSentence,
}

var sentenceCount int

func init() {
	rootCmd.AddCommand(sentenceCmd)
	sentenceCmd.Flags().IntVarP(&sentenceCount, "count", "n", 1, "number of sentences")
}

func runSentence(cmd *cobra.Command, args []string) error {
	if sentenceCount < 1 {
		return &usageError{err: fmt.Errorf("--count must be at least 1, got %d", sentenceCount)}
	}
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	sentences, err := s.engine.Sentences(args[0], sentenceCount)
	if err != nil {
		return err
	}
	for _, words := range sentences {
		fmt.Fprintln(cmd.OutOrStdout(), markov.Format(words, s.engine.Sigils()))
	}
	return nil
}
