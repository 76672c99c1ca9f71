package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <NAME>...",
	Short: "Show corpus statistics for characters",
	Args:  usageArgs(cobra.MinimumNArgs(1)),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, name := range args {
		c, err := s.engine.Chain(name)
		if err != nil {
			return err
		}
		st := c.Stats()
		fmt.Fprintf(w, "%s\n", c.Speaker())
		fmt.Fprintf(w, "  Words:      %d\n", st.Words)
		fmt.Fprintf(w, "  Sentences:  %d\n", st.Sentences)
		fmt.Fprintf(w, "  Distinct:   %d\n", st.Nodes)
		fmt.Fprintf(w, "  Starts:     %d\n", st.Starts)
		if st.Sentences > 0 {
			fmt.Fprintf(w, "  Words/sentence: %.2f\n", st.WordsPerSentence())
		}
	}
	return nil
}
