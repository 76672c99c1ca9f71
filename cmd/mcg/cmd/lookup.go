package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/mcg/internal/markov"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <NAME> <word>",
	Short: "Show a word of a character's Markov chain",
	Long: `Show how a character uses a word: its emphasis counts, whether it ends
sentences, and the words that follow it.

Example:
  mcg lookup ALICE hello`,
	Args: usageArgs(cobra.ExactArgs(2)),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	c, err := s.engine.Chain(args[0])
	if err != nil {
		return err
	}
	key := markov.Normalize(args[1])
	n, ok := c.Lookup(key)
	if !ok {
		return fmt.Errorf("%s never says %q", c.Speaker(), key)
	}
	printNode(cmd.OutOrStdout(), c, n)
	return nil
}

type successor struct {
	key   string
	count int
}

// successors tallies the distinct words following n, most frequent first.
func successors(c *markov.Chain, n *markov.Node) []successor {
	counts := make(map[string]int)
	for _, i := range n.Links() {
		counts[c.Node(i).Key]++
	}
	out := make([]successor, 0, len(counts))
	for k, v := range counts {
		out = append(out, successor{key: k, count: v})
	}
	slices.SortFunc(out, func(a, b successor) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return strings.Compare(a.key, b.key)
	})
	return out
}

func printNode(w io.Writer, c *markov.Chain, n *markov.Node) {
	counts := n.Counts()
	bold, italic, underline := n.Probabilities()

	fmt.Fprintf(w, "Word: %s\n", n.Key)
	if n.Display != n.Key {
		fmt.Fprintf(w, "  Display:      %s\n", n.Display)
	}
	fmt.Fprintf(w, "  Sentence end: %t\n", n.SentenceEnd)
	fmt.Fprintf(w, "  Occurrences:  %d (normal %d)\n", counts.Total, counts.Normal)
	fmt.Fprintf(w, "  Bold:         %d (%.2f)\n", counts.Bold, bold)
	fmt.Fprintf(w, "  Italic:       %d (%.2f)\n", counts.Italic, italic)
	fmt.Fprintf(w, "  Underline:    %d (%.2f)\n", counts.Underline, underline)

	next := successors(c, n)
	if len(next) == 0 {
		fmt.Fprintln(w, "  Followed by:  (nothing)")
		return
	}
	fmt.Fprintln(w, "  Followed by:")
	for _, s := range next {
		fmt.Fprintf(w, "    %-20s %d\n", s.key, s.count)
	}
}
