package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/f3rmion/mcg/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List generated comics",
	Long: `List the comics recorded by 'generate' and by saving in the preview, most
recent first.

Examples:
  mcg history --limit 5
  mcg history show 5f0c...`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the transcript of a recorded comic",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE:  runHistoryShow,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of entries (0 = all)")
}

func openHistoryStore() (*history.Store, error) {
	store, err := openHistory(false)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("history is disabled in the config")
	}
	return store, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No comics recorded yet.")
		return nil
	}
	for _, e := range entries {
		printEntry(w, e)
	}
	return nil
}

func printEntry(w io.Writer, e history.Entry) {
	fmt.Fprintf(w, "%s  %s  comic %-6s seed %d\n", e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"), e.ComicID, e.Seed)
	for _, p := range []string{e.TextPath, e.ImagePath} {
		if p != "" {
			fmt.Fprintf(w, "    %s\n", p)
		}
	}
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return &usageError{err: fmt.Errorf("invalid history id %q: %w", args[0], err)}
	}
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	e, err := store.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	printEntry(cmd.OutOrStdout(), e)
	fmt.Fprint(cmd.OutOrStdout(), e.Transcript)
	return nil
}
