package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/f3rmion/mcg/internal/tui"
)

// DebugLogFile receives the logs of an interactive session run with --verbose.
const DebugLogFile = "debug.log"

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"ui"},
	Short:   "Launch the interactive comic preview",
	Long: `Launch a terminal UI that previews generated comics.

The comic image is drawn with coloured half blocks next to its transcript.
Logs are discarded while the preview runs; with --verbose they are written
to debug.log in the config directory.

Controls:
  g   Generate a new comic
  y   Copy the transcript
  s   Save transcript and image
  ?   Help
  q   Quit`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runInteractive,
}

var interactiveComicID string

func init() {
	rootCmd.AddCommand(interactiveCmd)
	interactiveCmd.Flags().StringVarP(&interactiveComicID, "comic-id", "c", "", "always fill this comic")
}

func runInteractive(cmd *cobra.Command, args []string) error {
	var w io.Writer = io.Discard
	if verbose {
		path := filepath.Join(filepath.Dir(configPath), DebugLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
		w = f
	}
	ctx := withLogger(cmd.Context(), newLogger(w, logLevel(verbose, silent)))

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	out, err := outputOptions()
	if err != nil {
		return err
	}
	opts := tui.Options{ComicID: interactiveComicID, Output: out, Seed: s.seed}
	store, err := openHistory(false)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		opts.History = store
	}

	p := tea.NewProgram(
		tui.NewApp(ctx, s.engine, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
