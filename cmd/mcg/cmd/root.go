// Package cmd contains all CLI commands for mcg.
package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/f3rmion/mcg/internal/comic"
	"github.com/f3rmion/mcg/internal/config"
	"github.com/f3rmion/mcg/internal/dataset"
	"github.com/f3rmion/mcg/internal/fonts"
	"github.com/f3rmion/mcg/internal/history"
)

var (
	cfgFile string
	silent  bool
	verbose bool
	seed    uint64

	v          = viper.New()
	cfg        config.Config
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mcg",
	Short: "Markov comic generator",
	Long: `mcg fills the word bubbles of comics with new dialogue. Every character
gets a Markov chain trained on their lines in the comics' transcripts, and
each bubble receives one generated sentence in that character's voice.

Running 'mcg' without arguments launches the interactive preview.`,
	Args:              usageArgs(cobra.NoArgs),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runInteractive,
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/mcg/config.yaml)")
	pf.StringP("indir", "i", "", "data directory with transcripts, word bubbles and images")
	pf.BoolVarP(&silent, "silent", "s", false, "only log errors")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.Uint64Var(&seed, "seed", 0, "random seed for reproducible output (0 picks one)")

	bindFlag("data_dir", pf.Lookup("indir"))
}

// bindFlag lets a flag override a config key when it is set.
func bindFlag(key string, f *pflag.Flag) {
	if err := v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

// setup attaches the logger to the command context and resolves the config.
func setup(cmd *cobra.Command, args []string) error {
	logger := newLogger(os.Stderr, logLevel(verbose, silent))
	cmd.SetContext(withLogger(cmd.Context(), logger))

	configPath = cfgFile
	if configPath == "" {
		dir, err := config.Dir()
		if err != nil {
			return fmt.Errorf("finding config directory: %w", err)
		}
		configPath = filepath.Join(dir, config.FileName)
	}

	c, err := config.Resolve(v, configPath)
	if err != nil {
		return err
	}
	cfg = c
	logger.Debug("resolved config", "path", configPath, "data_dir", cfg.DataDir)
	return nil
}

// session is everything a generating command needs.
type session struct {
	data   *dataset.Dataset
	engine *comic.Engine
	seed   uint64
}

func openSession(ctx context.Context) (*session, error) {
	logger := loggerFromContext(ctx)

	data, err := dataset.Open(cfg.DataDir, cfg.CommentMark, logger)
	if err != nil {
		return nil, err
	}
	mopts, err := cfg.MarkovOptions()
	if err != nil {
		return nil, &usageError{err: fmt.Errorf("invalid markov config: %w", err)}
	}
	set, err := loadFonts(data)
	if err != nil {
		return nil, err
	}

	s := seed
	if s == 0 {
		s = rand.Uint64()
	}
	logger.Debug("seeded generator", "seed", s)

	engine := comic.NewEngine(data, comic.Options{
		Markov:   mopts,
		MaxWords: cfg.Markov.MaxWords,
		Render:   cfg.RenderOptions(),
		Fonts:    set,
	}, rand.New(rand.NewPCG(s, s)), logger)
	return &session{data: data, engine: engine, seed: s}, nil
}

// loadFonts uses the configured fonts, then fonts found in the data
// directory, then the built-in Go fonts.
func loadFonts(data *dataset.Dataset) (*fonts.Set, error) {
	files, err := data.FontFiles()
	if err != nil {
		return nil, err
	}
	set, err := fonts.Load(cfg.Fonts.Merge(fonts.Discover(files)))
	if err != nil {
		return nil, fmt.Errorf("loading fonts: %w", err)
	}
	return set, nil
}

// openHistory opens the history store, or returns nil when history is off.
func openHistory(disabled bool) (*history.Store, error) {
	if disabled || !cfg.History.Enabled {
		return nil, nil
	}
	return history.Open(cfg.HistoryPath(filepath.Dir(configPath)))
}
