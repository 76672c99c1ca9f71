// Package config handles loading and saving user configuration for mcg.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/f3rmion/mcg/internal/fonts"
	"github.com/f3rmion/mcg/internal/markov"
	"github.com/f3rmion/mcg/internal/render"
	"github.com/f3rmion/mcg/internal/transcript"
)

// FileName is the config file inside the config directory.
const FileName = "config.yaml"

// EnvPrefix prefixes environment overrides, e.g. MCG_DATA_DIR.
const EnvPrefix = "MCG"

// Config holds all user configuration.
type Config struct {
	DataDir     string        `yaml:"data_dir" mapstructure:"data_dir"`
	CommentMark string        `yaml:"comment_mark" mapstructure:"comment_mark"`
	Markov      MarkovConfig  `yaml:"markov" mapstructure:"markov"`
	Render      RenderConfig  `yaml:"render" mapstructure:"render"`
	Fonts       fonts.Paths   `yaml:"fonts" mapstructure:"fonts"`
	Output      OutputConfig  `yaml:"output" mapstructure:"output"`
	History     HistoryConfig `yaml:"history" mapstructure:"history"`
}

// MarkovConfig holds settings for chain building and sampling.
type MarkovConfig struct {
	RandomizeCapitals bool         `yaml:"randomize_capitals" mapstructure:"randomize_capitals"`
	KeepPunctuation   bool         `yaml:"keep_punctuation" mapstructure:"keep_punctuation"`
	MaxWords          int          `yaml:"max_words" mapstructure:"max_words"` // 0 = unlimited
	Sigils            SigilsConfig `yaml:"sigils" mapstructure:"sigils"`
}

// SigilsConfig holds the emphasis markers, one character each.
type SigilsConfig struct {
	Bold      string `yaml:"bold" mapstructure:"bold"`
	Italic    string `yaml:"italic" mapstructure:"italic"`
	Underline string `yaml:"underline" mapstructure:"underline"`
}

// RenderConfig holds word-bubble drawing settings.
type RenderConfig struct {
	Center    bool    `yaml:"center" mapstructure:"center"`
	SizeScale float64 `yaml:"size_scale" mapstructure:"size_scale"`
}

// OutputConfig holds default output locations.
type OutputConfig struct {
	TextFile   string `yaml:"text_file" mapstructure:"text_file"`
	ImageFile  string `yaml:"image_file" mapstructure:"image_file"`
	TopImage   string `yaml:"top_image,omitempty" mapstructure:"top_image"`
	SaveForWeb bool   `yaml:"save_for_web" mapstructure:"save_for_web"`
}

// HistoryConfig controls the generation log.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path,omitempty" mapstructure:"path"` // default: history.db in the config dir
}

// Default returns the built-in configuration.
func Default() Config {
	s := markov.DefaultSigils()
	return Config{
		DataDir:     "./data/",
		CommentMark: transcript.DefaultCommentMark,
		Markov: MarkovConfig{
			MaxWords: markov.DefaultMaxWords,
			Sigils: SigilsConfig{
				Bold:      string(s.Bold),
				Italic:    string(s.Italic),
				Underline: string(s.Underline),
			},
		},
		Render: RenderConfig{
			Center:    true,
			SizeScale: render.DefaultSizeScale,
		},
		Output: OutputConfig{
			TextFile:  "default out.txt",
			ImageFile: "default out.png",
		},
		History: HistoryConfig{Enabled: true},
	}
}

// Load reads a config file. Keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg Config) error {
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Resolve layers the defaults, the config file at path (when it exists) and
// MCG_* environment variables into v, then decodes the result. Flags bound
// to v before the call take precedence over all of them.
func Resolve(v *viper.Viper, path string) (Config, error) {
	base, err := yaml.Marshal(Default())
	if err != nil {
		return Config{}, fmt.Errorf("marshaling defaults: %w", err)
	}
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(base)); err != nil {
		return Config{}, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.MergeInConfig(); err != nil {
				return Config{}, fmt.Errorf("parsing config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Dir returns the configuration directory: $XDG_CONFIG_HOME/mcg, or
// ~/.config/mcg.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mcg"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mcg"), nil
}

// HistoryPath returns the history database location for a config dir.
func (c Config) HistoryPath(dir string) string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(dir, "history.db")
}

// MarkovOptions converts the markov section to builder options.
func (c Config) MarkovOptions() (markov.Options, error) {
	opts := markov.Options{
		RandomizeCapitals: c.Markov.RandomizeCapitals,
		KeepPunctuation:   c.Markov.KeepPunctuation,
	}
	var err error
	for _, s := range []struct {
		name  string
		value string
		dst   *rune
	}{
		{"bold", c.Markov.Sigils.Bold, &opts.Sigils.Bold},
		{"italic", c.Markov.Sigils.Italic, &opts.Sigils.Italic},
		{"underline", c.Markov.Sigils.Underline, &opts.Sigils.Underline},
	} {
		if utf8.RuneCountInString(s.value) != 1 {
			err = errors.Join(err, fmt.Errorf("%s sigil %q must be a single character", s.name, s.value))
			continue
		}
		*s.dst, _ = utf8.DecodeRuneInString(s.value)
	}
	if err != nil {
		return markov.Options{}, err
	}
	return opts, nil
}

// RenderOptions converts the render section.
func (c Config) RenderOptions() render.Options {
	return render.Options{Center: c.Render.Center, SizeScale: c.Render.SizeScale}
}
