package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/captcha"
)

// ErrNoParts reports a run file without a single part block.
var ErrNoParts = errors.New("config: no parts defined")

// Defaults applied to part blocks that leave fields unset.
const (
	DefaultOutputDir  = "data_generated"
	DefaultNumSamples = 1000
	DefaultWidth      = 160
	DefaultHeight     = 60
	DefaultMinLength  = 3
	DefaultMaxLength  = 7
)

// Config is a parsed run file.
type Config struct {
	// OutputDir is the corpus root. Empty selects DefaultOutputDir.
	OutputDir string `yaml:"output_dir"`

	// SQLiteIndex additionally writes a labels.db next to the corpus.
	SQLiteIndex bool `yaml:"sqlite_index"`

	// Parts maps tier names to their generation settings.
	Parts map[string]Part `yaml:"parts"`
}

// Part configures one difficulty tier of a run.
type Part struct {
	NumSamples    int       `yaml:"num_samples"`
	Width         int       `yaml:"width"`
	Height        int       `yaml:"height"`
	MinLength     int       `yaml:"min_length"`
	MaxLength     int       `yaml:"max_length"`
	Fonts         []string  `yaml:"fonts"`
	FontSizes     []float64 `yaml:"font_sizes"`
	Charset       string    `yaml:"charset"`
	ExcludedChars string    `yaml:"excluded_chars"`
	BgColor       *Color    `yaml:"bg_color"`
	FgColor       *Color    `yaml:"fg_color"`
	Seed          *int64    `yaml:"seed"`
	Workers       int       `yaml:"workers"`
}

// Load reads, parses and validates a run file. Unknown keys are
// rejected so typos surface instead of silently falling back to
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-chosen config path
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses and validates run file bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	for name, p := range c.Parts {
		if p.NumSamples == 0 {
			p.NumSamples = DefaultNumSamples
		}
		if p.Width == 0 {
			p.Width = DefaultWidth
		}
		if p.Height == 0 {
			p.Height = DefaultHeight
		}
		if p.MinLength == 0 {
			p.MinLength = DefaultMinLength
		}
		if p.MaxLength == 0 {
			p.MaxLength = DefaultMaxLength
		}
		c.Parts[name] = p
	}
}

// Validate checks every part block. The first problem found is returned.
func (c *Config) Validate() error {
	if len(c.Parts) == 0 {
		return ErrNoParts
	}
	for _, name := range c.PartNames() {
		if !captcha.Tier(name).Valid() {
			return fmt.Errorf("config: unknown part %q: use part2, part3 or part4", name)
		}
		if err := c.Parts[name].validate(); err != nil {
			return fmt.Errorf("config: part %s: %w", name, err)
		}
	}
	return nil
}

func (p Part) validate() error {
	if p.NumSamples < 0 {
		return fmt.Errorf("num_samples %d is negative", p.NumSamples)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("canvas %dx%d is not positive", p.Width, p.Height)
	}
	if p.MinLength <= 0 || p.MaxLength < p.MinLength {
		return fmt.Errorf("length range %d..%d is invalid", p.MinLength, p.MaxLength)
	}
	for _, s := range p.FontSizes {
		if s <= 0 {
			return fmt.Errorf("font size %v is not positive", s)
		}
	}
	if p.Workers < 0 {
		return fmt.Errorf("workers %d is negative", p.Workers)
	}
	return nil
}

// PartNames returns the configured tier names in stable sorted order, so
// multi-part runs always execute in the same sequence.
func (c *Config) PartNames() []string {
	names := make([]string, 0, len(c.Parts))
	for name := range c.Parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options converts a part block into generator options.
func (p Part) Options() []captcha.Option {
	opts := []captcha.Option{
		captcha.WithLengthRange(p.MinLength, p.MaxLength),
	}
	if p.Charset != "" {
		opts = append(opts, captcha.WithCharset(p.Charset))
	}
	if p.ExcludedChars != "" {
		opts = append(opts, captcha.WithExcludedChars(p.ExcludedChars))
	}
	if len(p.Fonts) > 0 {
		opts = append(opts, captcha.WithFonts(p.Fonts...))
	}
	if len(p.FontSizes) > 0 {
		opts = append(opts, captcha.WithFontSizes(p.FontSizes...))
	}
	if p.BgColor != nil {
		opts = append(opts, captcha.WithBackgroundColor(p.BgColor.RGBA))
	}
	if p.FgColor != nil {
		opts = append(opts, captcha.WithForegroundColor(p.FgColor.RGBA))
	}
	if p.Seed != nil {
		opts = append(opts, captcha.WithSeed(*p.Seed))
	}
	return opts
}
