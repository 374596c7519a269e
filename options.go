package captcha

import "github.com/gogpu/captcha/font"

// config collects the adjustable knobs New folds into a Generator.
type config struct {
	spec    Spec
	sources []*font.Source

	minLen, maxLen int
	lenSet         bool

	seed   int64
	seeded bool
}

// Option adjusts generator construction.
//
// Example:
//
//	// Default: random light background, random dark text
//	gen, err := captcha.New(160, 60, captcha.TierPart2)
//
//	// Pinned rng and a custom alphabet
//	gen, err := captcha.New(160, 60, captcha.TierPart2,
//		captcha.WithSeed(42),
//		captcha.WithCharset("2345689ABCDEFHKMNPRSTUVWXYZ"))
type Option func(*config)

// WithCharset replaces the default charset of digits and capital ASCII
// letters. Characters are deduplicated after Unicode normalization.
func WithCharset(charset string) Option {
	return func(c *config) {
		c.spec.Charset = charset
	}
}

// WithExcludedChars drops the given characters from the charset. The
// default exclusion set is empty; nothing is removed unless asked for.
func WithExcludedChars(chars string) Option {
	return func(c *config) {
		c.spec.ExcludedChars = chars
	}
}

// WithLengthRange overrides the profile's text length range (inclusive),
// both for randomly drawn texts and for explicit text validation.
func WithLengthRange(minLen, maxLen int) Option {
	return func(c *config) {
		c.minLen = minLen
		c.maxLen = maxLen
		c.lenSet = true
	}
}

// WithFonts sets the font files to load. Unreadable or unparsable paths
// are logged and skipped; when none load, generation falls back to the
// built-in Go fonts instead of failing.
func WithFonts(paths ...string) Option {
	return func(c *config) {
		c.spec.FontPaths = paths
	}
}

// WithFontSources uses already-loaded font sources instead of reading
// files. It takes precedence over WithFonts.
func WithFontSources(sources ...*font.Source) Option {
	return func(c *config) {
		c.sources = sources
	}
}

// WithFontSizes sets the candidate font sizes in pixels. The defaults
// scale with canvas height.
func WithFontSizes(sizes ...float64) Option {
	return func(c *config) {
		c.spec.FontSizes = sizes
	}
}

// WithBackgroundColor fixes the solid background color instead of
// drawing a random light one per sample. Gradient and textured
// backgrounds ignore it.
func WithBackgroundColor(col RGBA) Option {
	return func(c *config) {
		c.spec.BgColor = &col
	}
}

// WithForegroundColor fixes the text color instead of drawing a random
// dark one per sample.
func WithForegroundColor(col RGBA) Option {
	return func(c *config) {
		c.spec.FgColor = &col
	}
}

// WithSeed pins the generator's internal rng, making Generate and Write
// reproducible. Without it the rng is seeded from the clock.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}
