package captcha

import (
	"math/rand"

	"golang.org/x/text/unicode/norm"
)

// DefaultCharset is the alphanumeric alphabet used when no character set is
// configured.
const DefaultCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// defaultSizeFractions derive the built-in font sizes from the canvas
// height. For the classic 160x60 canvas they yield 30, 36, 42 and 48 px.
var defaultSizeFractions = [...]float64{0.5, 0.6, 0.7, 0.8}

// Spec describes the immutable shape shared by every sample a generator
// produces: canvas dimensions, the character alphabet, color overrides and
// the font sources. A Spec is read-only after construction and safe to
// share across any number of concurrent generations.
type Spec struct {
	// Width and Height of the output canvas in pixels. Both must be
	// positive.
	Width, Height int

	// Charset is the ordered set of allowed symbols. Empty selects
	// DefaultCharset. Duplicates are dropped, first occurrence wins.
	Charset string

	// ExcludedChars removes symbols from the charset, e.g. visually
	// ambiguous ones like "0O1I". There is no built-in exclusion list;
	// exclusions are always explicit.
	ExcludedChars string

	// BgColor and FgColor override the per-sample random color choice.
	// nil means "choose randomly per generation".
	BgColor, FgColor *RGBA

	// FontPaths lists font files (TTF/OTF) to draw glyphs with. Empty, or
	// all-unloadable, falls back to the built-in Go fonts.
	FontPaths []string

	// FontSizes lists the glyph pixel sizes to pick from. Empty derives
	// sizes proportional to the canvas height.
	FontSizes []float64
}

// normalize applies NFC normalization so visually identical input cannot
// dodge the charset check, then drops excluded and duplicate runes while
// preserving order. Returns the compiled alphabet.
func (s *Spec) alphabet() ([]rune, error) {
	charset := s.Charset
	if charset == "" {
		charset = DefaultCharset
	}
	charset = norm.NFC.String(charset)
	excluded := make(map[rune]bool)
	for _, r := range norm.NFC.String(s.ExcludedChars) {
		excluded[r] = true
	}

	seen := make(map[rune]bool, len(charset))
	alphabet := make([]rune, 0, len(charset))
	for _, r := range charset {
		if excluded[r] || seen[r] {
			continue
		}
		seen[r] = true
		alphabet = append(alphabet, r)
	}
	if len(alphabet) == 0 {
		return nil, ErrEmptyCharset
	}
	return alphabet, nil
}

// sizes returns the configured font sizes, or sizes derived from the
// canvas height when none are configured.
func (s *Spec) sizes() ([]float64, error) {
	if len(s.FontSizes) == 0 {
		out := make([]float64, len(defaultSizeFractions))
		for i, f := range defaultSizeFractions {
			out[i] = float64(int(f*float64(s.Height) + 0.5))
		}
		return out, nil
	}
	out := make([]float64, len(s.FontSizes))
	for i, v := range s.FontSizes {
		if v <= 0 {
			return nil, ErrBadFontSizes
		}
		out[i] = v
	}
	return out, nil
}

// validate checks the Spec fields that need no alphabet compilation.
func (s *Spec) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return ErrBadDimensions
	}
	return nil
}

// sampleText draws a random text: length uniform in [minLen, maxLen], each
// character uniform over the alphabet.
func sampleText(rng *rand.Rand, alphabet []rune, minLen, maxLen int) string {
	n := minLen
	if maxLen > minLen {
		n += rng.Intn(maxLen - minLen + 1)
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(out)
}
