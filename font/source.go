package font

import (
	"fmt"
	"os"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Source is a loaded font shared across rendering operations. The parsed
// font is immutable after creation, so a Source is safe for concurrent
// reads; per-call state (sfnt buffers, faces) is never stored on it.
//
// A Source must not be copied after first use.
type Source struct {
	addr *Source // of receiver, to detect copies by value
	data []byte
	font *opentype.Font
	name string
}

// NewSource creates a font source from raw font data (TTF or OTF).
// The data is copied, so the caller may reuse the slice.
func NewSource(data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: parse: %w", err)
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	s := &Source{
		data: owned,
		font: parsed,
		name: familyName(parsed),
	}
	s.addr = s
	return s, nil
}

// NewSourceFromFile creates a font source by reading a font file.
func NewSourceFromFile(path string) (*Source, error) {
	data, err := os.ReadFile(path) //nolint:gosec // font path comes from caller config
	if err != nil {
		return nil, fmt.Errorf("font: read %s: %w", path, err)
	}
	return NewSource(data)
}

func (s *Source) copyCheck() {
	if s.addr != s {
		panic("font: illegal use of Source copied by value")
	}
}

// Name returns the font family name, or "Unknown" when the font carries
// no usable name table.
func (s *Source) Name() string {
	return s.name
}

// HasGlyph reports whether the font maps r to a real glyph. The missing
// glyph (index 0) does not count.
func (s *Source) HasGlyph(r rune) bool {
	var buf sfnt.Buffer
	idx, err := s.font.GlyphIndex(&buf, r)
	return err == nil && idx != 0
}

// Advance returns the advance width in pixels of r at the given size,
// or 0 when the font has no glyph for r.
func (s *Source) Advance(r rune, size float64) float64 {
	var buf sfnt.Buffer
	idx, err := s.font.GlyphIndex(&buf, r)
	if err != nil || idx == 0 {
		return 0
	}
	adv, err := s.font.GlyphAdvance(&buf, idx, fixed.Int26_6(size*64), xfont.HintingFull)
	if err != nil {
		return 0
	}
	return fixedToFloat64(adv)
}

func familyName(f *opentype.Font) string {
	var buf sfnt.Buffer
	if name, err := f.Name(&buf, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(&buf, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown"
}

// fixedToFloat64 converts 26.6 fixed point to float64 pixels.
func fixedToFloat64(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
