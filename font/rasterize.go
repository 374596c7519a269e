package font

import (
	"image"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Glyph is one rasterized character: a coverage mask plus the advance
// width the layout engine spaces with.
type Glyph struct {
	// Mask holds anti-aliased coverage with bounds anchored at (0, 0).
	// It is nil for blank glyphs such as spaces, which carry only an
	// advance.
	Mask *image.Alpha

	// Advance is the horizontal advance in pixels.
	Advance float64
}

// Rasterize renders r at the given pixel size into an alpha mask.
// It returns nil when the font has no glyph for r; callers fall through
// to another source. A face is built per call so concurrent rasterizes
// on one Source never share mutable state.
func (s *Source) Rasterize(r rune, size float64) *Glyph {
	s.copyCheck()
	face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil
	}
	defer face.Close()

	bounds, advance, ok := face.GlyphBounds(r)
	if !ok {
		return nil
	}

	minX := int(bounds.Min.X) >> 6
	minY := int(bounds.Min.Y) >> 6
	maxX := int(bounds.Max.X+63) >> 6
	maxY := int(bounds.Max.Y+63) >> 6
	w := maxX - minX
	h := maxY - minY
	if w <= 0 || h <= 0 {
		// Whitespace: no ink, advance only.
		return &Glyph{Advance: fixedToFloat64(advance)}
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := xfont.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y},
	}
	d.DrawString(string(r))

	return &Glyph{Mask: mask, Advance: fixedToFloat64(advance)}
}
