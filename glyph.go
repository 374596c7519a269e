package captcha

import (
	"image"
	"math"

	"github.com/gogpu/captcha/font"
	"github.com/gogpu/captcha/internal/xform"
)

// renderGlyph rasterizes one placement into an alpha patch: glyph mask
// first, then rotation, then sinusoidal warp. Every random parameter was
// frozen at layout time, so this is a pure function of the placement.
//
// Gap slots and runes no catalog source can draw return nil; the caller
// skips them without failing the sample.
func renderGlyph(p GlyphPlacement, cat *font.Catalog) *image.Alpha {
	if p.Gap {
		return nil
	}

	g := cat.Source(p.FaceIndex).Rasterize(p.Char, p.Size)
	if g == nil {
		// The chosen face lacks this rune; try the rest of the catalog.
		for i := 0; i < cat.Len() && g == nil; i++ {
			if i == p.FaceIndex {
				continue
			}
			g = cat.Source(i).Rasterize(p.Char, p.Size)
		}
	}
	if g == nil || g.Mask == nil {
		Logger().Debug("no source can draw rune, skipping ink",
			"char", string(p.Char))
		return nil
	}

	mask := xform.RotateAlpha(g.Mask, p.Rotation*math.Pi/180)
	return xform.WarpAlpha(mask, p.WarpAmpX, p.WarpAmpY, p.WarpPhaseX, p.WarpPhaseY)
}

// compositeGlyph blends an alpha patch onto the canvas in the foreground
// color. The patch is centered on the canvas mid-height and shifted by
// the placement's vertical jitter; pixels landing off-canvas are clipped
// by the blend, never an error.
func compositeGlyph(c *Canvas, mask *image.Alpha, p GlyphPlacement, col RGBA) {
	if mask == nil {
		return
	}
	y0 := (c.Height()-mask.Bounds().Dy())/2 + p.DY
	blendAlphaMask(c, mask, p.X, y0, col)
}

// blendAlphaMask blends mask coverage in col with the mask's top-left at
// (x0, y0). Coverage scales the color's alpha per pixel.
func blendAlphaMask(c *Canvas, mask *image.Alpha, x0, y0 int, col RGBA) {
	b := mask.Bounds()
	for my := 0; my < b.Dy(); my++ {
		for mx := 0; mx < b.Dx(); mx++ {
			a := mask.AlphaAt(b.Min.X+mx, b.Min.Y+my).A
			if a == 0 {
				continue
			}
			c.BlendPixel(x0+mx, y0+my, RGBA{
				R: col.R,
				G: col.G,
				B: col.B,
				A: col.A * float64(a) / 255,
			})
		}
	}
}
