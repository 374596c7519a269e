package captcha

import (
	"math"
	"math/rand"

	"github.com/gogpu/captcha/font"
	"github.com/gogpu/captcha/internal/xform"
)

// decoyRunes are the non-ASCII symbols the hard tier scatters between
// real characters. They are drawn like glyphs but never enter a label.
var decoyRunes = []rune("÷×±≠≈∞∑∏∆∇∈∉")

// injectDistractors draws the profile's noise elements over the composed
// text, in a fixed kind order: dots, curves, lines, shapes, decoys.
// Counts come straight from the profile; a zero count disables a kind.
func injectDistractors(c *Canvas, rng *rand.Rand, prof Profile, cat *font.Catalog, sizes []float64, fg, bg RGBA) {
	w := float64(c.Width())
	h := float64(c.Height())
	maxStroke := 1 + int(2*prof.NoiseDensity+0.5)

	for i := 0; i < prof.NoiseDots; i++ {
		x := rng.Float64() * w
		y := rng.Float64() * h
		width := float64(1 + rng.Intn(maxStroke))
		drawDot(c, x, y, width/2, distractorColor(rng, fg, bg, 1))
	}

	for i := 0; i < prof.NoiseCurves; i++ {
		start := Point{X: rng.Float64() * w / 5, Y: bandY(rng, h)}
		end := Point{X: w/5 + rng.Float64()*(w-w/5), Y: bandY(rng, h)}
		width := float64(1 + rng.Intn(maxStroke))
		col := distractorColor(rng, fg, bg, 1)
		if rng.Intn(2) == 0 {
			ctrl := Point{X: rng.Float64() * w, Y: rng.Float64() * h}
			strokeQuadBez(c, QuadBez{P0: start, P1: ctrl, P2: end}, width, col)
		} else {
			c1 := Point{X: rng.Float64() * w, Y: rng.Float64() * h}
			c2 := Point{X: rng.Float64() * w, Y: rng.Float64() * h}
			strokeCubicBez(c, CubicBez{P0: start, P1: c1, P2: c2, P3: end}, width, col)
		}
	}

	for i := 0; i < prof.Lines; i++ {
		alpha := float64(50+rng.Intn(100)) / 255
		col := distractorColor(rng, fg, bg, alpha)
		width := float64(1 + rng.Intn(maxStroke))
		var l Line
		switch rng.Intn(3) {
		case 0: // corner to corner
			l = Line{
				P0: Point{X: rng.Float64() * w, Y: rng.Float64() * h},
				P1: Point{X: rng.Float64() * w, Y: rng.Float64() * h},
			}
		case 1: // roughly horizontal
			y := rng.Float64() * h
			l = Line{
				P0: Point{X: 0, Y: y},
				P1: Point{X: w - 1, Y: y + (rng.Float64()*2-1)*h*0.1},
			}
		default: // roughly vertical
			x := rng.Float64() * w
			l = Line{
				P0: Point{X: x, Y: 0},
				P1: Point{X: x + (rng.Float64()*2-1)*w*0.1, Y: h - 1},
			}
		}
		strokeLine(c, l, width, col)
	}

	for i := 0; i < prof.Shapes; i++ {
		cx := rng.Float64() * w
		cy := rng.Float64() * h
		rx := float64(10 + rng.Intn(20))
		ry := rx * (0.6 + rng.Float64()*0.8)
		alpha := float64(30+rng.Intn(80)) / 255
		col := distractorColor(rng, fg, bg, alpha)
		if rng.Intn(2) == 0 {
			fillEllipse(c, cx, cy, rx, ry, col)
		} else {
			strokeEllipse(c, cx, cy, rx, ry, 2, col)
		}
	}

	for i := 0; i < prof.Decoys; i++ {
		r := decoyRunes[rng.Intn(len(decoyRunes))]
		face := rng.Intn(cat.Len())
		size := sizes[rng.Intn(len(sizes))]
		x := rng.Float64() * math.Max(w-20, 1)
		y := rng.Float64() * math.Max(h-20, 1)
		rot := prof.RotateMin + rng.Float64()*(prof.RotateMax-prof.RotateMin)
		alpha := float64(40+rng.Intn(60)) / 255
		col := distractorColor(rng, fg, bg, alpha)

		g := cat.Source(face).Rasterize(r, size)
		if g == nil || g.Mask == nil {
			// Not every font covers the symbol set; skipping one decoy
			// degrades nothing.
			Logger().Debug("decoy symbol unavailable, skipped",
				"char", string(r), "font", cat.Source(face).Name())
			continue
		}
		mask := xform.RotateAlpha(g.Mask, rot*math.Pi/180)
		blendAlphaMask(c, mask, int(x), int(y), col)
	}
}

// bandY draws a y coordinate from the vertical middle band, where noise
// crosses the text instead of hugging the edges.
func bandY(rng *rand.Rand, h float64) float64 {
	return h/5 + rng.Float64()*(h-2*h/5)
}

// distractorColor jitters the foreground into a noise color, then nudges
// the result if the jitter landed exactly back on the foreground or the
// background. Noise must stay distinguishable from both.
func distractorColor(rng *rand.Rand, fg, bg RGBA, alpha float64) RGBA {
	out := RGBA{
		R: clamp01(fg.R + (rng.Float64()*2-1)*0.15),
		G: clamp01(fg.G + (rng.Float64()*2-1)*0.15),
		B: clamp01(fg.B + (rng.Float64()*2-1)*0.15),
		A: alpha,
	}
	for _, ref := range [2]RGBA{fg, bg} {
		if out.R == ref.R && out.G == ref.G && out.B == ref.B {
			if out.G > 0.5 {
				out.G -= 0.08
			} else {
				out.G += 0.08
			}
		}
	}
	return out
}
