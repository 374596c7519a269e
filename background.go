package captcha

import (
	"math"
	"math/rand"
)

// synthesizeBackground paints the base canvas for one sample. Every pixel
// is written, so the canvas needs no prior fill.
//
// Solid backgrounds honor base; gradient and textured backgrounds draw
// their own light palette so the text layer keeps contrast headroom.
func synthesizeBackground(c *Canvas, kind BackgroundKind, base RGBA, rng *rand.Rand) {
	switch kind {
	case BackgroundGradient:
		paintGradient(c, rng)
	case BackgroundTextured:
		paintGradient(c, rng)
		grain(c, rng, 6.0/255.0)
	default:
		c.Fill(base)
	}
}

// paintGradient interpolates between two random light colors along a
// random axis: horizontal, vertical or diagonal.
func paintGradient(c *Canvas, rng *rand.Rand) {
	c1 := RandomColor(rng, 215, 240, 1)
	c2 := RandomColor(rng, 235, 255, 1)
	axis := rng.Intn(3)

	w := float64(c.Width())
	h := float64(c.Height())
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			var t float64
			switch axis {
			case 0:
				t = float64(x) / math.Max(w-1, 1)
			case 1:
				t = float64(y) / math.Max(h-1, 1)
			default:
				t = (float64(x) + float64(y)) / math.Max(w+h-2, 1)
			}
			c.SetPixel(x, y, c1.Lerp(c2, t))
		}
	}
}

// grain adds monochrome per-pixel noise of at most amp per channel, which
// keeps the texture paper-like instead of confetti-like.
func grain(c *Canvas, rng *rand.Rand, amp float64) {
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			n := (rng.Float64()*2 - 1) * amp
			p := c.GetPixel(x, y)
			c.SetPixel(x, y, RGBA{
				R: clamp01(p.R + n),
				G: clamp01(p.G + n),
				B: clamp01(p.B + n),
				A: 1,
			})
		}
	}
}
