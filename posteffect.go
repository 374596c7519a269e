package captcha

import (
	"math"
	"math/rand"
	"sync"
)

// applyPostEffects runs the closing filter stage: a fixed 3x3 smoothing
// pass on every tier, then a Gaussian blur with a radius drawn from the
// profile's range when the profile enables one. Radius zero is the
// identity, so easy tiers pass through unchanged apart from smoothing.
func applyPostEffects(c *Canvas, rng *rand.Rand, prof Profile) {
	smooth3x3(c)
	if prof.BlurMax <= 0 {
		return
	}
	radius := prof.BlurMin + rng.Intn(prof.BlurMax-prof.BlurMin+1)
	gaussianBlur(c, float64(radius))
}

// smooth3x3 applies the fixed smoothing kernel
//
//	1 1 1
//	1 5 1   / 13
//	1 1 1
//
// to the color channels, softening rasterization stairsteps. Border
// pixels are copied through unfiltered.
func smooth3x3(c *Canvas) {
	w, h := c.Width(), c.Height()
	if w < 3 || h < 3 {
		return
	}
	src := c.Clone()
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var r, g, b float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					p := src.GetPixel(x+kx, y+ky)
					wgt := 1.0
					if kx == 0 && ky == 0 {
						wgt = 5.0
					}
					r += p.R * wgt
					g += p.G * wgt
					b += p.B * wgt
				}
			}
			c.SetPixel(x, y, RGBA{
				R: r / 13,
				G: g / 13,
				B: b / 13,
				A: src.GetPixel(x, y).A,
			})
		}
	}
}

// gaussianKernel builds a normalized 1D Gaussian kernel with sigma equal
// to the radius, covering three sigmas to each side.
func gaussianKernel(radius float64) []float64 {
	sigma := radius
	half := int(math.Ceil(3 * sigma))
	size := 2*half + 1
	k := make([]float64, size)
	var sum float64
	twoSigma2 := 2 * sigma * sigma
	for i := 0; i < size; i++ {
		d := float64(i - half)
		k[i] = math.Exp(-(d * d) / twoSigma2)
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

var (
	kernelMu    sync.RWMutex
	kernelCache = map[int][]float64{}
)

// cachedGaussianKernel memoizes kernels keyed by radius at centipixel
// granularity. Batch runs hit the same one or two radii constantly.
// The cache evicts half its entries once it holds 64.
func cachedGaussianKernel(radius float64) []float64 {
	key := int(radius * 100)

	kernelMu.RLock()
	k, ok := kernelCache[key]
	kernelMu.RUnlock()
	if ok {
		return k
	}

	k = gaussianKernel(radius)

	kernelMu.Lock()
	if len(kernelCache) >= 64 {
		for cached := range kernelCache {
			delete(kernelCache, cached)
			if len(kernelCache) <= 32 {
				break
			}
		}
	}
	kernelCache[key] = k
	kernelMu.Unlock()
	return k
}

// gaussianBlur convolves the canvas with a separable Gaussian: one
// horizontal pass into a scratch buffer, one vertical pass back. Radius
// zero or negative is the identity. Edges clamp.
func gaussianBlur(c *Canvas, radius float64) {
	if radius <= 0 {
		return
	}
	kernel := cachedGaussianKernel(radius)
	half := len(kernel) / 2
	w, h := c.Width(), c.Height()
	data := c.Data()
	tmp := make([]float64, len(data))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a float64
			for i, wgt := range kernel {
				sx := x + i - half
				if sx < 0 {
					sx = 0
				} else if sx >= w {
					sx = w - 1
				}
				j := (y*w + sx) * 4
				r += float64(data[j+0]) * wgt
				g += float64(data[j+1]) * wgt
				b += float64(data[j+2]) * wgt
				a += float64(data[j+3]) * wgt
			}
			j := (y*w + x) * 4
			tmp[j+0], tmp[j+1], tmp[j+2], tmp[j+3] = r, g, b, a
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a float64
			for i, wgt := range kernel {
				sy := y + i - half
				if sy < 0 {
					sy = 0
				} else if sy >= h {
					sy = h - 1
				}
				j := (sy*w + x) * 4
				r += tmp[j+0] * wgt
				g += tmp[j+1] * wgt
				b += tmp[j+2] * wgt
				a += tmp[j+3] * wgt
			}
			j := (y*w + x) * 4
			data[j+0] = clampUint8(r)
			data[j+1] = clampUint8(g)
			data[j+2] = clampUint8(b)
			data[j+3] = clampUint8(a)
		}
	}
}

func clampUint8(v float64) uint8 {
	v += 0.5
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
