package xform

import (
	"image"
	"image/color"
	"math"
)

// RotateAlpha rotates an alpha mask by angle (radians) about its center.
// The output is expanded to hold the full rotated bounds, so no coverage is
// lost. Each destination pixel is inverse-mapped into the source and
// bilinearly resampled; everything outside the source is transparent.
//
// A zero angle returns src unchanged.
func RotateAlpha(src *image.Alpha, angle float64) *image.Alpha {
	if angle == 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return src
	}

	sin := math.Abs(math.Sin(angle))
	cos := math.Abs(math.Cos(angle))
	outW := int(math.Ceil(float64(w)*cos + float64(h)*sin))
	outH := int(math.Ceil(float64(w)*sin + float64(h)*cos))
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}

	// Inverse mapping: rotate destination points by -angle about the
	// destination center, then shift onto the source center.
	inv := Translate(
		float64(w)/2-float64(outW)/2,
		float64(h)/2-float64(outH)/2,
	).Multiply(RotateAt(-angle, float64(outW)/2, float64(outH)/2))

	out := image.NewAlpha(image.Rect(0, 0, outW, outH))
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			sx, sy := inv.TransformPoint(float64(x)+0.5, float64(y)+0.5)
			a := sampleAlpha(src, sx-0.5, sy-0.5)
			if a > 0 {
				out.SetAlpha(x, y, color.Alpha{A: a})
			}
		}
	}
	return out
}

// WarpAlpha displaces the mask along two sine waves: rows shift
// horizontally by up to ampX pixels as a function of y, columns shift
// vertically by up to ampY pixels as a function of x. The wave period is
// the mask dimension, so one full oscillation spans the glyph. The output
// is padded by the amplitudes so displaced coverage is kept.
//
// Zero amplitudes are a pure passthrough.
func WarpAlpha(src *image.Alpha, ampX, ampY, phaseX, phaseY float64) *image.Alpha {
	if ampX <= 0 && ampY <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return src
	}
	if ampX < 0 {
		ampX = 0
	}
	if ampY < 0 {
		ampY = 0
	}

	padX := int(math.Ceil(ampX))
	padY := int(math.Ceil(ampY))
	outW := w + 2*padX
	outH := h + 2*padY

	out := image.NewAlpha(image.Rect(0, 0, outW, outH))
	for y := 0; y < outH; y++ {
		dx := ampX * math.Sin(2*math.Pi*float64(y)/float64(h)+phaseX)
		for x := 0; x < outW; x++ {
			dy := ampY * math.Cos(2*math.Pi*float64(x)/float64(w)+phaseY)
			sx := float64(x-padX) + dx
			sy := float64(y-padY) + dy
			a := sampleAlpha(src, sx, sy)
			if a > 0 {
				out.SetAlpha(x, y, color.Alpha{A: a})
			}
		}
	}
	return out
}

// sampleAlpha bilinearly samples src at continuous pixel coordinates
// (integer coordinates hit pixel centers). Taps outside the bounds read as
// fully transparent instead of clamping, so transformed masks keep clean
// edges.
func sampleAlpha(src *image.Alpha, fx, fy float64) uint8 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	get := func(x, y int) float64 {
		if x < 0 || x >= w || y < 0 || y >= h {
			return 0
		}
		return float64(src.AlphaAt(b.Min.X+x, b.Min.Y+y).A)
	}

	v := lerp2D(get(x0, y0), get(x0+1, y0), get(x0, y0+1), get(x0+1, y0+1), tx, ty)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}
