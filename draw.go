package captcha

import "math"

// Raster helpers for noise elements. Stroked paths accumulate hard
// coverage in a scratch mask first and blend once, so overlapping stamps
// along a stroke do not double-blend semi-transparent color.

// strokeMask is the per-element coverage buffer.
type strokeMask struct {
	w, h int
	pix  []uint8
}

func newStrokeMask(w, h int) *strokeMask {
	return &strokeMask{w: w, h: h, pix: make([]uint8, w*h)}
}

func (m *strokeMask) setDisc(cx, cy, radius float64) {
	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))
	r2 := radius * radius
	for y := minY; y <= maxY; y++ {
		if y < 0 || y >= m.h {
			continue
		}
		for x := minX; x <= maxX; x++ {
			if x < 0 || x >= m.w {
				continue
			}
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r2 {
				m.pix[y*m.w+x] = 255
			}
		}
	}
}

func (m *strokeMask) blendTo(c *Canvas, col RGBA) {
	for y := 0; y < m.h; y++ {
		row := y * m.w
		for x := 0; x < m.w; x++ {
			if m.pix[row+x] > 0 {
				c.BlendPixel(x, y, col)
			}
		}
	}
}

// stampRadius converts a stroke width to a disc radius, with a floor so
// width 1 still leaves ink.
func stampRadius(width float64) float64 {
	r := width / 2
	if r < 0.5 {
		r = 0.5
	}
	return r
}

// stampPolyline stamps discs densely along consecutive points.
func stampPolyline(m *strokeMask, pts []Point, radius float64) {
	step := radius * 0.5
	for i := 1; i < len(pts); i++ {
		seg := Line{P0: pts[i-1], P1: pts[i]}
		n := int(math.Ceil(seg.Length()/step)) + 1
		for j := 0; j <= n; j++ {
			p := seg.Eval(float64(j) / float64(n))
			m.setDisc(p.X, p.Y, radius)
		}
	}
}

// curveSteps picks a flattening step count from a control polygon length.
func curveSteps(polyLength float64) int {
	steps := int(math.Ceil(polyLength / 2))
	if steps < 16 {
		steps = 16
	}
	if steps > 256 {
		steps = 256
	}
	return steps
}

// drawDot blends a filled disc directly; a single disc touches each
// pixel once, so no scratch mask is needed.
func drawDot(c *Canvas, cx, cy, radius float64, col RGBA) {
	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))
	r2 := radius * radius
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r2 {
				c.BlendPixel(x, y, col)
			}
		}
	}
}

// strokeLine strokes a line segment with the given width.
func strokeLine(c *Canvas, l Line, width float64, col RGBA) {
	m := newStrokeMask(c.Width(), c.Height())
	stampPolyline(m, []Point{l.P0, l.P1}, stampRadius(width))
	m.blendTo(c, col)
}

// strokeQuadBez flattens and strokes a quadratic Bezier.
func strokeQuadBez(c *Canvas, q QuadBez, width float64, col RGBA) {
	steps := curveSteps(q.PolyLength())
	pts := make([]Point, steps+1)
	for i := 0; i <= steps; i++ {
		pts[i] = q.Eval(float64(i) / float64(steps))
	}
	m := newStrokeMask(c.Width(), c.Height())
	stampPolyline(m, pts, stampRadius(width))
	m.blendTo(c, col)
}

// strokeCubicBez flattens and strokes a cubic Bezier.
func strokeCubicBez(c *Canvas, b CubicBez, width float64, col RGBA) {
	steps := curveSteps(b.PolyLength())
	pts := make([]Point, steps+1)
	for i := 0; i <= steps; i++ {
		pts[i] = b.Eval(float64(i) / float64(steps))
	}
	m := newStrokeMask(c.Width(), c.Height())
	stampPolyline(m, pts, stampRadius(width))
	m.blendTo(c, col)
}

// fillEllipse blends a filled axis-aligned ellipse.
func fillEllipse(c *Canvas, cx, cy, rx, ry float64, col RGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	minX := int(math.Floor(cx - rx))
	maxX := int(math.Ceil(cx + rx))
	minY := int(math.Floor(cy - ry))
	maxY := int(math.Ceil(cy + ry))
	for y := minY; y <= maxY; y++ {
		ny := (float64(y) + 0.5 - cy) / ry
		for x := minX; x <= maxX; x++ {
			nx := (float64(x) + 0.5 - cx) / rx
			if nx*nx+ny*ny <= 1 {
				c.BlendPixel(x, y, col)
			}
		}
	}
}

// strokeEllipse strokes the outline of an axis-aligned ellipse.
func strokeEllipse(c *Canvas, cx, cy, rx, ry, width float64, col RGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	radius := stampRadius(width)
	// Step by roughly half a stamp radius of arc length.
	circumference := 2 * math.Pi * math.Max(rx, ry)
	n := int(math.Ceil(circumference / (radius * 0.5)))
	if n < 16 {
		n = 16
	}
	m := newStrokeMask(c.Width(), c.Height())
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		m.setDisc(cx+rx*math.Cos(theta), cy+ry*math.Sin(theta), radius)
	}
	m.blendTo(c, col)
}
