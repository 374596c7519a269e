package captcha

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// Canvas represents a rectangular pixel buffer owned by one generation call.
// It is never shared between concurrent generations; each sample gets a
// fresh buffer that becomes immutable output once the sample is returned.
type Canvas struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewCanvas creates a new canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the canvas.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the height of the canvas.
func (c *Canvas) Height() int {
	return c.height
}

// Data returns the raw pixel data (RGBA format).
func (c *Canvas) Data() []uint8 {
	return c.data
}

// SetPixel sets the color of a single pixel.
func (c *Canvas) SetPixel(x, y int, col RGBA) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	i := (y*c.width + x) * 4
	c.data[i+0] = uint8(clamp255(col.R * 255))
	c.data[i+1] = uint8(clamp255(col.G * 255))
	c.data[i+2] = uint8(clamp255(col.B * 255))
	c.data[i+3] = uint8(clamp255(col.A * 255))
}

// GetPixel returns the color of a single pixel.
func (c *Canvas) GetPixel(x, y int) RGBA {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Transparent
	}
	i := (y*c.width + x) * 4
	return RGBA{
		R: float64(c.data[i+0]) / 255,
		G: float64(c.data[i+1]) / 255,
		B: float64(c.data[i+2]) / 255,
		A: float64(c.data[i+3]) / 255,
	}
}

// BlendPixel composites a color over the existing pixel (source-over).
// A color with alpha 1 replaces the pixel; alpha 0 leaves it untouched.
func (c *Canvas) BlendPixel(x, y int, col RGBA) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	if col.A <= 0 {
		return
	}
	if col.A >= 1 {
		c.SetPixel(x, y, col)
		return
	}

	dst := c.GetPixel(x, y)
	outA := col.A + dst.A*(1-col.A)
	if outA <= 0 {
		c.SetPixel(x, y, Transparent)
		return
	}
	inv := dst.A * (1 - col.A)
	c.SetPixel(x, y, RGBA{
		R: (col.R*col.A + dst.R*inv) / outA,
		G: (col.G*col.A + dst.G*inv) / outA,
		B: (col.B*col.A + dst.B*inv) / outA,
		A: outA,
	})
}

// Fill floods the entire canvas with a color.
func (c *Canvas) Fill(col RGBA) {
	r := uint8(clamp255(col.R * 255))
	g := uint8(clamp255(col.G * 255))
	b := uint8(clamp255(col.B * 255))
	a := uint8(clamp255(col.A * 255))

	for i := 0; i < len(c.data); i += 4 {
		c.data[i+0] = r
		c.data[i+1] = g
		c.data[i+2] = b
		c.data[i+3] = a
	}
}

// Clone returns a deep copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	out := NewCanvas(c.width, c.height)
	copy(out.data, c.data)
	return out
}

// ToImage converts the canvas to an image.RGBA.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	copy(img.Pix, c.data)
	return img
}

// FromImage creates a canvas from an image.
func FromImage(img image.Image) *Canvas {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	cv := NewCanvas(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			cv.SetPixel(x, y, FromColor(c))
		}
	}

	return cv
}

// EncodePNG writes the canvas to w in PNG format.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.ToImage())
}

// SavePNG saves the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return c.EncodePNG(f)
}

// At implements the image.Image interface.
func (c *Canvas) At(x, y int) color.Color {
	return c.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// ColorModel implements the image.Image interface.
func (c *Canvas) ColorModel() color.Model {
	return color.NRGBAModel
}
