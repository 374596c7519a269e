package captcha

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// Verify at compile time that Canvas implements image.Image.
var _ image.Image = (*Canvas)(nil)

func TestNewCanvas(t *testing.T) {
	c := NewCanvas(160, 60)
	if c.Width() != 160 || c.Height() != 60 {
		t.Errorf("size = %dx%d, want 160x60", c.Width(), c.Height())
	}
	if len(c.Data()) != 160*60*4 {
		t.Errorf("data length = %d, want %d", len(c.Data()), 160*60*4)
	}
}

func TestSetGetPixel(t *testing.T) {
	c := NewCanvas(8, 8)
	col := RGBA{R: 1, G: 0.5, B: 0.25, A: 1}
	c.SetPixel(3, 4, col)

	got := c.GetPixel(3, 4)
	const tolerance = 0.01
	if absDiff(got.R, col.R) > tolerance || absDiff(got.G, col.G) > tolerance ||
		absDiff(got.B, col.B) > tolerance || absDiff(got.A, col.A) > tolerance {
		t.Errorf("GetPixel = %v, want %v", got, col)
	}
}

func TestPixelOutOfBounds(t *testing.T) {
	c := NewCanvas(4, 4)
	// Must be no-ops, not panics.
	c.SetPixel(-1, 0, White)
	c.SetPixel(0, -1, White)
	c.SetPixel(4, 0, White)
	c.SetPixel(0, 4, White)
	c.BlendPixel(-1, -1, White)

	if got := c.GetPixel(-1, 0); got != Transparent {
		t.Errorf("GetPixel out of bounds = %v, want Transparent", got)
	}
}

func TestBlendPixelOpaque(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Fill(White)
	c.BlendPixel(0, 0, Black)

	if got := c.GetPixel(0, 0); got.R > 0.01 || got.G > 0.01 || got.B > 0.01 {
		t.Errorf("opaque blend = %v, want black", got)
	}
}

func TestBlendPixelSemiTransparent(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Fill(White)
	c.BlendPixel(0, 0, RGBA{R: 0, G: 0, B: 0, A: 0.5})

	got := c.GetPixel(0, 0)
	if absDiff(got.R, 0.5) > 0.01 || absDiff(got.A, 1) > 0.01 {
		t.Errorf("50%% black over white = %v, want mid gray, opaque", got)
	}
}

func TestBlendPixelZeroAlpha(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Fill(White)
	c.BlendPixel(1, 1, RGBA{R: 0, G: 0, B: 0, A: 0})

	if got := c.GetPixel(1, 1); got != White {
		t.Errorf("zero-alpha blend changed pixel to %v", got)
	}
}

func TestFill(t *testing.T) {
	c := NewCanvas(5, 5)
	col := RGBA{R: 0.9, G: 0.9, B: 0.95, A: 1}
	c.Fill(col)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			got := c.GetPixel(x, y)
			if absDiff(got.R, col.R) > 0.01 || absDiff(got.B, col.B) > 0.01 {
				t.Fatalf("pixel (%d,%d) = %v after Fill(%v)", x, y, got, col)
			}
		}
	}
}

func TestClone(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Fill(White)
	clone := c.Clone()

	c.SetPixel(0, 0, Black)
	if got := clone.GetPixel(0, 0); got != White {
		t.Errorf("clone shares storage with original: %v", got)
	}
}

func TestToImageFromImage(t *testing.T) {
	c := NewCanvas(6, 3)
	c.Fill(RGBA{R: 0.2, G: 0.4, B: 0.6, A: 1})
	c.SetPixel(2, 1, White)

	img := c.ToImage()
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 3 {
		t.Fatalf("ToImage bounds = %v", img.Bounds())
	}

	back := FromImage(img)
	if back.Width() != 6 || back.Height() != 3 {
		t.Fatalf("FromImage size = %dx%d", back.Width(), back.Height())
	}
	if got := back.GetPixel(2, 1); absDiff(got.R, 1) > 0.01 {
		t.Errorf("pixel lost in image roundtrip: %v", got)
	}
}

func TestEncodePNG(t *testing.T) {
	c := NewCanvas(20, 10)
	c.Fill(RGBA{R: 0.95, G: 0.95, B: 1, A: 1})

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("decoding PNG: %v", err)
	}
	if cfg.Width != 20 || cfg.Height != 10 {
		t.Errorf("decoded size = %dx%d, want 20x10", cfg.Width, cfg.Height)
	}
}

func TestSavePNG(t *testing.T) {
	c := NewCanvas(8, 8)
	c.Fill(White)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}

func TestCanvasImageInterface(t *testing.T) {
	c := NewCanvas(3, 3)
	c.SetPixel(1, 1, Black)

	if got := c.Bounds(); got != image.Rect(0, 0, 3, 3) {
		t.Errorf("Bounds() = %v", got)
	}
	if c.ColorModel() != color.NRGBAModel {
		t.Error("ColorModel() is not NRGBAModel")
	}
	r, g, b, a := c.At(1, 1).RGBA()
	if r != 0 || g != 0 || b != 0 || a == 0 {
		t.Errorf("At(1,1) = (%d,%d,%d,%d), want opaque black", r, g, b, a)
	}
}
