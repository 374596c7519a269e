package captcha

import (
	"image/color"
	"testing"
)

func TestRGBA_Color(t *testing.T) {
	tests := []struct {
		name string
		c    RGBA
		want color.NRGBA
	}{
		{name: "opaque black", c: Black, want: color.NRGBA{0, 0, 0, 255}},
		{name: "opaque white", c: White, want: color.NRGBA{255, 255, 255, 255}},
		{name: "transparent", c: Transparent, want: color.NRGBA{0, 0, 0, 0}},
		{name: "half alpha red", c: RGBA2(1, 0, 0, 0.5), want: color.NRGBA{255, 0, 0, 127}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.Color().(color.NRGBA)
			if diff8(got.R, tt.want.R) > 1 || diff8(got.G, tt.want.G) > 1 ||
				diff8(got.B, tt.want.B) > 1 || diff8(got.A, tt.want.A) > 1 {
				t.Errorf("Color() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromColor_Roundtrip(t *testing.T) {
	original := RGBA{R: 0.8, G: 0.3, B: 0.5, A: 1}
	roundtripped := FromColor(original.Color())

	const tolerance = 0.01
	if absDiff(original.R, roundtripped.R) > tolerance ||
		absDiff(original.G, roundtripped.G) > tolerance ||
		absDiff(original.B, roundtripped.B) > tolerance ||
		absDiff(original.A, roundtripped.A) > tolerance {
		t.Errorf("roundtrip: %v -> %v", original, roundtripped)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		hex  string
		want RGBA
	}{
		{"#000", RGBA{0, 0, 0, 1}},
		{"#fff", RGBA{1, 1, 1, 1}},
		{"#ff0000", RGBA{1, 0, 0, 1}},
		{"3498db", RGBA{0x34 / 255.0, 0x98 / 255.0, 0xdb / 255.0, 1}},
		{"#00000080", RGBA{0, 0, 0, 128 / 255.0}},
		{"bogus!", RGBA{0, 0, 0, 1}},
	}

	const tolerance = 0.005
	for _, tt := range tests {
		got := Hex(tt.hex)
		if absDiff(got.R, tt.want.R) > tolerance ||
			absDiff(got.G, tt.want.G) > tolerance ||
			absDiff(got.B, tt.want.B) > tolerance ||
			absDiff(got.A, tt.want.A) > tolerance {
			t.Errorf("Hex(%q) = %v, want %v", tt.hex, got, tt.want)
		}
	}
}

func TestLerp(t *testing.T) {
	a := RGBA{0, 0, 0, 1}
	b := RGBA{1, 1, 1, 1}

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
	mid := a.Lerp(b, 0.5)
	if absDiff(mid.R, 0.5) > 1e-9 || absDiff(mid.G, 0.5) > 1e-9 {
		t.Errorf("Lerp(0.5) = %v, want gray", mid)
	}
}

func TestRandomColor(t *testing.T) {
	rng := NewRand(7)
	for range 100 {
		c := RandomColor(rng, 230, 255, 1)
		for name, ch := range map[string]float64{"R": c.R, "G": c.G, "B": c.B} {
			v := int(ch*255 + 0.5)
			if v < 230 || v > 255 {
				t.Fatalf("RandomColor channel %s = %d, want within [230, 255]", name, v)
			}
		}
		if c.A != 1 {
			t.Fatalf("RandomColor alpha = %v, want 1", c.A)
		}
	}
}

func TestRandomColorDeterministic(t *testing.T) {
	a := RandomColor(NewRand(99), 10, 180, 0.9)
	b := RandomColor(NewRand(99), 10, 180, 0.9)
	if a != b {
		t.Errorf("same seed produced different colors: %v vs %v", a, b)
	}
}

func diff8(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
