package captcha

import (
	"testing"

	"github.com/gogpu/captcha/font"
)

func TestInjectDistractorsChangesCanvas(t *testing.T) {
	prof, _ := ResolveProfile(TierPart4)
	cat := font.NewCatalog()

	c := NewCanvas(200, 100)
	c.Fill(White)
	before := append([]uint8(nil), c.Data()...)

	fg := RGBA{R: 0.1, G: 0.1, B: 0.2, A: 0.9}
	injectDistractors(c, NewRand(8), prof, cat, []float64{40, 50}, fg, White)

	diff := 0
	for i := range before {
		if c.Data()[i] != before[i] {
			diff++
		}
	}
	if diff == 0 {
		t.Fatal("distractors drew nothing")
	}
	// 80 dots plus curves, lines, shapes and decoys should touch a fair
	// share of a 200x100 canvas.
	if diff < 200 {
		t.Errorf("distractors touched only %d bytes, suspiciously few", diff)
	}
}

func TestInjectDistractorsDeterministic(t *testing.T) {
	prof, _ := ResolveProfile(TierPart3)
	cat := font.NewCatalog()
	fg := RGBA{R: 0.2, G: 0.1, B: 0.1, A: 0.85}

	a := NewCanvas(180, 80)
	b := NewCanvas(180, 80)
	a.Fill(White)
	b.Fill(White)

	injectDistractors(a, NewRand(31), prof, cat, []float64{40}, fg, White)
	injectDistractors(b, NewRand(31), prof, cat, []float64{40}, fg, White)

	for i := range a.Data() {
		if a.Data()[i] != b.Data()[i] {
			t.Fatal("same seed produced different noise")
		}
	}
}

func TestInjectDistractorsRespectsZeroCounts(t *testing.T) {
	prof, _ := ResolveProfile(TierPart2)
	if prof.Lines != 0 || prof.Shapes != 0 || prof.Decoys != 0 {
		t.Fatal("part2 should only enable dots and curves")
	}

	cat := font.NewCatalog()
	c := NewCanvas(160, 60)
	c.Fill(White)
	// Must not panic with most kinds disabled.
	injectDistractors(c, NewRand(2), prof, cat, []float64{30}, Black, White)
}

func TestDecoyRunesAreNonASCII(t *testing.T) {
	if len(decoyRunes) == 0 {
		t.Fatal("no decoy symbols defined")
	}
	for _, r := range decoyRunes {
		if r < 128 {
			t.Errorf("decoy %q is ASCII; decoys must stay outside the charset", r)
		}
	}
}

func TestDecoysOutsideDefaultCharset(t *testing.T) {
	for _, r := range decoyRunes {
		for _, c := range DefaultCharset {
			if r == c {
				t.Errorf("decoy %q collides with the charset", r)
			}
		}
	}
}

func TestDistractorColorContrasts(t *testing.T) {
	rng := NewRand(12)
	fg := RGBA{R: 0.3, G: 0.3, B: 0.3, A: 1}
	bg := RGBA{R: 0.95, G: 0.95, B: 0.95, A: 1}

	for range 200 {
		got := distractorColor(rng, fg, bg, 0.7)
		if got.R == fg.R && got.G == fg.G && got.B == fg.B {
			t.Fatal("distractor color identical to foreground")
		}
		if got.R == bg.R && got.G == bg.G && got.B == bg.B {
			t.Fatal("distractor color identical to background")
		}
		if got.A != 0.7 {
			t.Fatalf("alpha = %v, want 0.7", got.A)
		}
	}
}
