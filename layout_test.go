package captcha

import (
	"testing"

	"github.com/gogpu/captcha/font"
)

func layoutFixture(t *testing.T, tier Tier, text string, width int, seed int64) []GlyphPlacement {
	t.Helper()

	prof, err := ResolveProfile(tier)
	if err != nil {
		t.Fatalf("ResolveProfile(%s): %v", tier, err)
	}
	cat := font.NewCatalog()
	return layoutText(NewRand(seed), []rune(text), cat, []float64{30, 36, 42}, prof, width)
}

func TestLayoutTextSlotCount(t *testing.T) {
	placements := layoutFixture(t, TierPart2, "2CUVK", 160, 1)

	var ink, gaps int
	for _, p := range placements {
		if p.Gap {
			gaps++
		} else {
			ink++
		}
	}
	if ink != 5 {
		t.Errorf("ink slots = %d, want one per character", ink)
	}
	if len(placements) != ink+gaps {
		t.Errorf("slot count %d != ink %d + gaps %d", len(placements), ink, gaps)
	}
}

func TestLayoutTextCharactersInOrder(t *testing.T) {
	placements := layoutFixture(t, TierPart3, "B9F4L", 180, 3)

	var got []rune
	for _, p := range placements {
		if !p.Gap {
			got = append(got, p.Char)
		}
	}
	if string(got) != "B9F4L" {
		t.Errorf("ink slots spell %q, want %q", string(got), "B9F4L")
	}
}

func TestLayoutTextDeterministic(t *testing.T) {
	a := layoutFixture(t, TierPart4, "X5Y1Z", 200, 42)
	b := layoutFixture(t, TierPart4, "X5Y1Z", 200, 42)

	if len(a) != len(b) {
		t.Fatalf("slot counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("slot %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestLayoutTextSeedsDiffer(t *testing.T) {
	a := layoutFixture(t, TierPart2, "A7X9", 160, 1)
	b := layoutFixture(t, TierPart2, "A7X9", 160, 2)

	same := len(a) == len(b)
	if same {
		for i := range a {
			if a[i] != b[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("different seeds produced identical layouts")
	}
}

func TestLayoutTextNeverEscapesCanvas(t *testing.T) {
	// A narrow canvas with a long hard-tier text: clamping must keep
	// every slot inside, not fail or spill.
	placements := layoutFixture(t, TierPart4, "ABCDEFG", 60, 7)

	for i, p := range placements {
		if p.X < 0 || p.X >= 60 {
			t.Errorf("slot %d at x=%d outside canvas [0, 60)", i, p.X)
		}
	}
}

func TestLayoutTextParameterBounds(t *testing.T) {
	prof, _ := ResolveProfile(TierPart4)
	placements := layoutFixture(t, TierPart4, "7N8Q2", 200, 11)

	for i, p := range placements {
		if p.Rotation < prof.RotateMin || p.Rotation > prof.RotateMax {
			t.Errorf("slot %d rotation %v outside [%v, %v]",
				i, p.Rotation, prof.RotateMin, prof.RotateMax)
		}
		if p.DY < -prof.OffsetDY/2-1 || p.DY > prof.OffsetDY-prof.OffsetDY/2 {
			t.Errorf("slot %d vertical jitter %d outside centered band", i, p.DY)
		}
		if p.WarpAmpX < 0 || p.WarpAmpY < 0 {
			t.Errorf("slot %d negative warp amplitude", i)
		}
		if p.Size != 30 && p.Size != 36 && p.Size != 42 {
			t.Errorf("slot %d size %v not among candidates", i, p.Size)
		}
	}
}

func TestLayoutTextEmpty(t *testing.T) {
	if got := layoutFixture(t, TierPart2, "", 160, 1); got != nil {
		t.Errorf("layout of empty text = %v, want nil", got)
	}
}

func TestLayoutTextAdvancesRightward(t *testing.T) {
	// Overlap may pull neighbors together, but the overall drift across
	// the word must be rightward.
	placements := layoutFixture(t, TierPart2, "3K2M5", 160, 9)

	first := placements[0].X
	last := placements[len(placements)-1].X
	if last <= first {
		t.Errorf("layout does not progress: first x=%d, last x=%d", first, last)
	}
}
