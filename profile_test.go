package captcha

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveProfileKnownTiers(t *testing.T) {
	for _, tier := range []Tier{TierPart2, TierPart3, TierPart4} {
		p, err := ResolveProfile(tier)
		if err != nil {
			t.Fatalf("ResolveProfile(%s) failed: %v", tier, err)
		}
		if p.Tier != tier {
			t.Errorf("profile.Tier = %s, want %s", p.Tier, tier)
		}
		if p.MinLength <= 0 || p.MaxLength < p.MinLength {
			t.Errorf("%s: bad length range %d..%d", tier, p.MinLength, p.MaxLength)
		}
	}
}

func TestResolveProfileUnknownTier(t *testing.T) {
	for _, tier := range []Tier{"part9", "", "PART2", "part2 "} {
		_, err := ResolveProfile(tier)
		if err == nil {
			t.Fatalf("ResolveProfile(%q) succeeded, want error", tier)
		}
		var ute *UnknownTierError
		if !errors.As(err, &ute) {
			t.Fatalf("error type = %T, want *UnknownTierError", err)
		}
		if ute.Tier != string(tier) {
			t.Errorf("UnknownTierError.Tier = %q, want %q", ute.Tier, tier)
		}
		if !strings.Contains(err.Error(), "part2, part3 or part4") {
			t.Errorf("error message should name the valid tiers: %q", err)
		}
	}
}

func TestResolveProfileIsPure(t *testing.T) {
	a, _ := ResolveProfile(TierPart3)
	a.NoiseDots = 9999

	b, _ := ResolveProfile(TierPart3)
	if b.NoiseDots == 9999 {
		t.Error("mutating a resolved profile leaked into the shared table")
	}
}

// Degradation must widen monotonically with the tier: every geometric
// range and noise count is non-decreasing from part2 through part4.
func TestProfilesWidenMonotonically(t *testing.T) {
	p2, _ := ResolveProfile(TierPart2)
	p3, _ := ResolveProfile(TierPart3)
	p4, _ := ResolveProfile(TierPart4)

	chain := []Profile{p2, p3, p4}
	for i := 1; i < len(chain); i++ {
		lo, hi := chain[i-1], chain[i]

		if hi.RotateMax-hi.RotateMin < lo.RotateMax-lo.RotateMin {
			t.Errorf("%s rotation range narrower than %s", hi.Tier, lo.Tier)
		}
		if hi.WarpDXMax < lo.WarpDXMax || hi.WarpDYMax < lo.WarpDYMax {
			t.Errorf("%s warp intensity below %s", hi.Tier, lo.Tier)
		}
		if hi.OffsetDX < lo.OffsetDX || hi.OffsetDY < lo.OffsetDY {
			t.Errorf("%s jitter bounds below %s", hi.Tier, lo.Tier)
		}
		if hi.NoiseDots < lo.NoiseDots || hi.NoiseCurves < lo.NoiseCurves ||
			hi.Lines < lo.Lines || hi.Shapes < lo.Shapes || hi.Decoys < lo.Decoys {
			t.Errorf("%s noise counts below %s", hi.Tier, lo.Tier)
		}
		if hi.NoiseDensity < lo.NoiseDensity {
			t.Errorf("%s noise density below %s", hi.Tier, lo.Tier)
		}
		if hi.OverlapAllowance < lo.OverlapAllowance {
			t.Errorf("%s overlap allowance below %s", hi.Tier, lo.Tier)
		}
	}
}

func TestDistractorKindsSupersets(t *testing.T) {
	p2, _ := ResolveProfile(TierPart2)
	p3, _ := ResolveProfile(TierPart3)
	p4, _ := ResolveProfile(TierPart4)

	asSet := func(kinds []string) map[string]bool {
		m := make(map[string]bool, len(kinds))
		for _, k := range kinds {
			m[k] = true
		}
		return m
	}

	k2, k3, k4 := p2.DistractorKinds(), asSet(p3.DistractorKinds()), asSet(p4.DistractorKinds())
	for _, k := range k2 {
		if !k3[k] {
			t.Errorf("part3 lost distractor kind %q enabled in part2", k)
		}
	}
	for k := range k3 {
		if !k4[k] {
			t.Errorf("part4 lost distractor kind %q enabled in part3", k)
		}
	}
	if len(k4) <= len(k3) {
		t.Error("part4 should enable more distractor kinds than part3")
	}
}

func TestTierValid(t *testing.T) {
	for _, tier := range []Tier{TierPart2, TierPart3, TierPart4} {
		if !tier.Valid() {
			t.Errorf("%s.Valid() = false", tier)
		}
	}
	if Tier("part9").Valid() {
		t.Error(`Tier("part9").Valid() = true`)
	}
}

func TestBackgroundKindString(t *testing.T) {
	tests := map[BackgroundKind]string{
		BackgroundSolid:    "solid",
		BackgroundGradient: "gradient",
		BackgroundTextured: "textured",
		BackgroundKind(9):  "unknown",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestTierBackgrounds(t *testing.T) {
	p2, _ := ResolveProfile(TierPart2)
	p3, _ := ResolveProfile(TierPart3)
	p4, _ := ResolveProfile(TierPart4)

	if p2.Background != BackgroundSolid {
		t.Errorf("part2 background = %s, want solid", p2.Background)
	}
	if p3.Background != BackgroundGradient {
		t.Errorf("part3 background = %s, want gradient", p3.Background)
	}
	if p4.Background != BackgroundTextured {
		t.Errorf("part4 background = %s, want textured", p4.Background)
	}
	if p4.BlurMax <= 0 {
		t.Error("part4 should enable blur")
	}
	if p2.BlurMax != 0 || p3.BlurMax != 0 {
		t.Error("blur should be exclusive to part4")
	}
}
