package captcha

// Tier identifies a difficulty level. The enumeration is closed: only the
// three declared tiers resolve to a profile.
type Tier string

// Difficulty tiers in increasing order of visual degradation.
const (
	TierPart2 Tier = "part2"
	TierPart3 Tier = "part3"
	TierPart4 Tier = "part4"
)

// Valid reports whether t is one of the declared tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierPart2, TierPart3, TierPart4:
		return true
	}
	return false
}

// BackgroundKind selects how the base canvas is synthesized.
type BackgroundKind uint8

const (
	// BackgroundSolid fills the canvas with a single color.
	BackgroundSolid BackgroundKind = iota

	// BackgroundGradient interpolates between two colors along a random axis.
	BackgroundGradient

	// BackgroundTextured overlays a low-amplitude noise field on a gradient.
	BackgroundTextured
)

// String returns a string representation of the background kind.
func (k BackgroundKind) String() string {
	switch k {
	case BackgroundSolid:
		return "solid"
	case BackgroundGradient:
		return "gradient"
	case BackgroundTextured:
		return "textured"
	default:
		return "unknown"
	}
}

// Profile bundles every numeric and categorical parameter one tier feeds
// into the rendering components. Profiles are immutable values; ResolveProfile
// hands out copies, so callers may adjust a copy without affecting others.
//
// The three built-in bundles widen monotonically: rotation range, warp
// intensity and noise density are non-decreasing from part2 to part4, and
// each tier's enabled distractor kinds are a superset of the previous
// tier's.
type Profile struct {
	Tier Tier

	// Character geometry. Rotation is degrees; each glyph draws an angle
	// uniformly from [RotateMin, RotateMax]. Warp amplitudes are fractions
	// of the glyph's own width/height. Offsets bound per-character
	// placement jitter in pixels.
	RotateMin, RotateMax float64
	WarpDXMin, WarpDXMax float64
	WarpDYMin, WarpDYMax float64
	OffsetDX, OffsetDY   int

	// Spacing. GapProbability is the chance of inserting a spacer slot
	// before a character. OverlapAllowance bounds the subtractive spacing
	// jitter as a fraction of the average slot width; HardOverlap
	// additionally compresses advances so adjacent glyph boxes intersect.
	GapProbability   float64
	OverlapAllowance float64
	HardOverlap      bool

	// Distractor counts per generated image. A count of zero disables the
	// kind, so the enabled-kind set is derived from the non-zero counts.
	NoiseDots   int
	NoiseCurves int
	Lines       int
	Shapes      int
	Decoys      int

	// NoiseDensity in [0, 1] scales stroke weight bounds for distractors.
	NoiseDensity float64

	// Background and post effects. Blur radius is drawn uniformly from
	// [BlurMin, BlurMax] whole pixels; BlurMax zero disables blur.
	Background       BackgroundKind
	BlurMin, BlurMax int

	// Text length range (inclusive) for randomly drawn texts.
	MinLength, MaxLength int
}

// hardOverlapAdvance compresses glyph advances when HardOverlap is set,
// letting characters overlap by up to 30%.
const hardOverlapAdvance = 0.7

var profiles = map[Tier]Profile{
	TierPart2: {
		Tier:             TierPart2,
		RotateMin:        -30,
		RotateMax:        30,
		WarpDXMin:        0.1,
		WarpDXMax:        0.3,
		WarpDYMin:        0.2,
		WarpDYMax:        0.3,
		OffsetDX:         4,
		OffsetDY:         6,
		GapProbability:   0.7,
		OverlapAllowance: 0.25,
		NoiseDots:        30,
		NoiseCurves:      1,
		NoiseDensity:     0.4,
		Background:       BackgroundSolid,
		MinLength:        3,
		MaxLength:        7,
	},
	TierPart3: {
		Tier:             TierPart3,
		RotateMin:        -45,
		RotateMax:        45,
		WarpDXMin:        0.2,
		WarpDXMax:        0.4,
		WarpDYMin:        0.3,
		WarpDYMax:        0.4,
		OffsetDX:         8,
		OffsetDY:         10,
		GapProbability:   0.6,
		OverlapAllowance: 0.35,
		NoiseDots:        50,
		NoiseCurves:      3,
		Lines:            5,
		NoiseDensity:     0.7,
		Background:       BackgroundGradient,
		MinLength:        3,
		MaxLength:        7,
	},
	TierPart4: {
		Tier:             TierPart4,
		RotateMin:        -60,
		RotateMax:        60,
		WarpDXMin:        0.3,
		WarpDXMax:        0.6,
		WarpDYMin:        0.4,
		WarpDYMax:        0.6,
		OffsetDX:         12,
		OffsetDY:         15,
		GapProbability:   0.5,
		OverlapAllowance: 0.45,
		HardOverlap:      true,
		NoiseDots:        80,
		NoiseCurves:      5,
		Lines:            8,
		Shapes:           3,
		Decoys:           2,
		NoiseDensity:     1.0,
		Background:       BackgroundTextured,
		BlurMin:          1,
		BlurMax:          2,
		MinLength:        3,
		MaxLength:        7,
	},
}

// ResolveProfile maps a tier to its parameter bundle. It is a pure lookup:
// deterministic, no side effects, and it fails with *UnknownTierError for
// anything outside the fixed enumeration.
func ResolveProfile(tier Tier) (Profile, error) {
	p, ok := profiles[tier]
	if !ok {
		return Profile{}, &UnknownTierError{Tier: string(tier)}
	}
	return p, nil
}

// DistractorKinds returns the names of the distractor kinds this profile
// enables, in drawing order.
func (p Profile) DistractorKinds() []string {
	kinds := make([]string, 0, 5)
	if p.NoiseDots > 0 {
		kinds = append(kinds, "dots")
	}
	if p.NoiseCurves > 0 {
		kinds = append(kinds, "curves")
	}
	if p.Lines > 0 {
		kinds = append(kinds, "lines")
	}
	if p.Shapes > 0 {
		kinds = append(kinds, "shapes")
	}
	if p.Decoys > 0 {
		kinds = append(kinds, "decoys")
	}
	return kinds
}
