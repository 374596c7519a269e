package captcha

import (
	"math"
	"math/rand"

	"github.com/gogpu/captcha/font"
)

// GlyphPlacement fixes where and how one glyph lands on the canvas.
// Layout samples every random parameter up front and freezes it here, so
// rendering a placement afterwards is fully deterministic.
type GlyphPlacement struct {
	// Char is the rune this slot draws.
	Char rune

	// Gap marks a spacing-only slot that renders no ink.
	Gap bool

	// FaceIndex selects the font source from the generator's catalog.
	FaceIndex int

	// Size is the font size in pixels.
	Size float64

	// X is the left edge of the slot in canvas coordinates. It is always
	// clamped inside the canvas.
	X int

	// DY shifts the glyph vertically off the centered band, in pixels.
	DY int

	// Rotation is the glyph rotation in degrees, counter-clockwise.
	Rotation float64

	// WarpAmpX and WarpAmpY are sinusoidal warp amplitudes in pixels.
	// Zero amplitude means no warp on that axis.
	WarpAmpX, WarpAmpY float64

	// WarpPhaseX and WarpPhaseY are warp phases in radians.
	WarpPhaseX, WarpPhaseY float64
}

// slotDraft carries a placement through layout together with the spacing
// fields that do not survive into the final placement.
type slotDraft struct {
	place GlyphPlacement
	dx    int     // rightward jitter, applied after slot positioning
	estW  float64 // estimated on-canvas width after rotation and warp
}

// layoutText assigns a slot to every rune of text, inserting spacer slots
// by profile probability, and scatters per-glyph jitter. Slots are
// compressed to fit the canvas width, so placement cannot fail; with
// HardOverlap set, advances shrink further and neighbor boxes intersect.
func layoutText(rng *rand.Rand, text []rune, cat *font.Catalog, sizes []float64, prof Profile, width int) []GlyphPlacement {
	if len(text) == 0 {
		return nil
	}

	drafts := make([]slotDraft, 0, len(text)*2)
	for _, r := range text {
		if rng.Float64() < prof.GapProbability {
			drafts = append(drafts, draftSlot(rng, ' ', true, cat, sizes, prof))
		}
		drafts = append(drafts, draftSlot(rng, r, false, cat, sizes, prof))
	}

	var total float64
	for i := range drafts {
		total += drafts[i].estW
	}
	avg := total / float64(len(drafts))

	startX := avg * 0.1
	advance := 1.0
	if prof.HardOverlap {
		advance = hardOverlapAdvance
	}
	usable := float64(width) - 2*startX
	scale := advance
	if total*scale > usable && total > 0 {
		scale = usable / total
		if scale < 0.2 {
			scale = 0.2
		}
	}

	jitterMax := int(prof.OverlapAllowance * avg)

	out := make([]GlyphPlacement, 0, len(drafts))
	x := startX
	for i := range drafts {
		d := &drafts[i]
		d.place.X = clampInt(int(x+0.5)+d.dx, 0, width-1)
		out = append(out, d.place)

		x += d.estW * scale
		if jitterMax > 0 {
			x -= float64(rng.Intn(jitterMax + 1))
		}
		if x < 0 {
			x = 0
		}
	}
	return out
}

// draftSlot draws every random parameter for one slot. Spacer slots
// consume the same draws as real ones, which keeps the rng stream layout
// identical whether or not a slot ends up rendering ink.
func draftSlot(rng *rand.Rand, r rune, gap bool, cat *font.Catalog, sizes []float64, prof Profile) slotDraft {
	faceIndex := rng.Intn(cat.Len())
	size := sizes[rng.Intn(len(sizes))]

	adv := font.Measure(string(r), cat.Source(faceIndex), size)
	if adv <= 0 {
		// Missing glyph or zero-width rune: estimate from size.
		if gap {
			adv = 0.3 * size
		} else {
			adv = 0.6 * size
		}
	}

	dx := rng.Intn(prof.OffsetDX + 1)
	dy := rng.Intn(prof.OffsetDY+1) - prof.OffsetDY/2
	rotation := prof.RotateMin + rng.Float64()*(prof.RotateMax-prof.RotateMin)
	ampX := (prof.WarpDXMin + rng.Float64()*(prof.WarpDXMax-prof.WarpDXMin)) * adv
	ampY := (prof.WarpDYMin + rng.Float64()*(prof.WarpDYMax-prof.WarpDYMin)) * size
	phaseX := rng.Float64() * 2 * math.Pi
	phaseY := rng.Float64() * 2 * math.Pi

	estW := adv
	if !gap {
		rad := rotation * math.Pi / 180
		estW = adv*math.Abs(math.Cos(rad)) + size*math.Abs(math.Sin(rad)) + 2*ampX
	}

	return slotDraft{
		place: GlyphPlacement{
			Char:       r,
			Gap:        gap,
			FaceIndex:  faceIndex,
			Size:       size,
			DY:         dy,
			Rotation:   rotation,
			WarpAmpX:   ampX,
			WarpAmpY:   ampY,
			WarpPhaseX: phaseX,
			WarpPhaseY: phaseY,
		},
		dx:   dx,
		estW: estW,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
