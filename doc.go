// Package captcha synthesizes labeled CAPTCHA images at three progressive
// difficulty tiers for training and evaluating text-recognition models.
//
// # Overview
//
// A Generator is bound to a canvas size and a difficulty tier (part2, part3
// or part4). Each generated sample composes randomly placed character glyphs
// (rotated and warped), a tier-dependent background, noise and distractor
// elements, and a final filter pass, and returns the finished image together
// with its ground-truth text.
//
// # Quick Start
//
//	import "github.com/gogpu/captcha"
//
//	gen, err := captcha.New(160, 60, captcha.TierPart2)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Random text, PNG-encoded image.
//	png, text, err := gen.Generate("")
//
//	// Explicit text, streamed to a file.
//	f, _ := os.Create("captcha.png")
//	text, err = gen.Write(f, "2CUVK")
//
// # Difficulty Tiers
//
// Tiers resolve to immutable parameter bundles with monotonically growing
// distortion: part2 adds rotation, warp and light noise; part3 widens every
// range and adds line distractors on a gradient background; part4 adds
// character overlap, geometric shapes, decoy glyphs and Gaussian blur.
//
// # Determinism
//
// All randomness flows through an explicit *rand.Rand. GenerateSample with
// the same seed, spec and tier produces pixel-identical output, which makes
// batch generation reproducible and embarrassingly parallel: give every
// sample its own derived stream and no state is shared between goroutines.
//
// # Fonts
//
// Font files are loaded once and cached. Paths that fail to parse are
// skipped with a warning; if nothing usable remains, generation silently
// falls back to the built-in Go fonts and never fails on font loading.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down.
// Rotation angles are degrees, positive counter-clockwise.
package captcha

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
