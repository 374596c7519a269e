package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gogpu/captcha"
)

// Fixed demo texts, one sheet per tier; the comparison renders one text
// at every tier so the difficulty progression is visible side by side.
var demoTexts = []string{"A7X9", "3K2M5", "B9F4L", "7N8Q2", "X5Y1Z"}

const comparisonText = "5K7M2"

func runDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	out := fs.String("out", "demo_samples", "output directory")
	seed := fs.Int64("seed", 0, "seed for reproducible sheets (0 = time-based)")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	enableLogging(*verbose)

	printProfiles()

	if err := writeSampleSheets(*out, *seed); err != nil {
		return err
	}
	if err := writeComparison(filepath.Join(*out, "comparison"), *seed); err != nil {
		return err
	}

	log.Printf("Demo samples created in: %s", *out)
	return nil
}

// demoSize returns the canvas each tier is conventionally shown at:
// harder tiers get more room for their extra noise.
func demoSize(tier captcha.Tier) (w, h int) {
	switch tier {
	case captcha.TierPart3:
		return 180, 80
	case captcha.TierPart4:
		return 200, 100
	default:
		return 160, 60
	}
}

func demoGenerator(width, height int, tier captcha.Tier, seed int64) (*captcha.Generator, error) {
	var opts []captcha.Option
	if seed != 0 {
		opts = append(opts, captcha.WithSeed(seed))
	}
	return captcha.New(width, height, tier, opts...)
}

func writeSampleSheets(root string, seed int64) error {
	for _, tier := range tiers {
		dir := filepath.Join(root, string(tier))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		width, height := demoSize(tier)
		gen, err := demoGenerator(width, height, tier, seed)
		if err != nil {
			return err
		}

		log.Printf("Generating %s samples...", tier)
		for i, text := range demoTexts {
			name := fmt.Sprintf("%s_sample_%02d_%s.png", tier, i+1, text)
			if _, err := writePNG(gen, filepath.Join(dir, name), text); err != nil {
				return err
			}
			log.Printf("  Generated: %s", name)
		}
		for i := range 3 {
			name := fmt.Sprintf("%s_random_%02d.png", tier, i+1)
			text, err := writePNG(gen, filepath.Join(dir, name), "")
			if err != nil {
				return err
			}
			log.Printf("  Generated: %s (text: %s)", name, text)
		}
	}
	return nil
}

func writeComparison(dir string, seed int64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	log.Printf("Generating difficulty comparison...")
	for _, tier := range tiers {
		gen, err := demoGenerator(200, 100, tier, seed)
		if err != nil {
			return err
		}
		for i := range 3 {
			name := fmt.Sprintf("comparison_%s_sample%d_%s.png", tier, i+1, comparisonText)
			if _, err := writePNG(gen, filepath.Join(dir, name), comparisonText); err != nil {
				return err
			}
			log.Printf("  Generated: %s", name)
		}
	}
	return nil
}

func writePNG(gen *captcha.Generator, path, text string) (string, error) {
	f, err := os.Create(path) //nolint:gosec // demo output path
	if err != nil {
		return "", err
	}
	written, err := gen.Write(f, text)
	if err != nil {
		f.Close()
		return "", err
	}
	return written, f.Close()
}

func printProfiles() {
	log.Printf("Tier configuration:")
	for _, tier := range tiers {
		p, err := captcha.ResolveProfile(tier)
		if err != nil {
			continue
		}
		log.Printf("%s:", tier)
		log.Printf("  Rotation: %g..%g deg", p.RotateMin, p.RotateMax)
		log.Printf("  Warp dx: %g..%g  dy: %g..%g", p.WarpDXMin, p.WarpDXMax, p.WarpDYMin, p.WarpDYMax)
		log.Printf("  Noise dots: %d  curves: %d", p.NoiseDots, p.NoiseCurves)
		if p.Lines > 0 {
			log.Printf("  Lines: %d", p.Lines)
		}
		if p.Shapes > 0 {
			log.Printf("  Shapes: %d", p.Shapes)
		}
		if p.Decoys > 0 {
			log.Printf("  Decoy symbols: %d", p.Decoys)
		}
		log.Printf("  Background: %s", p.Background)
		if p.BlurMax > 0 {
			log.Printf("  Blur: %d..%d px", p.BlurMin, p.BlurMax)
		}
		if p.HardOverlap {
			log.Printf("  Hard overlap: enabled")
		}
	}
}
