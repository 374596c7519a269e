package captcha

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/captcha/font"
)

// Generator renders labeled captcha images for one fixed canvas size and
// difficulty tier. Construction resolves the tier profile, loads fonts
// and validates the character set once; after that a Generator is
// immutable and safe for concurrent GenerateSample calls with caller
// rngs. The convenience methods Generate and Write serialize access to
// the generator's own rng.
type Generator struct {
	spec     Spec
	profile  Profile
	catalog  *font.Catalog
	sizes    []float64
	alphabet []rune
	inSet    map[rune]bool

	minLen, maxLen int
	seed           int64

	mu  sync.Mutex
	rng *rand.Rand
}

// Sample is one generated captcha: the rendered canvas plus the text it
// encodes.
type Sample struct {
	Canvas *Canvas
	Text   string
	Tier   Tier
}

// New creates a generator bound to a canvas size and difficulty tier.
// The tier resolves first, so an unknown tier fails before any font or
// pixel work happens.
func New(width, height int, tier Tier, opts ...Option) (*Generator, error) {
	profile, err := ResolveProfile(tier)
	if err != nil {
		return nil, err
	}

	cfg := config{spec: Spec{Width: width, Height: height}}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.spec.validate(); err != nil {
		return nil, err
	}
	alphabet, err := cfg.spec.alphabet()
	if err != nil {
		return nil, err
	}
	sizes, err := cfg.spec.sizes()
	if err != nil {
		return nil, err
	}

	minLen, maxLen := profile.MinLength, profile.MaxLength
	if cfg.lenSet {
		if cfg.minLen <= 0 || cfg.maxLen < cfg.minLen {
			return nil, ErrBadLengthRange
		}
		minLen, maxLen = cfg.minLen, cfg.maxLen
	}

	var catalog *font.Catalog
	if len(cfg.sources) > 0 {
		catalog = font.NewCatalogFromSources(cfg.sources...)
	} else {
		catalog = font.NewCatalog(cfg.spec.FontPaths...)
	}
	for _, loadErr := range catalog.LoadErrors() {
		Logger().Warn("font failed to load", "error", loadErr)
	}
	if catalog.UsesFallback() && len(cfg.spec.FontPaths) > 0 {
		Logger().Info("no configured font loaded, using builtin fonts")
	}

	seed := cfg.seed
	if !cfg.seeded {
		seed = time.Now().UnixNano()
	}

	inSet := make(map[rune]bool, len(alphabet))
	for _, r := range alphabet {
		inSet[r] = true
	}

	return &Generator{
		spec:     cfg.spec,
		profile:  profile,
		catalog:  catalog,
		sizes:    sizes,
		alphabet: alphabet,
		inSet:    inSet,
		minLen:   minLen,
		maxLen:   maxLen,
		seed:     seed,
		rng:      NewRand(seed),
	}, nil
}

// Width returns the canvas width in pixels.
func (g *Generator) Width() int { return g.spec.Width }

// Height returns the canvas height in pixels.
func (g *Generator) Height() int { return g.spec.Height }

// Tier returns the difficulty tier the generator is bound to.
func (g *Generator) Tier() Tier { return g.profile.Tier }

// Profile returns a copy of the resolved parameter bundle.
func (g *Generator) Profile() Profile { return g.profile }

// Seed returns the seed behind the generator's internal rng.
func (g *Generator) Seed() int64 { return g.seed }

// LengthRange returns the inclusive text length range in effect.
func (g *Generator) LengthRange() (minLen, maxLen int) {
	return g.minLen, g.maxLen
}

// GenerateSample renders one captcha using the supplied rng and returns
// the canvas unencoded. It is the deterministic core: the same rng state
// against the same generator yields an identical image. An empty
// explicit text draws a random one from the charset.
//
// The stages run in fixed order: background, layout, per-glyph rendering,
// distractors, post effects.
func (g *Generator) GenerateSample(rng *rand.Rand, explicit string) (*Sample, error) {
	text, err := g.resolveText(rng, explicit)
	if err != nil {
		return nil, err
	}

	c := NewCanvas(g.spec.Width, g.spec.Height)
	bg := g.backgroundColor(rng)
	fg := g.foregroundColor(rng)

	synthesizeBackground(c, g.profile.Background, bg, rng)

	placements := layoutText(rng, []rune(text), g.catalog, g.sizes, g.profile, g.spec.Width)
	for _, p := range placements {
		compositeGlyph(c, renderGlyph(p, g.catalog), p, fg)
	}

	injectDistractors(c, rng, g.profile, g.catalog, g.sizes, fg, bg)
	applyPostEffects(c, rng, g.profile)

	Logger().Debug("sample generated",
		"tier", string(g.profile.Tier), "text", text,
		"width", g.spec.Width, "height", g.spec.Height)

	return &Sample{Canvas: c, Text: text, Tier: g.profile.Tier}, nil
}

// Generate renders one captcha with the generator's own rng and returns
// it PNG-encoded along with the text it shows.
func (g *Generator) Generate(explicit string) ([]byte, string, error) {
	var buf bytes.Buffer
	text, err := g.Write(&buf, explicit)
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), text, nil
}

// Write renders one captcha with the generator's own rng and PNG-encodes
// it to w, returning the text the image shows.
func (g *Generator) Write(w io.Writer, explicit string) (string, error) {
	g.mu.Lock()
	sample, err := g.GenerateSample(g.rng, explicit)
	g.mu.Unlock()
	if err != nil {
		return "", err
	}
	if err := sample.Canvas.EncodePNG(w); err != nil {
		return "", err
	}
	return sample.Text, nil
}

// SampleText draws a random text of exactly length runes from the
// generator's alphabet using the supplied rng. Non-positive lengths fall
// back to the minimum of the length range.
func (g *Generator) SampleText(rng *rand.Rand, length int) string {
	if length <= 0 {
		length = g.minLen
	}
	return sampleText(rng, g.alphabet, length, length)
}

// resolveText validates explicit text or draws a random one. Explicit
// text is normalized to NFC before validation, matching the alphabet
// normalization.
func (g *Generator) resolveText(rng *rand.Rand, explicit string) (string, error) {
	if explicit == "" {
		return sampleText(rng, g.alphabet, g.minLen, g.maxLen), nil
	}

	text := norm.NFC.String(explicit)
	runes := []rune(text)
	if len(runes) < g.minLen || len(runes) > g.maxLen {
		return "", &InvalidTextError{
			Text:   text,
			Reason: fmt.Sprintf("length %d outside %d..%d", len(runes), g.minLen, g.maxLen),
		}
	}
	for _, r := range runes {
		if !g.inSet[r] {
			return "", &InvalidTextError{
				Text:   text,
				Reason: fmt.Sprintf("character %q not in charset", r),
			}
		}
	}
	return text, nil
}

func (g *Generator) backgroundColor(rng *rand.Rand) RGBA {
	if g.spec.BgColor != nil {
		return *g.spec.BgColor
	}
	return RandomColor(rng, 230, 255, 1)
}

func (g *Generator) foregroundColor(rng *rand.Rand) RGBA {
	if g.spec.FgColor != nil {
		return *g.spec.FgColor
	}
	alpha := float64(200+rng.Intn(36)) / 255
	return RandomColor(rng, 10, 180, alpha)
}
