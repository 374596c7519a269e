package font

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// GoTextShaper measures text through go-text/typesetting's HarfBuzz
// shaper, picking up kerning and complex-script behavior the builtin
// shaper ignores. Parsed fonts are cached per Source; shaper state is
// pooled because HarfbuzzShaper is not safe for concurrent use.
type GoTextShaper struct {
	shaperPool sync.Pool

	mu        sync.RWMutex
	fontCache map[*Source]*gtfont.Font
}

// NewGoTextShaper creates a HarfBuzz-backed shaper. Install it with
// SetShaper.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		fontCache: make(map[*Source]*gtfont.Font),
	}
}

// Measure implements the Shaper interface.
func (s *GoTextShaper) Measure(text string, src *Source, size float64) float64 {
	if text == "" || src == nil {
		return 0
	}
	f, err := s.getOrCreateFont(src)
	if err != nil {
		// Font data HarfBuzz cannot parse: plain advances still work.
		return BuiltinShaper{}.Measure(text, src, size)
	}

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gtfont.NewFace(f),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.shaperPool.Put(hb)

	var total fixed.Int26_6
	for _, g := range out.Glyphs {
		total += g.Advance
	}
	return fixedToFloat64(total)
}

func (s *GoTextShaper) getOrCreateFont(src *Source) (*gtfont.Font, error) {
	s.mu.RLock()
	f, ok := s.fontCache[src]
	s.mu.RUnlock()
	if ok {
		return f, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring the write lock.
	if f, ok := s.fontCache[src]; ok {
		return f, nil
	}

	face, err := gtfont.ParseTTF(bytes.NewReader(src.data))
	if err != nil {
		return nil, err
	}
	s.fontCache[src] = face.Font
	return face.Font, nil
}

// detectScript returns the script of the first non-space rune,
// defaulting to Latin. Captcha alphabets are single-script, so one
// lookup decides the whole run.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
