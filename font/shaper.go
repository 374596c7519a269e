package font

import "sync"

// Shaper measures text runs. Implementations must be safe for concurrent
// use; batch generation measures from many goroutines at once.
type Shaper interface {
	// Measure returns the advance width in pixels of text rendered with
	// src at the given size.
	Measure(text string, src *Source, size float64) float64
}

// BuiltinShaper measures by summing per-glyph advances. No kerning, no
// ligatures; adequate for the digit-and-capital alphabets captchas use,
// and it needs nothing beyond the parsed font.
type BuiltinShaper struct{}

// Measure implements the Shaper interface.
func (BuiltinShaper) Measure(text string, src *Source, size float64) float64 {
	if text == "" || src == nil {
		return 0
	}
	var total float64
	for _, r := range text {
		total += src.Advance(r, size)
	}
	return total
}

var (
	shaperMu     sync.RWMutex
	globalShaper Shaper = BuiltinShaper{}
)

// SetShaper sets the global shaper used by Measure. Passing nil resets
// to the builtin shaper. Swap in NewGoTextShaper for HarfBuzz shaping.
func SetShaper(s Shaper) {
	shaperMu.Lock()
	defer shaperMu.Unlock()
	if s == nil {
		globalShaper = BuiltinShaper{}
		return
	}
	globalShaper = s
}

// GetShaper returns the current global shaper.
func GetShaper() Shaper {
	shaperMu.RLock()
	defer shaperMu.RUnlock()
	return globalShaper
}

// Measure measures text with the current global shaper.
func Measure(text string, src *Source, size float64) float64 {
	return GetShaper().Measure(text, src, size)
}
