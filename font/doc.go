// Package font loads and rasterizes the typefaces captcha glyphs are drawn
// with.
//
// A Source wraps one parsed font file and hands out per-glyph alpha masks
// and advance widths. A Catalog owns the set of sources for a generator:
// it loads each configured path once, skips anything unusable, and falls
// back to the built-in Go fonts when nothing loads, so generation never
// fails on fonts.
//
// Text measurement goes through the Shaper interface. The default
// BuiltinShaper sums per-glyph advances via golang.org/x/image/font/sfnt;
// SetShaper swaps in GoTextShaper for HarfBuzz shaping (kerning, complex
// scripts) backed by go-text/typesetting.
package font
