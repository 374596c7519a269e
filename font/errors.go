package font

import (
	"errors"
	"fmt"
)

// ErrEmptyFontData is returned when a source is created from zero bytes.
var ErrEmptyFontData = errors.New("font: empty font data")

// LoadError records a font file that could not be loaded. Catalogs collect
// these instead of failing; callers may log them and carry on with the
// sources that did load.
type LoadError struct {
	// Path is the file that failed to load.
	Path string
	// Err is the underlying parse or read error.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("font: load %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}
