package captcha

import (
	"errors"
	"fmt"
)

// Sentinel errors for the captcha package.
var (
	// ErrBadDimensions is returned when canvas width or height is not positive.
	ErrBadDimensions = errors.New("captcha: canvas dimensions must be positive")

	// ErrEmptyCharset is returned when the character set is empty after
	// normalization and exclusion.
	ErrEmptyCharset = errors.New("captcha: character set is empty")

	// ErrBadLengthRange is returned when the text length range is invalid.
	ErrBadLengthRange = errors.New("captcha: text length range must satisfy 0 < min <= max")

	// ErrBadFontSizes is returned when a configured font size is not positive.
	ErrBadFontSizes = errors.New("captcha: font sizes must be positive")
)

// UnknownTierError is returned when a difficulty tier is outside the fixed
// enumeration. It is surfaced immediately, before any pixel work happens.
type UnknownTierError struct {
	Tier string
}

func (e *UnknownTierError) Error() string {
	return fmt.Sprintf("captcha: unknown difficulty tier %q (want %s, %s or %s)",
		e.Tier, TierPart2, TierPart3, TierPart4)
}

// InvalidTextError is returned when explicit text violates the generator's
// character-set or length constraints. It is fatal for the single call only;
// batch callers are expected to skip the sample and continue.
type InvalidTextError struct {
	Text   string
	Reason string
}

func (e *InvalidTextError) Error() string {
	return fmt.Sprintf("captcha: invalid text %q: %s", e.Text, e.Reason)
}
