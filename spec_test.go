package captcha

import (
	"errors"
	"strings"
	"testing"
)

func TestSpecAlphabetDefault(t *testing.T) {
	s := &Spec{Width: 160, Height: 60}
	alphabet, err := s.alphabet()
	if err != nil {
		t.Fatalf("alphabet() failed: %v", err)
	}
	if got := string(alphabet); got != DefaultCharset {
		t.Errorf("default alphabet = %q, want %q", got, DefaultCharset)
	}
}

func TestSpecAlphabetExcluded(t *testing.T) {
	s := &Spec{Width: 160, Height: 60, ExcludedChars: "0O1I"}
	alphabet, err := s.alphabet()
	if err != nil {
		t.Fatalf("alphabet() failed: %v", err)
	}
	got := string(alphabet)
	for _, r := range "0O1I" {
		if strings.ContainsRune(got, r) {
			t.Errorf("excluded character %q still present in %q", r, got)
		}
	}
	if !strings.ContainsRune(got, 'A') || !strings.ContainsRune(got, '9') {
		t.Errorf("unexcluded characters missing from %q", got)
	}
}

func TestSpecAlphabetExcludedNormalized(t *testing.T) {
	// Exclusions are NFC-normalized too: "E" plus combining acute must
	// strike the single-code-point É from the charset.
	s := &Spec{Width: 160, Height: 60, Charset: "É2345", ExcludedChars: "É"}
	alphabet, err := s.alphabet()
	if err != nil {
		t.Fatalf("alphabet() failed: %v", err)
	}
	if got := string(alphabet); got != "2345" {
		t.Errorf("alphabet = %q, want %q", got, "2345")
	}
}

func TestSpecAlphabetDeduplicates(t *testing.T) {
	s := &Spec{Width: 10, Height: 10, Charset: "AABBA"}
	alphabet, err := s.alphabet()
	if err != nil {
		t.Fatalf("alphabet() failed: %v", err)
	}
	if got := string(alphabet); got != "AB" {
		t.Errorf("alphabet = %q, want %q (deduplicated, order kept)", got, "AB")
	}
}

func TestSpecAlphabetEmpty(t *testing.T) {
	s := &Spec{Width: 10, Height: 10, Charset: "ABC", ExcludedChars: "CAB"}
	if _, err := s.alphabet(); !errors.Is(err, ErrEmptyCharset) {
		t.Errorf("error = %v, want ErrEmptyCharset", err)
	}
}

func TestSpecSizesDefault(t *testing.T) {
	s := &Spec{Width: 160, Height: 60}
	sizes, err := s.sizes()
	if err != nil {
		t.Fatalf("sizes() failed: %v", err)
	}
	if len(sizes) == 0 {
		t.Fatal("no default sizes")
	}
	for _, size := range sizes {
		if size < float64(s.Height)/4 || size > float64(s.Height) {
			t.Errorf("default size %v out of proportion for height %d", size, s.Height)
		}
	}
}

func TestSpecSizesConfigured(t *testing.T) {
	s := &Spec{Width: 160, Height: 60, FontSizes: []float64{30, 40}}
	sizes, err := s.sizes()
	if err != nil {
		t.Fatalf("sizes() failed: %v", err)
	}
	if len(sizes) != 2 || sizes[0] != 30 || sizes[1] != 40 {
		t.Errorf("sizes = %v, want [30 40]", sizes)
	}

	bad := &Spec{Width: 160, Height: 60, FontSizes: []float64{30, -1}}
	if _, err := bad.sizes(); !errors.Is(err, ErrBadFontSizes) {
		t.Errorf("error = %v, want ErrBadFontSizes", err)
	}
}

func TestSpecValidate(t *testing.T) {
	good := &Spec{Width: 160, Height: 60}
	if err := good.validate(); err != nil {
		t.Errorf("validate() = %v for valid spec", err)
	}
	for _, s := range []*Spec{
		{Width: 0, Height: 60},
		{Width: 160, Height: 0},
		{Width: -1, Height: -1},
	} {
		if err := s.validate(); !errors.Is(err, ErrBadDimensions) {
			t.Errorf("validate(%dx%d) = %v, want ErrBadDimensions", s.Width, s.Height, err)
		}
	}
}

func TestSampleText(t *testing.T) {
	rng := NewRand(5)
	alphabet := []rune("ABC123")

	for range 50 {
		text := sampleText(rng, alphabet, 3, 7)
		n := len([]rune(text))
		if n < 3 || n > 7 {
			t.Fatalf("length %d outside 3..7", n)
		}
		for _, r := range text {
			if !strings.ContainsRune(string(alphabet), r) {
				t.Fatalf("character %q not in alphabet", r)
			}
		}
	}
}

func TestSampleTextFixedLength(t *testing.T) {
	rng := NewRand(5)
	for range 20 {
		if n := len([]rune(sampleText(rng, []rune("XY"), 4, 4))); n != 4 {
			t.Fatalf("length = %d, want exactly 4", n)
		}
	}
}
