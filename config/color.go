package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/captcha"
)

// Color is an RGBA color as written in a run file. Two notations are
// accepted: a hex string ("#ffffff", "#ffffff80", short "#fff") or a
// sequence of 3 or 4 byte values ([255, 255, 255] or [16, 32, 48, 200]),
// the latter matching how colors appear in legacy generator configs.
type Color struct {
	captcha.RGBA
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		rgba, err := parseHex(s)
		if err != nil {
			return err
		}
		c.RGBA = rgba
		return nil

	case yaml.SequenceNode:
		var parts []int
		if err := value.Decode(&parts); err != nil {
			return err
		}
		rgba, err := fromBytes(parts)
		if err != nil {
			return err
		}
		c.RGBA = rgba
		return nil

	default:
		return fmt.Errorf("config: color must be a hex string or [r, g, b] sequence")
	}
}

func parseHex(s string) (captcha.RGBA, error) {
	digits := strings.TrimPrefix(s, "#")
	switch len(digits) {
	case 3, 6, 8:
	default:
		return captcha.RGBA{}, fmt.Errorf("config: bad hex color %q", s)
	}
	for _, r := range digits {
		if !isHexDigit(r) {
			return captcha.RGBA{}, fmt.Errorf("config: bad hex color %q", s)
		}
	}
	return captcha.Hex(s), nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func fromBytes(parts []int) (captcha.RGBA, error) {
	if len(parts) != 3 && len(parts) != 4 {
		return captcha.RGBA{}, fmt.Errorf("config: color needs 3 or 4 components, got %d", len(parts))
	}
	for _, v := range parts {
		if v < 0 || v > 255 {
			return captcha.RGBA{}, fmt.Errorf("config: color component %d outside 0..255", v)
		}
	}
	out := captcha.RGBA{
		R: float64(parts[0]) / 255,
		G: float64(parts[1]) / 255,
		B: float64(parts[2]) / 255,
		A: 1,
	}
	if len(parts) == 4 {
		out.A = float64(parts[3]) / 255
	}
	return out, nil
}
