package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS color name ("red", "navy") or a hex color in
// #rgb, #rrggbb or #rrggbbaa form. The leading # is optional.
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, fmt.Errorf("empty color")
	}

	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if !isHex(hex) {
		return nil, fmt.Errorf("invalid color %q", s)
	}

	switch len(hex) {
	case 3, 6:
		c, err := colorful.Hex("#" + hex)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	case 8:
		c, err := colorful.Hex("#" + hex[:6])
		if err != nil {
			return nil, fmt.Errorf("invalid color %q: %w", s, err)
		}
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid alpha in %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
	default:
		return nil, fmt.Errorf("invalid color %q", s)
	}
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}
