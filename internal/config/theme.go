package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds the grid colors. The lists repeat: even columns (or rows)
// take the first entry, odd ones the second, wrapping for short lists.
type Theme struct {
	HeaderForeground []colorful.Color
	HeaderBackground []colorful.Color
	ValueForeground  []colorful.Color
	ValueBackground  []colorful.Color
	Background       colorful.Color
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	hex := func(s string) colorful.Color {
		c, _ := colorful.Hex(s)
		return c
	}
	return Theme{
		HeaderForeground: []colorful.Color{hex("#002B36")},
		HeaderBackground: []colorful.Color{hex("#8EA1A1")},
		ValueForeground:  []colorful.Color{hex("#8EA1A1")},
		ValueBackground:  []colorful.Color{hex("#002B36"), hex("#72A0C1")},
		Background:       hex("#646464"),
	}
}

// Pick returns the even or odd entry of a color list.
func Pick(colors []colorful.Color, odd bool) colorful.Color {
	if len(colors) == 0 {
		return colorful.Color{}
	}
	if odd {
		return colors[1%len(colors)]
	}
	return colors[0]
}

// ParseColor accepts #RGB, #RRGGBB, the same without '#', and rgb(r,g,b).
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if inner, ok := strings.CutPrefix(strings.ToLower(s), "rgb("); ok {
		return parseRGB(strings.TrimSuffix(inner, ")"), s)
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return colorful.Color{}, fmt.Errorf("color %q: expected #RGB, #RRGGBB or rgb(r,g,b)", s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return c, nil
}

func parseRGB(inner, orig string) (colorful.Color, error) {
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return colorful.Color{}, fmt.Errorf("color %q: rgb() takes three components", orig)
	}
	var rgb [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("color %q: component %q is not in 0-255", orig, strings.TrimSpace(p))
		}
		rgb[i] = uint8(n)
	}
	return colorful.Color{R: float64(rgb[0]) / 255, G: float64(rgb[1]) / 255, B: float64(rgb[2]) / 255}, nil
}

// ParseColorList parses every entry; the list must not be empty.
func ParseColorList(list []string) ([]colorful.Color, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("at least one color is required")
	}
	colors := make([]colorful.Color, 0, len(list))
	for _, s := range list {
		c, err := ParseColor(s)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}
