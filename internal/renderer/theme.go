package renderer

import (
	"fmt"

	"github.com/dshills/mathkey/internal/renderer/core"
)

// Theme holds the cell styles used to paint a formula.
type Theme struct {
	// Text styles atoms and operators.
	Text core.Style

	// Structure styles brackets, fraction bars and radicals.
	Structure core.Style

	// Status styles the status line.
	Status core.Style
}

// DefaultTheme uses the terminal's own colours.
func DefaultTheme() Theme {
	return Theme{
		Text:      core.DefaultStyle(),
		Structure: core.DefaultStyle().With(core.AttrBold),
		Status:    core.DefaultStyle().With(core.AttrReverse),
	}
}

// NewTheme derives a theme from a foreground, background and accent
// colour. Structure is drawn halfway between foreground and accent.
func NewTheme(fg, bg, accent core.Color) Theme {
	base := core.DefaultStyle().WithForeground(fg).WithBackground(bg)
	return Theme{
		Text:      base,
		Structure: base.WithForeground(fg.Blend(accent, 0.5)),
		Status:    base.WithForeground(bg).WithBackground(accent),
	}
}

// ParseTheme builds a theme from hex colour strings.
func ParseTheme(fg, bg, accent string) (Theme, error) {
	var colors [3]core.Color
	for i, s := range []string{fg, bg, accent} {
		c, err := core.ColorFromHex(s)
		if err != nil {
			return Theme{}, fmt.Errorf("theme: %w", err)
		}
		colors[i] = c
	}
	if colors[0].IsDefault() && colors[1].IsDefault() && colors[2].IsDefault() {
		return DefaultTheme(), nil
	}
	return NewTheme(colors[0], colors[1], colors[2]), nil
}
