// Package core provides the cell, colour and style types shared by the
// renderer and its backends.
package core

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint8

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint/dim text
	AttrItalic              // Italic text
	AttrUnderline           // Underlined text
	AttrReverse             // Reverse video (swap fg/bg)
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Color is a true colour or the terminal default.
type Color struct {
	R, G, B uint8
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack = Color{R: 0, G: 0, B: 0}
	ColorWhite = Color{R: 255, G: 255, B: 255}
	ColorGray  = Color{R: 128, G: 128, B: 128}
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex parses "#rrggbb" or "#rgb". The leading '#' is optional;
// "default" and the empty string yield ColorDefault.
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" || strings.EqualFold(hex, "default") {
		return ColorDefault, nil
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return fromColorful(c), nil
}

// IsDefault returns true if this is the default/transparent color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default || other.Default {
		return c.Default == other.Default
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns "default" or the "#RRGGBB" form.
func (c Color) String() string {
	if c.IsDefault() {
		return "default"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Blend mixes two colours in CIE-L*a*b* space. amount 0 yields c, 1 yields
// other. A default colour cannot be mixed, so the nearer end wins.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Default || other.Default {
		if amount < 0.5 {
			return c
		}
		return other
	}
	amount = min(max(amount, 0), 1)
	return fromColorful(c.colorful().BlendLab(other.colorful(), amount).Clamped())
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}
}

// Style represents the visual style of text.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{
		Foreground: ColorDefault,
		Background: ColorDefault,
	}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// With returns a new style with attrs added.
func (s Style) With(attrs Attribute) Style {
	s.Attributes |= attrs
	return s
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.Attributes == other.Attributes
}

// Cell represents a single terminal cell. Text holds one grapheme cluster;
// a cell trailing a wide grapheme has Width 0.
type Cell struct {
	Text  string
	Width int
	Style Style
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{Text: " ", Width: 1, Style: DefaultStyle()}
}

// NewCell creates a cell holding the grapheme s.
func NewCell(s string, style Style) Cell {
	return Cell{Text: s, Width: StringWidth(s), Style: style}
}

// ContinuationCell returns the placeholder that follows a wide grapheme.
func ContinuationCell(style Style) Cell {
	return Cell{Width: 0, Style: style}
}

// IsEmpty returns true if this is a blank cell.
func (c Cell) IsEmpty() bool {
	return c.Text == " " || c.Text == ""
}

// IsContinuation returns true if this cell trails a wide grapheme.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// Runes splits the grapheme into the main rune and its combining runes.
func (c Cell) Runes() (rune, []rune) {
	rs := []rune(c.Text)
	if len(rs) == 0 {
		return ' ', nil
	}
	return rs[0], rs[1:]
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Text == other.Text && c.Width == other.Width && c.Style.Equals(other.Style)
}

// RuneWidth returns the display width of a rune.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of s.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// StringFromCells converts cells back to a string, skipping continuations.
func StringFromCells(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		if !c.IsContinuation() {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}

// ScreenRect represents a rectangular region on screen. Bottom and Right
// are exclusive.
type ScreenRect struct {
	Top, Left     int
	Bottom, Right int
}

// RectFromSize creates a rectangle from position and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the width of the rectangle.
func (r ScreenRect) Width() int { return r.Right - r.Left }

// Height returns the height of the rectangle.
func (r ScreenRect) Height() int { return r.Bottom - r.Top }

// Contains reports whether the cell at (row, col) lies inside r.
func (r ScreenRect) Contains(row, col int) bool {
	return row >= r.Top && row < r.Bottom && col >= r.Left && col < r.Right
}
