package core

import "fmt"

// Color is a linear RGB tint with components in [0, 1].
// The zero value means "no tint" and renders with the terminal default.
type Color struct {
	R, G, B float64
}

// RGB creates a color from its components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Predefined tints used by game entities.
var (
	ColorWhite = RGB(1, 1, 1)
	ColorGray  = RGB(0.55, 0.55, 0.55)
)

// IsZero reports whether c is the zero (untinted) color.
func (c Color) IsZero() bool {
	return c == Color{}
}

// Invert returns the complementary color.
func (c Color) Invert() Color {
	return Color{R: 1 - c.R, G: 1 - c.G, B: 1 - c.B}
}

// Hex returns the color as a "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int {
	return int(ClampF(v, 0, 1)*255 + 0.5)
}
