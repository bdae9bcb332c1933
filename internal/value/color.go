package value

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color with channels in 8-bit units (0-255). Channels are
// not clamped during animation so springs may overshoot; use NRGBA to obtain
// a displayable color.
type Color struct {
	R, G, B, A float64
}

// RGBA builds an opaque-aware color from 8-bit channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: float64(r), G: float64(g), B: float64(b), A: float64(a)}
}

// ParseHex parses "#rrggbb" or "#rgb". The result is fully opaque.
func ParseHex(s string) (Color, error) {
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("value: parse color %q: %w", s, err)
	}
	return Color{R: c.R * 255, G: c.G * 255, B: c.B * 255, A: 255}, nil
}

func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

func (c Color) Sub(o Color) Color {
	return Color{c.R - o.R, c.G - o.G, c.B - o.B, c.A - o.A}
}

func (c Color) Scale(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A * f}
}

func (c Color) Lerp(target Color, t float64) Color {
	return Color{
		R: Lerp(c.R, target.R, t),
		G: Lerp(c.G, target.G, t),
		B: Lerp(c.B, target.B, t),
		A: Lerp(c.A, target.A, t),
	}
}

func (c Color) Magnitude() float64 {
	return math.Sqrt(c.R*c.R + c.G*c.G + c.B*c.B + c.A*c.A)
}

func (c Color) Epsilon() float64 { return ColorEpsilon }

// NRGBA clamps and rounds the channels into a displayable color.
func (c Color) NRGBA() color.NRGBA {
	ch := func(v float64) uint8 {
		return uint8(math.Round(Clamp(v, 0, 255)))
	}
	return color.NRGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: ch(c.A)}
}

// Hex formats the clamped RGB channels as "#rrggbb".
func (c Color) Hex() string {
	n := c.NRGBA()
	return colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}.Hex()
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%.1f, %.1f, %.1f, %.1f)", c.R, c.G, c.B, c.A)
}
