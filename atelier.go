package atelier

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// ColorGraphite is the pencil color used by the default configs (#2B2B2B).
var ColorGraphite = Color{R: 43.0 / 255, G: 43.0 / 255, B: 43.0 / 255, A: 1}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (Color, error) {
	alpha := 1.0
	switch {
	case len(s) == 4 && s[0] == '#':
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	case len(s) == 9 && s[0] == '#':
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// Hex formats the color as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// Mix blends c toward other by t in RGB space. Alpha is interpolated linearly.
func (c Color) Mix(other Color, t float64) Color {
	m := colorful.Color{R: c.R, G: c.G, B: c.B}.BlendRgb(colorful.Color{R: other.R, G: other.G, B: other.B}, t)
	return Color{R: m.R, G: m.G, B: m.B, A: lerp(c.A, other.A, t)}
}

// WithAlpha returns a copy of c with A replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions, offsets and directions.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The origin is the top-left, with Y
// increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Bottom returns the Y coordinate of the lower edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// At maps t in [0, 1] onto the range.
func (r Range) At(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
