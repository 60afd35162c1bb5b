package tweakbar

import "github.com/chewxy/math32"

// Packed color constants (RGBA packed as 0xAABBGGRR for OpenGL compatibility).
const (
	ColorWhite       uint32 = 0xFFFFFFFF
	ColorBlack       uint32 = 0xFF000000
	ColorRed         uint32 = 0xFF0000FF
	ColorGreen       uint32 = 0xFF00FF00
	ColorBlue        uint32 = 0xFFFF0000
	ColorYellow      uint32 = 0xFF00FFFF
	ColorGray        uint32 = 0xFF808080
	ColorTransparent uint32 = 0x00000000
)

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// RGBAf creates a packed color from float components (0.0-1.0).
func RGBAf(r, g, b, a float32) uint32 {
	return RGBA(
		uint8(clampf(r, 0, 1)*255+0.5),
		uint8(clampf(g, 0, 1)*255+0.5),
		uint8(clampf(b, 0, 1)*255+0.5),
		uint8(clampf(a, 0, 1)*255+0.5),
	)
}

// UnpackRGBA extracts RGBA components from a packed color.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// Color is a host-editable RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Packed returns the color in vertex format.
func (c Color) Packed() uint32 {
	return RGBAf(c.R, c.G, c.B, c.A)
}

// Clamped returns c with every component clamped to [0, 1].
func (c Color) Clamped() Color {
	return Color{
		R: clampf(c.R, 0, 1),
		G: clampf(c.G, 0, 1),
		B: clampf(c.B, 0, 1),
		A: clampf(c.A, 0, 1),
	}
}

// HSV returns hue, saturation and value, each in [0, 1].
func (c Color) HSV() (h, s, v float32) {
	maxC := math32.Max(c.R, math32.Max(c.G, c.B))
	minC := math32.Min(c.R, math32.Min(c.G, c.B))
	v = maxC
	d := maxC - minC
	if maxC <= 0 || d <= 0 {
		return 0, 0, v
	}
	s = d / maxC
	switch maxC {
	case c.R:
		h = (c.G - c.B) / d
		if h < 0 {
			h += 6
		}
	case c.G:
		h = (c.B-c.R)/d + 2
	default:
		h = (c.R-c.G)/d + 4
	}
	return h / 6, s, v
}

// ColorFromHSV builds a color from hue, saturation and value in [0, 1].
func ColorFromHSV(h, s, v, a float32) Color {
	h = h - math32.Floor(h)
	s = clampf(s, 0, 1)
	v = clampf(v, 0, 1)
	if s == 0 {
		return Color{R: v, G: v, B: v, A: a}
	}
	h6 := h * 6
	i := int(h6) % 6
	f := h6 - math32.Floor(h6)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch i {
	case 0:
		return Color{R: v, G: t, B: p, A: a}
	case 1:
		return Color{R: q, G: v, B: p, A: a}
	case 2:
		return Color{R: p, G: v, B: t, A: a}
	case 3:
		return Color{R: p, G: q, B: v, A: a}
	case 4:
		return Color{R: t, G: p, B: v, A: a}
	default:
		return Color{R: v, G: p, B: q, A: a}
	}
}
