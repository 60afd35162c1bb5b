package tweakbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBA_PackUnpack(t *testing.T) {
	c := RGBA(0x12, 0x34, 0x56, 0x78)
	assert.Equal(t, uint32(0x78563412), c)

	r, g, b, a := UnpackRGBA(c)
	assert.Equal(t, [4]uint8{0x12, 0x34, 0x56, 0x78}, [4]uint8{r, g, b, a})

	assert.Equal(t, ColorRed, RGBAf(1, 0, 0, 1))
	assert.Equal(t, ColorWhite, RGBAf(2, 5, 1.1, 9), "components clamp")
	assert.Equal(t, ColorRed, Color{R: 1, A: 1}.Packed())
}

func TestColor_HSVRoundTrip(t *testing.T) {
	colors := []Color{
		{R: 1, A: 1},
		{G: 1, A: 1},
		{B: 1, A: 1},
		{R: 0.2, G: 0.4, B: 0.6, A: 0.5},
		{R: 0.9, G: 0.1, B: 0.5, A: 1},
		{R: 0.75, G: 0.75, B: 0.25, A: 1},
	}
	for _, c := range colors {
		h, s, v := c.HSV()
		got := ColorFromHSV(h, s, v, c.A)
		assert.InDelta(t, c.R, got.R, 1e-5, "%+v", c)
		assert.InDelta(t, c.G, got.G, 1e-5, "%+v", c)
		assert.InDelta(t, c.B, got.B, 1e-5, "%+v", c)
		assert.Equal(t, c.A, got.A)
	}
}

func TestColor_HSV(t *testing.T) {
	h, s, v := Color{G: 1}.HSV()
	assert.InDelta(t, 1.0/3, h, 1e-6)
	assert.Equal(t, float32(1), s)
	assert.Equal(t, float32(1), v)

	h, s, v = Color{R: 0.5, G: 0.5, B: 0.5}.HSV()
	assert.Zero(t, h)
	assert.Zero(t, s)
	assert.Equal(t, float32(0.5), v)

	assert.Equal(t, Color{R: 0.3, G: 0.3, B: 0.3, A: 1}, ColorFromHSV(0.7, 0, 0.3, 1))
	assert.Equal(t, ColorFromHSV(0.25, 1, 1, 1), ColorFromHSV(1.25, 1, 1, 1), "hue wraps")
}

func TestColor_Clamped(t *testing.T) {
	assert.Equal(t, Color{R: 1, G: 0, B: 0.5, A: 1}, Color{R: 3, G: -1, B: 0.5, A: 1}.Clamped())
}
