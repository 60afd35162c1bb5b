package tweakbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFont(t *testing.T) {
	fa := DefaultFont()
	require.Same(t, fa, DefaultFont())

	assert.Equal(t, float32(7), fa.CellW)
	assert.Equal(t, float32(13), fa.CellH)
	assert.Equal(t, float32(7), fa.Advance)
	assert.Equal(t, 16*7, fa.Image.Bounds().Dx())

	// The atlas holds coverage for 'M'.
	g, ok := fa.lookup('M')
	require.True(t, ok)
	x0 := int(g.u0 * float32(fa.Image.Bounds().Dx()))
	y0 := int(g.v0 * float32(fa.Image.Bounds().Dy()))
	covered := false
	for y := y0; y < y0+13; y++ {
		for x := x0; x < x0+7; x++ {
			if fa.Image.AlphaAt(x, y).A > 0 {
				covered = true
			}
		}
	}
	assert.True(t, covered)
}

func TestFontAtlas_MeasureText(t *testing.T) {
	fa := DefaultFont()
	assert.Equal(t, Vec2{}, fa.MeasureText("", 1))
	assert.Equal(t, Vec2{X: 21, Y: 13}, fa.MeasureText("abc", 1))
	assert.Equal(t, Vec2{X: 21, Y: 26}, fa.MeasureText("ab\ncde", 1))
	assert.Equal(t, Vec2{X: 28, Y: 26}, fa.MeasureText("ab", 2))
}

func TestFontAtlas_FitText(t *testing.T) {
	fa := DefaultFont()
	assert.Equal(t, "short", fa.FitText("short", 100, 1))
	assert.Equal(t, "abcd...", fa.FitText("abcdefghij", 50, 1))
	assert.Equal(t, "", fa.FitText("abcdefghij", 14, 1))
}

func TestFontAtlas_AppendQuads(t *testing.T) {
	fa := DefaultFont()
	quads := fa.AppendQuads(nil, 10, 20, "a b\nc", ColorRed, 1)
	require.Len(t, quads, 3, "spaces and newlines produce no quads")

	assert.Equal(t, float32(10), quads[0].X0)
	assert.Equal(t, float32(24), quads[1].X0)
	assert.Equal(t, float32(10), quads[2].X0)
	assert.Equal(t, float32(33), quads[2].Y0)
	assert.Equal(t, float32(46), quads[2].Y1)
	for _, q := range quads {
		assert.Equal(t, ColorRed, q.Color)
	}

	scaled := fa.AppendQuads(quads[:0:0], 0, 0, "x", ColorWhite, 2)
	require.Len(t, scaled, 1)
	assert.Equal(t, float32(14), scaled[0].X1)
	assert.Equal(t, float32(26), scaled[0].Y1)
}

func TestFontAtlas_Fallback(t *testing.T) {
	fa := DefaultFont()
	gt, _ := fa.lookup('>')
	arrow, ok := fa.lookup('→')
	require.True(t, ok)
	assert.Equal(t, gt, arrow)

	q, _ := fa.lookup('?')
	missing, ok := fa.lookup('中')
	require.True(t, ok)
	assert.Equal(t, q, missing)
}
