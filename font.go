package tweakbar

import (
	"image"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// atlasColumns is the number of glyph cells per atlas row.
const atlasColumns = 16

type glyphUV struct {
	u0, v0, u1, v1 float32
}

// FontAtlas is a fixed-cell glyph atlas. It is built once from a bitmap face
// and never changes afterwards, so one atlas is shared by every tree.
type FontAtlas struct {
	Image   *image.Alpha // Coverage bitmap to upload with Renderer.CreateTexture
	CellW   float32      // Glyph cell width in pixels
	CellH   float32      // Glyph cell height (line height) in pixels
	Advance float32      // Horizontal pen advance in pixels

	glyphs map[rune]glyphUV
}

// DefaultFont returns the process-wide atlas built from the 7x13 bitmap font.
var DefaultFont = sync.OnceValue(func() *FontAtlas {
	return NewFontAtlas(basicfont.Face7x13, latinRunes())
})

// latinRunes lists printable ASCII and Latin-1.
func latinRunes() []rune {
	runes := make([]rune, 0, 95+96)
	for r := rune(32); r <= 126; r++ {
		runes = append(runes, r)
	}
	for r := rune(160); r <= 255; r++ {
		runes = append(runes, r)
	}
	return runes
}

// NewFontAtlas rasterizes the given runes of a fixed-advance face into a
// grid atlas. Runes the face lacks are left out and render as '?'.
func NewFontAtlas(face font.Face, runes []rune) *FontAtlas {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	cellH := ascent + m.Descent.Ceil()
	adv, _ := face.GlyphAdvance('M')
	cellW := adv.Ceil()

	rows := (len(runes) + atlasColumns - 1) / atlasColumns
	atlasW, atlasH := atlasColumns*cellW, rows*cellH
	img := image.NewAlpha(image.Rect(0, 0, atlasW, atlasH))

	fa := &FontAtlas{
		Image:   img,
		CellW:   float32(cellW),
		CellH:   float32(cellH),
		Advance: float32(cellW),
		glyphs:  make(map[rune]glyphUV, len(runes)),
	}

	slot := 0
	for _, r := range runes {
		col, row := slot%atlasColumns, slot/atlasColumns
		cell := image.Rect(col*cellW, row*cellH, (col+1)*cellW, (row+1)*cellH)
		dot := fixed.P(cell.Min.X, cell.Min.Y+ascent)
		dr, mask, mp, _, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}
		clipped := dr.Intersect(cell)
		draw.DrawMask(img, clipped, image.Opaque, image.Point{}, mask, mp.Add(clipped.Min.Sub(dr.Min)), draw.Over)
		fa.glyphs[r] = glyphUV{
			u0: float32(cell.Min.X) / float32(atlasW),
			v0: float32(cell.Min.Y) / float32(atlasH),
			u1: float32(cell.Max.X) / float32(atlasW),
			v1: float32(cell.Max.Y) / float32(atlasH),
		}
		slot++
	}
	return fa
}

// lookup returns the UVs for r, falling back to a look-alike or '?'.
func (fa *FontAtlas) lookup(r rune) (glyphUV, bool) {
	if g, ok := fa.glyphs[r]; ok {
		return g, true
	}
	if g, ok := fa.glyphs[symbolFallback(r)]; ok {
		return g, true
	}
	g, ok := fa.glyphs['?']
	return g, ok
}

// AppendQuads lays out text starting at (x, y), the top-left of the first
// line, and appends one quad per visible glyph to dst.
func (fa *FontAtlas) AppendQuads(dst []GlyphQuad, x, y float32, text string, color uint32, scale float32) []GlyphQuad {
	cw, ch, adv := fa.CellW*scale, fa.CellH*scale, fa.Advance*scale
	penX, penY := x, y
	for _, r := range text {
		switch r {
		case '\n':
			penX = x
			penY += ch
			continue
		case ' ', '\t':
			penX += adv
			continue
		}
		if g, ok := fa.lookup(r); ok {
			dst = append(dst, GlyphQuad{
				X0: penX, Y0: penY, X1: penX + cw, Y1: penY + ch,
				U0: g.u0, V0: g.v0, U1: g.u1, V1: g.v1,
				Color: color,
			})
		}
		penX += adv
	}
	return dst
}

// MeasureText returns the size of the text block at the given scale.
func (fa *FontAtlas) MeasureText(text string, scale float32) Vec2 {
	if text == "" {
		return Vec2{}
	}
	var widest, cur float32
	lines := 1
	for _, r := range text {
		if r == '\n' {
			widest = maxf(widest, cur)
			cur = 0
			lines++
			continue
		}
		cur += fa.Advance * scale
	}
	return Vec2{X: maxf(widest, cur), Y: float32(lines) * fa.CellH * scale}
}

// FitText truncates text with a trailing "..." so it fits in maxWidth.
func (fa *FontAtlas) FitText(text string, maxWidth, scale float32) string {
	if fa.MeasureText(text, scale).X <= maxWidth {
		return text
	}
	adv := fa.Advance * scale
	if adv <= 0 {
		return text
	}
	n := int(maxWidth/adv) - 3
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if n > len(runes) {
		n = len(runes)
	}
	return string(runes[:n]) + "..."
}

// symbolFallback maps common Unicode symbols to ASCII look-alikes.
func symbolFallback(r rune) rune {
	switch r {
	case '►', '▶', '▸', '→':
		return '>'
	case '◄', '◀', '◂', '←':
		return '<'
	case '▼', '▾', '↓':
		return 'v'
	case '▲', '▴', '↑':
		return '^'
	case '●', '•', '◆':
		return '*'
	case '✓', '✔':
		return '+'
	case '✗', '✘':
		return 'x'
	case '—', '–':
		return '-'
	default:
		return r
	}
}
