package tweakbar

import "github.com/chewxy/math32"

var quadIndices = []uint32{0, 1, 2, 0, 2, 3}

// AddRect draws a filled rectangle.
func (b *Batch) AddRect(x, y, w, h float32, color uint32) {
	b.AddGradientRect(x, y, w, h, color, color, color, color)
}

// AddGradientRect draws a rectangle with one color per corner, clockwise from
// the top-left.
func (b *Batch) AddGradientRect(x, y, w, h float32, tl, tr, br, bl uint32) {
	if w <= 0 || h <= 0 {
		return
	}
	if (tl|tr|br|bl)&0xFF000000 == 0 { // Skip fully transparent
		return
	}
	verts := [4]Vertex{
		{Pos: [2]float32{x, y}, Color: tl},
		{Pos: [2]float32{x + w, y}, Color: tr},
		{Pos: [2]float32{x + w, y + h}, Color: br},
		{Pos: [2]float32{x, y + h}, Color: bl},
	}
	b.AddTriangles(verts[:], quadIndices, b.State(0, BlendAlpha))
}

// AddRectOutline draws a rectangle outline.
func (b *Batch) AddRectOutline(x, y, w, h float32, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}
	b.AddRect(x, y, w, thickness, color)
	b.AddRect(x, y+h-thickness, w, thickness, color)
	b.AddRect(x, y+thickness, thickness, h-2*thickness, color)
	b.AddRect(x+w-thickness, y+thickness, thickness, h-2*thickness, color)
}

// AddLine draws a line between two points as a quad of the given thickness.
func (b *Batch) AddLine(x1, y1, x2, y2 float32, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	inv := float32(1)
	if l := math32.Sqrt(dx*dx + dy*dy); l > 0 {
		inv = 1 / l
	}
	nx := -dy * inv * thickness * 0.5
	ny := dx * inv * thickness * 0.5

	verts := [4]Vertex{
		{Pos: [2]float32{x1 + nx, y1 + ny}, Color: color},
		{Pos: [2]float32{x2 + nx, y2 + ny}, Color: color},
		{Pos: [2]float32{x2 - nx, y2 - ny}, Color: color},
		{Pos: [2]float32{x1 - nx, y1 - ny}, Color: color},
	}
	b.AddTriangles(verts[:], quadIndices, b.State(0, BlendAlpha))
}

// AddTriangle draws a filled triangle.
func (b *Batch) AddTriangle(x1, y1, x2, y2, x3, y3 float32, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}
	verts := [3]Vertex{
		{Pos: [2]float32{x1, y1}, Color: color},
		{Pos: [2]float32{x2, y2}, Color: color},
		{Pos: [2]float32{x3, y3}, Color: color},
	}
	b.AddTriangles(verts[:], nil, b.State(0, BlendAlpha))
}

// AddText lays out text with the atlas and queues the glyphs under the
// current clip. tex is the texture the atlas was uploaded as.
func (b *Batch) AddText(atlas *FontAtlas, tex TextureID, x, y float32, text string, color uint32, scale float32) {
	if atlas == nil || color&0xFF000000 == 0 || len(text) == 0 {
		return
	}
	b.glyphTmp = atlas.AppendQuads(b.glyphTmp[:0], x, y, text, color, scale)
	b.AddGlyphs(b.glyphTmp, tex, b.clip)
}
