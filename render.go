package tweakbar

import (
	"fmt"
	"image"
)

// TextureID identifies a texture created by the Renderer. Zero means untextured.
type TextureID uint32

// BlendMode selects how a draw call is composited over the framebuffer.
type BlendMode uint8

const (
	BlendAlpha    BlendMode = iota // src*a + dst*(1-a)
	BlendAdditive                  // src*a + dst
	BlendOpaque                    // no blending
)

func (b BlendMode) String() string {
	switch b {
	case BlendAlpha:
		return "alpha"
	case BlendAdditive:
		return "additive"
	case BlendOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("BlendMode(%d)", uint8(b))
	}
}

// Layer values for RenderState.Layer. Bar i of a tree draws on LayerBars+i
// so that overlapping bars composite front to back.
const (
	LayerBars       = 0
	LayerForeground = 1 << 20 // Tooltips, drawn above every bar
)

// RenderState is the key draw primitives are grouped by when the batch flushes.
// Entries with equal state are submitted in a single renderer call.
type RenderState struct {
	Layer   int
	Texture TextureID
	Blend   BlendMode
	Clip    Rect // Scissor rectangle in pixel space
}

// Renderer is the contract a graphics backend implements to draw the batch.
// The core never talks to a graphics API directly.
type Renderer interface {
	// CreateTexture uploads a bitmap (font atlas, icons) and returns its ID.
	// *image.Alpha is uploaded as a coverage texture, anything else as RGBA.
	CreateTexture(img image.Image) (TextureID, error)

	// DrawTriangles draws an indexed triangle list with the given state.
	DrawTriangles(state RenderState, vertices []Vertex, indices []uint32) error

	// DrawGlyphs draws text quads sampled from state.Texture, clipped to state.Clip.
	DrawGlyphs(state RenderState, quads []GlyphQuad) error

	// Viewport returns the framebuffer size in pixels.
	Viewport() (width, height int)
}

// FrameRenderer is optionally implemented by renderers that need to set up
// and restore graphics state around a flush.
type FrameRenderer interface {
	BeginFrame() error
	EndFrame()
}

// GlyphMesh appends two triangles per glyph quad. Backends without a
// dedicated text path draw DrawGlyphs input with it.
func GlyphMesh(vertices []Vertex, indices []uint32, quads []GlyphQuad) ([]Vertex, []uint32) {
	for _, q := range quads {
		base := uint32(len(vertices))
		vertices = append(vertices,
			Vertex{Pos: [2]float32{q.X0, q.Y0}, TexCoord: [2]float32{q.U0, q.V0}, Color: q.Color},
			Vertex{Pos: [2]float32{q.X1, q.Y0}, TexCoord: [2]float32{q.U1, q.V0}, Color: q.Color},
			Vertex{Pos: [2]float32{q.X1, q.Y1}, TexCoord: [2]float32{q.U1, q.V1}, Color: q.Color},
			Vertex{Pos: [2]float32{q.X0, q.Y1}, TexCoord: [2]float32{q.U0, q.V1}, Color: q.Color},
		)
		for _, i := range quadIndices {
			indices = append(indices, base+i)
		}
	}
	return vertices, indices
}

// ScissorBox converts a clip rectangle to a bottom-left origin scissor box
// inside a width x height framebuffer. ok is false when nothing is visible.
func ScissorBox(clip Rect, width, height int) (x, y, w, h int32, ok bool) {
	c := clip.Intersect(Rect{W: float32(width), H: float32(height)})
	if c.Empty() {
		return 0, 0, 0, 0, false
	}
	x = int32(c.X)
	w = int32(c.X+c.W+0.5) - x
	top := int32(c.Y)
	h = int32(c.Y+c.H+0.5) - top
	y = int32(height) - top - h
	return x, y, w, h, w > 0 && h > 0
}
