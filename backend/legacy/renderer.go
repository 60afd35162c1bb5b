// Package legacy provides an OpenGL 2.1 fixed-function backend for tweakbar,
// for hosts that render with a compatibility context.
package legacy

import (
	"fmt"
	"image"
	"image/draw"
	"unsafe"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/tweakbar"
)

// Renderer draws tweakbar batches with client-side vertex arrays. It must be
// used on the thread owning the GL context.
type Renderer struct {
	width, height int
	textures      map[tweakbar.TextureID]bool // true for RGBA
	inPass        bool

	glyphVtx []tweakbar.Vertex
	glyphIdx []uint32
}

// NewRenderer returns a renderer for a framebuffer of the given size.
// gl.Init must have been called.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:    width,
		height:   height,
		textures: make(map[tweakbar.TextureID]bool),
	}
}

// Resize updates the framebuffer size.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
}

// Viewport implements tweakbar.Renderer.
func (r *Renderer) Viewport() (int, int) { return r.width, r.height }

// CreateTexture implements tweakbar.Renderer. *image.Alpha is uploaded as
// GL_ALPHA so that GL_MODULATE tints it with the vertex color.
func (r *Renderer) CreateTexture(img image.Image) (tweakbar.TextureID, error) {
	b := img.Bounds()
	if b.Empty() {
		return 0, fmt.Errorf("empty texture %v", b)
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	rgba := false
	if a, ok := img.(*image.Alpha); ok {
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(a.Stride))
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.ALPHA, int32(b.Dx()), int32(b.Dy()), 0, gl.ALPHA, gl.UNSIGNED_BYTE, gl.Ptr(a.Pix[a.PixOffset(b.Min.X, b.Min.Y):]))
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	} else {
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst.Pix))
		rgba = true
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("texture upload: gl error 0x%x", code)
	}
	id := tweakbar.TextureID(tex)
	r.textures[id] = rgba
	return id, nil
}

// BeginFrame pushes the host's state and sets up an orthographic pass.
func (r *Renderer) BeginFrame() error {
	gl.PushAttrib(gl.ALL_ATTRIB_BITS)
	gl.PushClientAttrib(gl.CLIENT_ALL_ATTRIB_BITS)

	gl.Disable(gl.LIGHTING)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.TexEnvi(gl.TEXTURE_ENV, gl.TEXTURE_ENV_MODE, gl.MODULATE)

	gl.MatrixMode(gl.PROJECTION)
	gl.PushMatrix()
	proj := mgl32.Ortho2D(0, float32(r.width), float32(r.height), 0)
	gl.LoadMatrixf(&proj[0])
	gl.MatrixMode(gl.MODELVIEW)
	gl.PushMatrix()
	gl.LoadIdentity()

	gl.EnableClientState(gl.VERTEX_ARRAY)
	gl.EnableClientState(gl.TEXTURE_COORD_ARRAY)
	gl.EnableClientState(gl.COLOR_ARRAY)
	r.inPass = true

	if code := gl.GetError(); code != gl.NO_ERROR {
		r.EndFrame()
		return fmt.Errorf("begin frame: gl error 0x%x", code)
	}
	return nil
}

// EndFrame restores everything BeginFrame pushed.
func (r *Renderer) EndFrame() {
	if !r.inPass {
		return
	}
	r.inPass = false
	gl.MatrixMode(gl.MODELVIEW)
	gl.PopMatrix()
	gl.MatrixMode(gl.PROJECTION)
	gl.PopMatrix()
	gl.PopClientAttrib()
	gl.PopAttrib()
}

func (r *Renderer) apply(state tweakbar.RenderState) (bool, error) {
	x, y, w, h, ok := tweakbar.ScissorBox(state.Clip, r.width, r.height)
	if !ok {
		return false, nil
	}
	gl.Scissor(x, y, w, h)

	switch state.Blend {
	case tweakbar.BlendAlpha:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	case tweakbar.BlendAdditive:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	case tweakbar.BlendOpaque:
		gl.Disable(gl.BLEND)
	}

	if state.Texture == 0 {
		gl.Disable(gl.TEXTURE_2D)
		return true, nil
	}
	if _, known := r.textures[state.Texture]; !known {
		return false, fmt.Errorf("unknown texture %d", state.Texture)
	}
	gl.Enable(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, uint32(state.Texture))
	return true, nil
}

// DrawTriangles implements tweakbar.Renderer.
func (r *Renderer) DrawTriangles(state tweakbar.RenderState, vertices []tweakbar.Vertex, indices []uint32) error {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil
	}
	if !r.inPass {
		if err := r.BeginFrame(); err != nil {
			return err
		}
		defer r.EndFrame()
	}
	visible, err := r.apply(state)
	if err != nil || !visible {
		return err
	}

	stride := int32(unsafe.Sizeof(tweakbar.Vertex{}))
	gl.VertexPointer(2, gl.FLOAT, stride, gl.Ptr(&vertices[0].Pos[0]))
	gl.TexCoordPointer(2, gl.FLOAT, stride, gl.Ptr(&vertices[0].TexCoord[0]))
	gl.ColorPointer(4, gl.UNSIGNED_BYTE, stride, gl.Ptr(&vertices[0].Color))
	gl.DrawElements(gl.TRIANGLES, int32(len(indices)), gl.UNSIGNED_INT, gl.Ptr(indices))

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("draw: gl error 0x%x", code)
	}
	return nil
}

// DrawGlyphs implements tweakbar.Renderer.
func (r *Renderer) DrawGlyphs(state tweakbar.RenderState, quads []tweakbar.GlyphQuad) error {
	r.glyphVtx, r.glyphIdx = tweakbar.GlyphMesh(r.glyphVtx[:0], r.glyphIdx[:0], quads)
	return r.DrawTriangles(state, r.glyphVtx, r.glyphIdx)
}

// Delete releases every texture created by the renderer.
func (r *Renderer) Delete() {
	for id := range r.textures {
		tex := uint32(id)
		gl.DeleteTextures(1, &tex)
	}
	clear(r.textures)
}

var _ tweakbar.FrameRenderer = (*Renderer)(nil)
