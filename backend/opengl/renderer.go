// Package opengl provides an OpenGL 4.1 core profile backend for tweakbar.
package opengl

import (
	"fmt"
	"image"
	"image/draw"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/tweakbar"
)

// Renderer draws tweakbar batches with OpenGL 4.1. It must be created and
// used on the thread owning the GL context.
type Renderer struct {
	shader       uint32
	vao, vbo     uint32
	ebo          uint32
	projLoc      int32
	texLoc       int32
	useTexLoc    int32
	isRGBATexLoc int32 // Uniform for RGBA vs alpha-only texture mode
	width        int
	height       int

	// Textures created through CreateTexture; true for RGBA.
	textures map[tweakbar.TextureID]bool

	saved  glState
	inPass bool

	glyphVtx []tweakbar.Vertex
	glyphIdx []uint32
}

// glState is the host state a pass overrides.
type glState struct {
	program                   int32
	vao                       int32
	texture                   int32
	blendSrc, blendDst        int32
	scissorBox                [4]int32
	blend, depth, cull, sciss bool
}

const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

out vec2 TexCoord;
out vec4 Color;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
    Color = aColor;
}
` + "\x00"

// Alpha-only textures carry coverage in R and take RGB from the vertex;
// RGBA textures are modulated by the vertex color.
const fragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
in vec4 Color;

out vec4 FragColor;

uniform sampler2D tex;
uniform bool useTexture;
uniform bool isRGBATexture;

void main() {
    if (useTexture) {
        vec4 texColor = texture(tex, TexCoord);
        if (isRGBATexture) {
            FragColor = texColor * Color;
        } else {
            FragColor = vec4(Color.rgb, Color.a * texColor.r);
        }
    } else {
        FragColor = Color;
    }
}
` + "\x00"

// NewRenderer compiles the shaders and allocates buffers for a framebuffer
// of the given size.
func NewRenderer(width, height int) (*Renderer, error) {
	r := &Renderer{
		width:    width,
		height:   height,
		textures: make(map[tweakbar.TextureID]bool),
	}

	var err error
	r.shader, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}

	r.projLoc = gl.GetUniformLocation(r.shader, gl.Str("projection\x00"))
	r.texLoc = gl.GetUniformLocation(r.shader, gl.Str("tex\x00"))
	r.useTexLoc = gl.GetUniformLocation(r.shader, gl.Str("useTexture\x00"))
	r.isRGBATexLoc = gl.GetUniformLocation(r.shader, gl.Str("isRGBATexture\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	// Pos (2 floats) + TexCoord (2 floats) + Color (packed RGBA8)
	stride := int32(unsafe.Sizeof(tweakbar.Vertex{}))

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(tweakbar.Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(tweakbar.Vertex{}.Color))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return r, nil
}

// Resize updates the framebuffer size.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Viewport implements tweakbar.Renderer.
func (r *Renderer) Viewport() (int, int) { return r.width, r.height }

// CreateTexture implements tweakbar.Renderer. *image.Alpha becomes a
// single-channel coverage texture; other images are converted to RGBA.
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
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	rgba := false
	if a, ok := img.(*image.Alpha); ok {
		pix := tightAlpha(a)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(b.Dx()), int32(b.Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	} else {
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst.Pix))
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

// DeleteTexture releases a texture created by CreateTexture.
func (r *Renderer) DeleteTexture(id tweakbar.TextureID) {
	if _, ok := r.textures[id]; !ok {
		return
	}
	tex := uint32(id)
	gl.DeleteTextures(1, &tex)
	delete(r.textures, id)
}

// tightAlpha returns the pixels of a without row padding.
func tightAlpha(a *image.Alpha) []byte {
	w, h := a.Rect.Dx(), a.Rect.Dy()
	start := a.PixOffset(a.Rect.Min.X, a.Rect.Min.Y)
	if a.Stride == w {
		return a.Pix[start : start+w*h]
	}
	pix := make([]byte, 0, w*h)
	for y := range h {
		off := start + y*a.Stride
		pix = append(pix, a.Pix[off:off+w]...)
	}
	return pix
}

// BeginFrame saves the host's GL state and sets up the overlay pass.
func (r *Renderer) BeginFrame() error {
	s := &r.saved
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &s.program)
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &s.vao)
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &s.texture)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &s.blendSrc)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &s.blendDst)
	gl.GetIntegerv(gl.SCISSOR_BOX, &s.scissorBox[0])
	s.blend = gl.IsEnabled(gl.BLEND)
	s.depth = gl.IsEnabled(gl.DEPTH_TEST)
	s.cull = gl.IsEnabled(gl.CULL_FACE)
	s.sciss = gl.IsEnabled(gl.SCISSOR_TEST)

	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	gl.UseProgram(r.shader)
	proj := mgl32.Ortho(0, float32(r.width), float32(r.height), 0, -1, 1)
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.texLoc, 0)
	gl.BindVertexArray(r.vao)
	r.inPass = true

	if code := gl.GetError(); code != gl.NO_ERROR {
		r.EndFrame()
		return fmt.Errorf("begin frame: gl error 0x%x", code)
	}
	return nil
}

// EndFrame restores the state saved by BeginFrame.
func (r *Renderer) EndFrame() {
	if !r.inPass {
		return
	}
	r.inPass = false
	s := &r.saved
	gl.UseProgram(uint32(s.program))
	gl.BindVertexArray(uint32(s.vao))
	gl.BindTexture(gl.TEXTURE_2D, uint32(s.texture))
	gl.BlendFunc(uint32(s.blendSrc), uint32(s.blendDst))
	setCap(gl.BLEND, s.blend)
	setCap(gl.DEPTH_TEST, s.depth)
	setCap(gl.CULL_FACE, s.cull)
	setCap(gl.SCISSOR_TEST, s.sciss)
	gl.Scissor(s.scissorBox[0], s.scissorBox[1], s.scissorBox[2], s.scissorBox[3])
}

func setCap(c uint32, on bool) {
	if on {
		gl.Enable(c)
	} else {
		gl.Disable(c)
	}
}

// apply sets scissor, blending and texture for one draw call. It reports
// false when the clip leaves nothing visible.
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
		gl.Uniform1i(r.useTexLoc, 0)
		gl.Uniform1i(r.isRGBATexLoc, 0)
		return true, nil
	}
	rgba, known := r.textures[state.Texture]
	if !known {
		return false, fmt.Errorf("unknown texture %d", state.Texture)
	}
	gl.BindTexture(gl.TEXTURE_2D, uint32(state.Texture))
	gl.Uniform1i(r.useTexLoc, 1)
	if rgba {
		gl.Uniform1i(r.isRGBATexLoc, 1)
	} else {
		gl.Uniform1i(r.isRGBATexLoc, 0)
	}
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

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(unsafe.Sizeof(tweakbar.Vertex{})),
		gl.Ptr(vertices), gl.STREAM_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STREAM_DRAW)

	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(len(indices)), gl.UNSIGNED_INT, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("draw: gl error 0x%x", code)
	}
	return nil
}

// DrawGlyphs implements tweakbar.Renderer by expanding quads to triangles.
func (r *Renderer) DrawGlyphs(state tweakbar.RenderState, quads []tweakbar.GlyphQuad) error {
	r.glyphVtx, r.glyphIdx = tweakbar.GlyphMesh(r.glyphVtx[:0], r.glyphIdx[:0], quads)
	return r.DrawTriangles(state, r.glyphVtx, r.glyphIdx)
}

// Delete releases OpenGL resources.
func (r *Renderer) Delete() {
	for id := range r.textures {
		r.DeleteTexture(id)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.shader != 0 {
		gl.DeleteProgram(r.shader)
	}
}

// createShaderProgram compiles and links a shader program.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, fmt.Errorf("fragment shader: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}
	return program, nil
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compilation failed: %s", string(log))
	}
	return shader, nil
}

var _ tweakbar.FrameRenderer = (*Renderer)(nil)
