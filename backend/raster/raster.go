// Package raster is a software tweakbar backend drawing into an *image.RGBA.
// It needs no graphics context, which makes it suitable for screenshots,
// headless tools and tests.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/go-theft-auto/tweakbar"
)

// Renderer rasterizes batches into Target.
type Renderer struct {
	Target *image.RGBA

	textures []image.Image // TextureID n is textures[n-1]
	rast     vector.Rasterizer
}

// New returns a renderer with a cleared width x height target.
func New(width, height int) *Renderer {
	return &Renderer{Target: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Clear fills the target with c.
func (r *Renderer) Clear(c color.Color) {
	draw.Draw(r.Target, r.Target.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Viewport implements tweakbar.Renderer.
func (r *Renderer) Viewport() (int, int) {
	b := r.Target.Bounds()
	return b.Dx(), b.Dy()
}

// CreateTexture implements tweakbar.Renderer.
func (r *Renderer) CreateTexture(img image.Image) (tweakbar.TextureID, error) {
	if img.Bounds().Empty() {
		return 0, fmt.Errorf("empty texture %v", img.Bounds())
	}
	r.textures = append(r.textures, img)
	return tweakbar.TextureID(len(r.textures)), nil
}

func (r *Renderer) texture(id tweakbar.TextureID) (image.Image, error) {
	if id == 0 || int(id) > len(r.textures) {
		return nil, fmt.Errorf("unknown texture %d", id)
	}
	return r.textures[id-1], nil
}

// clip returns the target region a draw call may touch.
func (r *Renderer) clip(c tweakbar.Rect) image.Rectangle {
	cr := image.Rect(int(c.X), int(c.Y), int(c.X+c.W+0.5), int(c.Y+c.H+0.5))
	return cr.Intersect(r.Target.Bounds())
}

func op(b tweakbar.BlendMode) draw.Op {
	if b == tweakbar.BlendOpaque {
		return draw.Src
	}
	return draw.Over
}

// DrawTriangles implements tweakbar.Renderer. Vertex colors are
// interpolated across each triangle; texture coordinates are ignored.
func (r *Renderer) DrawTriangles(state tweakbar.RenderState, vertices []tweakbar.Vertex, indices []uint32) error {
	cr := r.clip(state.Clip)
	if cr.Empty() {
		return nil
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}
	r.rast.DrawOp = op(state.Blend)
	ox, oy := float32(cr.Min.X), float32(cr.Min.Y)

	for i := 0; i < len(indices); i += 3 {
		var tri [3]tweakbar.Vertex
		for k := range tri {
			idx := indices[i+k]
			if int(idx) >= len(vertices) {
				return fmt.Errorf("index %d out of range (%d vertices)", idx, len(vertices))
			}
			tri[k] = vertices[idx]
		}
		r.rast.Reset(cr.Dx(), cr.Dy())
		r.rast.MoveTo(tri[0].Pos[0]-ox, tri[0].Pos[1]-oy)
		r.rast.LineTo(tri[1].Pos[0]-ox, tri[1].Pos[1]-oy)
		r.rast.LineTo(tri[2].Pos[0]-ox, tri[2].Pos[1]-oy)
		r.rast.ClosePath()
		r.rast.Draw(r.Target, cr, shade(tri), image.Point{X: cr.Min.X, Y: cr.Min.Y})
	}
	return nil
}

// DrawGlyphs implements tweakbar.Renderer.
func (r *Renderer) DrawGlyphs(state tweakbar.RenderState, quads []tweakbar.GlyphQuad) error {
	cr := r.clip(state.Clip)
	if cr.Empty() || len(quads) == 0 {
		return nil
	}
	tex, err := r.texture(state.Texture)
	if err != nil {
		return err
	}
	tb := tex.Bounds()
	dst := r.Target.SubImage(cr).(*image.RGBA)
	alpha, isAlpha := tex.(*image.Alpha)

	for _, q := range quads {
		dr := image.Rect(round(q.X0), round(q.Y0), round(q.X1), round(q.Y1))
		sr := image.Rect(
			tb.Min.X+round(q.U0*float32(tb.Dx())), tb.Min.Y+round(q.V0*float32(tb.Dy())),
			tb.Min.X+round(q.U1*float32(tb.Dx())), tb.Min.Y+round(q.V1*float32(tb.Dy())),
		)
		if dr.Empty() || sr.Empty() || !dr.Overlaps(cr) {
			continue
		}
		if !isAlpha {
			xdraw.NearestNeighbor.Scale(dst, dr, tex, sr, op(state.Blend), nil)
			continue
		}
		mask, mp := image.Image(alpha), sr.Min
		if dr.Size() != sr.Size() {
			scaled := image.NewAlpha(image.Rectangle{Max: dr.Size()})
			xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), alpha, sr, xdraw.Src, nil)
			mask, mp = scaled, image.Point{}
		}
		draw.DrawMask(dst, dr, image.NewUniform(unpack(q.Color)), image.Point{}, mask, mp, op(state.Blend))
	}
	return nil
}

func round(v float32) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func unpack(c uint32) color.NRGBA {
	r, g, b, a := tweakbar.UnpackRGBA(c)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// shade returns the source image for one triangle: a uniform color when the
// corners agree, otherwise a barycentric gradient.
func shade(tri [3]tweakbar.Vertex) image.Image {
	if tri[0].Color == tri[1].Color && tri[1].Color == tri[2].Color {
		return image.NewUniform(unpack(tri[0].Color))
	}
	g := &gradient{}
	for k, v := range tri {
		g.x[k], g.y[k] = v.Pos[0], v.Pos[1]
		g.c[k] = unpack(v.Color)
	}
	g.det = (g.y[1]-g.y[2])*(g.x[0]-g.x[2]) + (g.x[2]-g.x[1])*(g.y[0]-g.y[2])
	return g
}

// gradient interpolates vertex colors over a triangle in target space.
type gradient struct {
	x, y [3]float32
	c    [3]color.NRGBA
	det  float32
}

func (g *gradient) ColorModel() color.Model { return color.NRGBAModel }

func (g *gradient) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (g *gradient) At(x, y int) color.Color {
	if g.det == 0 {
		return g.c[0]
	}
	px, py := float32(x)+0.5, float32(y)+0.5
	w0 := ((g.y[1]-g.y[2])*(px-g.x[2]) + (g.x[2]-g.x[1])*(py-g.y[2])) / g.det
	w1 := ((g.y[2]-g.y[0])*(px-g.x[2]) + (g.x[0]-g.x[2])*(py-g.y[2])) / g.det
	w0, w1 = clamp01(w0), clamp01(w1)
	w2 := clamp01(1 - w0 - w1)
	mix := func(a, b, c uint8) uint8 {
		return uint8(clamp01((w0*float32(a)+w1*float32(b)+w2*float32(c))/255)*255 + 0.5)
	}
	c := g.c
	return color.NRGBA{
		R: mix(c[0].R, c[1].R, c[2].R),
		G: mix(c[0].G, c[1].G, c[2].G),
		B: mix(c[0].B, c[1].B, c[2].B),
		A: mix(c[0].A, c[1].A, c[2].A),
	}
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}

var _ tweakbar.Renderer = (*Renderer)(nil)
