package tweakbar

import (
	"errors"
	"image"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// drawCall is one Renderer call seen by the recorder.
type drawCall struct {
	glyphs   bool
	state    RenderState
	vertices []Vertex
	indices  []uint32
	quads    []GlyphQuad
}

// recorder is a Renderer that keeps every call for inspection.
type recorder struct {
	width, height int
	calls         []drawCall
	textures      int

	textureErr error
	failOn     func(RenderState) error
}

func newRecorder() *recorder {
	return &recorder{width: 800, height: 600}
}

func (r *recorder) CreateTexture(img image.Image) (TextureID, error) {
	if r.textureErr != nil {
		return 0, r.textureErr
	}
	r.textures++
	return TextureID(r.textures), nil
}

func (r *recorder) DrawTriangles(state RenderState, vertices []Vertex, indices []uint32) error {
	r.calls = append(r.calls, drawCall{
		state:    state,
		vertices: slices.Clone(vertices),
		indices:  slices.Clone(indices),
	})
	if r.failOn != nil {
		return r.failOn(state)
	}
	return nil
}

func (r *recorder) DrawGlyphs(state RenderState, quads []GlyphQuad) error {
	r.calls = append(r.calls, drawCall{glyphs: true, state: state, quads: slices.Clone(quads)})
	if r.failOn != nil {
		return r.failOn(state)
	}
	return nil
}

func (r *recorder) Viewport() (int, int) { return r.width, r.height }

// frameRecorder adds the optional begin/end hooks.
type frameRecorder struct {
	*recorder
	begins, ends int
	beginErr     error
}

func (r *frameRecorder) BeginFrame() error {
	r.begins++
	return r.beginErr
}

func (r *frameRecorder) EndFrame() { r.ends++ }

var errBackend = errors.New("device lost")

// memClipboard is an in-memory Clipboard.
type memClipboard struct{ text string }

func (c *memClipboard) GetText() string     { return c.text }
func (c *memClipboard) SetText(text string) { c.text = text }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// harness drives a tree frame by frame with synthetic input.
type harness struct {
	t     *testing.T
	tree  *Tree
	in    *InputState
	batch *Batch
	r     *recorder
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	tree, err := New(append([]Option{WithLogger(quietLogger())}, opts...)...)
	require.NoError(t, err)
	return &harness{
		t:     t,
		tree:  tree,
		in:    NewInputState(),
		batch: NewBatch(),
		r:     newRecorder(),
	}
}

// frame runs one full frame and clears the input edges.
func (h *harness) frame() {
	h.t.Helper()
	h.r.calls = h.r.calls[:0]
	require.NoError(h.t, h.tree.Frame(h.in, 1.0/60.0, h.batch, h.r))
	h.in.Reset()
}

func (h *harness) move(x, y float32) {
	h.t.Helper()
	h.in.SetMousePos(x, y)
	h.frame()
}

func (h *harness) press(x, y float32) {
	h.t.Helper()
	h.in.SetMousePos(x, y)
	h.in.SetMouseButton(MouseButtonLeft, true)
	h.frame()
}

func (h *harness) release(x, y float32) {
	h.t.Helper()
	h.in.SetMousePos(x, y)
	h.in.SetMouseButton(MouseButtonLeft, false)
	h.frame()
}

func (h *harness) click(p Vec2) {
	h.t.Helper()
	h.press(p.X, p.Y)
	h.release(p.X, p.Y)
}

// key taps k: one frame down, one frame up.
func (h *harness) key(k Key) {
	h.t.Helper()
	h.in.SetKey(k, true)
	h.frame()
	h.in.SetKey(k, false)
	h.frame()
}

// ctrl taps k with Ctrl held.
func (h *harness) ctrl(k Key) {
	h.t.Helper()
	h.in.ModCtrl = true
	h.key(k)
	h.in.ModCtrl = false
}

func (h *harness) typeText(s string) {
	h.t.Helper()
	for _, r := range s {
		h.in.AddInputChar(r)
	}
	h.frame()
}

func (h *harness) wheel(y float32) {
	h.t.Helper()
	h.in.SetMouseWheel(0, y)
	h.frame()
}

// replaceText focuses tf, replaces its text and commits with Enter.
func (h *harness) replaceText(tf *TextField, text string) {
	h.t.Helper()
	h.tree.SetFocus(tf)
	h.ctrl(KeyX)
	h.typeText(text)
	h.key(KeyEnter)
}

func center(r Rect) Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}
