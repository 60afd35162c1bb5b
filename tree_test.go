package tweakbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-3

// within reports whether inner lies in outer, allowing float rounding.
func within(outer, inner Rect) bool {
	return inner.X >= outer.X-eps && inner.Y >= outer.Y-eps &&
		inner.X+inner.W <= outer.X+outer.W+eps && inner.Y+inner.H <= outer.Y+outer.H+eps
}

func requirePhasePanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		err, ok := recover().(error)
		require.True(t, ok, "expected a panic with an error value")
		assert.ErrorIs(t, err, ErrPhaseOrder)
	}()
	fn()
}

func TestTree_PhaseOrder(t *testing.T) {
	h := newHarness(t)
	h.tree.AddBar("bar", 0, 0, 200, 0).AddLabel("hello")
	b := NewBatch()

	requirePhasePanic(t, func() { h.tree.Draw(b) })
	h.tree.Update(nil, 0)
	requirePhasePanic(t, func() { _ = h.tree.Flush(b, h.r) })
	h.tree.Draw(b)
	requirePhasePanic(t, func() { h.tree.Update(nil, 0) })
	require.NoError(t, h.tree.Flush(b, h.r))

	// The cycle starts over.
	h.tree.Update(nil, 0)
	h.tree.Draw(b)
	require.NoError(t, h.tree.Flush(b, h.r))
}

func TestTree_OverlappingButtonsTopmostWins(t *testing.T) {
	style := DefaultStyle()
	style.ItemSpacing = -19 // One row: the second button sits on top of the first.
	h := newHarness(t, WithStyle(style))
	require.Equal(t, float32(19), h.tree.m.rowH)

	var pressedA, pressedB int
	bar := h.tree.AddBar("overlap", 10, 10, 200, 0)
	a := bar.AddButton("A", func() { pressedA++ })
	b := bar.AddButton("B", func() { pressedB++ })
	h.frame()

	require.Equal(t, a.Rect(), b.Rect())
	p := center(a.Rect())
	assert.Same(t, b, h.tree.HitTest(p))

	// A is drawn before B.
	atlas := DefaultFont()
	ga, _ := atlas.lookup('A')
	gb, _ := atlas.lookup('B')
	idxA, idxB := -1, -1
	for _, c := range h.r.calls {
		if !c.glyphs {
			continue
		}
		for i, q := range c.quads {
			switch {
			case q.U0 == ga.u0 && q.V0 == ga.v0 && idxA < 0:
				idxA = i
			case q.U0 == gb.u0 && q.V0 == gb.v0 && idxB < 0:
				idxB = i
			}
		}
	}
	require.True(t, idxA >= 0 && idxB >= 0)
	assert.Less(t, idxA, idxB)

	h.click(p)
	assert.Equal(t, 0, pressedA)
	assert.Equal(t, 1, pressedB)
}

func TestTree_HitTestIdempotent(t *testing.T) {
	h := newHarness(t)
	v := float32(0.3)
	on := true
	bar := h.tree.AddBar("one", 10, 10, 250, 0)
	bar.AddButton("go", nil)
	_, err := bar.AddSlider("v", FloatVar(&v, WithRange(0, 1)))
	require.NoError(t, err)
	g := bar.AddGroup("group")
	_, err = g.AddCheckBox("on", BoolVar(&on))
	require.NoError(t, err)
	h.tree.AddBar("two", 120, 40, 250, 0).AddLabel("over")
	h.frame()

	for x := float32(0); x < 420; x += 7 {
		for y := float32(0); y < 200; y += 5 {
			p := Vec2{X: x, Y: y}
			first := h.tree.HitTest(p)
			assert.Equal(t, first, h.tree.HitTest(p), "at %v", p)
		}
	}
}

func TestTree_DeepestWidgetWins(t *testing.T) {
	h := newHarness(t)
	bar := h.tree.AddBar("bar", 0, 0, 200, 0)
	g := bar.AddGroup("group")
	btn := g.AddButton("deep", nil)
	h.frame()

	assert.Same(t, btn, h.tree.HitTest(center(btn.Rect())))
	assert.Same(t, g, h.tree.HitTest(center(g.header)))
	assert.Same(t, bar, h.tree.HitTest(center(bar.header)))
	assert.Nil(t, h.tree.HitTest(Vec2{X: 500, Y: 500}))
}

func TestTree_ChildRectsContained(t *testing.T) {
	h := newHarness(t)
	v, n, on, s := float32(1), 3, false, "text"
	c := Color{R: 1, A: 1}

	bar := h.tree.AddBar("small", 20, 20, 180, 90)
	for i := range 3 {
		bar.AddButton("button", nil).SetHelp(string(rune('a' + i)))
	}
	g := bar.AddGroup("group")
	_, err := g.AddSlider("v", FloatVar(&v))
	require.NoError(t, err)
	_, err = g.AddColorPicker("c", ColorVar(&c))
	require.NoError(t, err)
	inner := g.AddGroup("inner")
	_, err = inner.AddTextField("s", StringVar(&s))
	require.NoError(t, err)
	_, err = inner.AddCheckBox("on", BoolVar(&on))
	require.NoError(t, err)
	_, err = bar.AddValue("n", IntVar(&n))
	require.NoError(t, err)
	weighted := bar.AddLabel("weighted")
	weighted.SetExtent(Proportional(1))

	check := func() {
		t.Helper()
		bar.walk(func(w Widget) {
			b := w.Node()
			if b.parent == nil || !b.shown() {
				return
			}
			assert.True(t, within(b.parent.ContentRect(), b.Rect()),
				"%s %q rect %+v escapes parent content %+v", w.Kind(), b.label, b.Rect(), b.parent.ContentRect())
		})
	}

	h.frame()
	check()

	bar.SetScroll(1e6)
	h.frame()
	assert.Greater(t, bar.Scroll(), float32(0))
	check()

	inner.SetCollapsed(true)
	h.frame()
	check()
}

func TestTree_PerBarLayers(t *testing.T) {
	h := newHarness(t)
	first := h.tree.AddBar("first", 10, 10, 200, 0)
	first.AddLabel("one")
	second := h.tree.AddBar("second", 50, 20, 200, 0)
	second.AddLabel("two")
	h.frame()

	layers := map[int]bool{}
	last := -1
	for _, c := range h.r.calls {
		assert.GreaterOrEqual(t, c.state.Layer, last, "layers must not go backwards")
		last = c.state.Layer
		layers[c.state.Layer] = true
	}
	assert.True(t, layers[LayerBars])
	assert.True(t, layers[LayerBars+1])

	// Pressing the back bar raises it.
	h.press(15, 15)
	h.release(15, 15)
	assert.Equal(t, []*Panel{second, first}, h.tree.Bars())
}

func TestTree_TooltipOnForegroundLayer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TooltipDelay = 0.01
	h := newHarness(t, WithConfig(cfg))
	bar := h.tree.AddBar("bar", 0, 0, 200, 0)
	btn := bar.AddButton("help", nil)
	plain := bar.AddButton("plain", nil)
	h.frame()

	foreground := func() bool {
		for _, c := range h.r.calls {
			if c.state.Layer == LayerForeground {
				return true
			}
		}
		return false
	}

	p := center(plain.Rect())
	h.move(p.X, p.Y)
	h.move(p.X, p.Y)
	assert.False(t, foreground())

	btn.SetHelp("Runs the thing")
	p = center(btn.Rect())
	h.move(p.X, p.Y)
	h.move(p.X, p.Y)
	assert.True(t, foreground())
}

func TestTree_FontUploadFailure(t *testing.T) {
	h := newHarness(t)
	h.tree.AddBar("bar", 0, 0, 200, 0).AddLabel("text")
	h.r.textureErr = errBackend

	err := h.tree.Frame(h.in, 0, h.batch, h.r)
	assert.ErrorIs(t, err, ErrRenderBackend)
	assert.NotEmpty(t, h.r.calls)
	for _, c := range h.r.calls {
		assert.False(t, c.glyphs, "text is disabled without a font texture")
	}

	// Only the first frame reports it.
	h.r.calls = nil
	assert.NoError(t, h.tree.Frame(h.in, 0, h.batch, h.r))
}

func TestTree_FrameReportsFlushErrors(t *testing.T) {
	h := newHarness(t)
	h.tree.AddBar("bar", 0, 0, 200, 0).AddButton("b", nil)
	h.r.failOn = func(s RenderState) error {
		if s.Texture != 0 {
			return errBackend
		}
		return nil
	}
	err := h.tree.Frame(h.in, 0, h.batch, h.r)
	assert.ErrorIs(t, err, ErrRenderBackend)
	assert.ErrorIs(t, err, errBackend)
	assert.True(t, h.batch.Empty())
}

func TestTree_BarClampedToViewport(t *testing.T) {
	h := newHarness(t)
	bar := h.tree.AddBar("bar", 780, 590, 200, 100)
	h.frame()
	assert.Equal(t, Vec2{X: 600, Y: 500}, bar.Position())
	assert.Equal(t, Rect{X: 600, Y: 500, W: 200, H: 100}, bar.Rect())

	h.r.width, h.r.height = 100, 50
	h.frame()
	assert.Equal(t, Rect{X: 0, Y: 0, W: 100, H: 50}, bar.Rect())
}

func TestTree_BarFitsContent(t *testing.T) {
	h := newHarness(t)
	bar := h.tree.AddBar("bar", 0, 0, 200, 0)
	bar.AddLabel("one")
	bar.AddLabel("two")
	h.frame()

	m := h.tree.m
	want := m.titleH + 2*m.pad + 2*m.rowH + m.spacing
	assert.InDelta(t, want, bar.Rect().H, eps)
	assert.InDelta(t, 0, bar.contentH-bar.inner.H, eps)
}

func TestTree_ProportionalExtent(t *testing.T) {
	h := newHarness(t)
	bar := h.tree.AddBar("bar", 0, 0, 200, 200)
	fixed := bar.AddLabel("fixed")
	fixed.SetExtent(Fixed(40))
	one := bar.AddLabel("one")
	one.SetExtent(Proportional(1))
	three := bar.AddLabel("three")
	three.SetExtent(Proportional(3))
	h.frame()

	assert.InDelta(t, 40, fixed.Rect().H, eps)
	assert.InDelta(t, 3*one.Rect().H, three.Rect().H, eps)
	m := h.tree.m
	assert.InDelta(t, bar.inner.H, 40+one.Rect().H+three.Rect().H+2*m.spacing, eps)
}

func TestTree_CloseAndRemove(t *testing.T) {
	h := newHarness(t)
	bar := h.tree.AddBar("bar", 0, 0, 200, 0)
	btn := bar.AddButton("b", nil)
	h.frame()

	p := center(btn.Rect())
	h.move(p.X, p.Y)
	require.Same(t, btn, h.tree.Hovered())
	assert.True(t, h.tree.WantsMouse())

	bar.Remove(btn)
	assert.Nil(t, h.tree.Hovered())
	assert.Equal(t, StateIdle, btn.State())
	assert.Nil(t, btn.Parent())

	assert.Same(t, bar, h.tree.Bar("bar"))
	h.tree.RemoveBar(bar)
	assert.Nil(t, h.tree.Bar("bar"))
	assert.Empty(t, h.tree.Bars())

	h.tree.AddBar("other", 0, 0, 100, 0)
	h.tree.Close()
	assert.Empty(t, h.tree.Bars())
	h.frame()
	assert.Empty(t, h.r.calls)
}

func TestTree_ScaleFromConfig(t *testing.T) {
	base := newHarness(t).tree.m

	cfg := DefaultConfig()
	cfg.UIScale = 2
	h := newHarness(t, WithConfig(cfg))
	assert.InDelta(t, 2*base.rowH, h.tree.m.rowH, eps)
	assert.InDelta(t, 2*base.pad, h.tree.m.pad, eps)
	assert.InDelta(t, 6, h.tree.m.deadzone, eps)

	cfg.TextScale = 0.5
	require.NoError(t, h.tree.SetConfig(cfg))
	assert.InDelta(t, base.textH, h.tree.m.textH, eps)

	cfg.UIScale = -1
	assert.ErrorIs(t, h.tree.SetConfig(cfg), ErrInvalidConfig)
	assert.Equal(t, float32(2), h.tree.Config().UIScale)

	_, err := New(WithConfig(cfg))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
