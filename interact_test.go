package tweakbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteract_SliderDragAcrossTrack(t *testing.T) {
	h := newHarness(t)
	v := float32(0.5)
	s, err := h.tree.AddBar("bar", 10, 10, 300, 0).AddSlider("value", FloatVar(&v, WithRange(0, 1)))
	require.NoError(t, err)
	h.frame()

	tr := s.Track()
	y := tr.Y + tr.H/2

	h.press(tr.X, y)
	assert.Equal(t, StatePressed, s.State())
	assert.Equal(t, float32(0.5), v, "press alone does not commit")

	h.move(tr.X+tr.W, y)
	assert.Equal(t, StateDragging, s.State())
	assert.Equal(t, float32(1), v)

	h.move(tr.X, y)
	assert.Equal(t, float32(0), v)

	h.release(tr.X, y)
	assert.Equal(t, float32(0), v)
	assert.Equal(t, StateIdle, s.State())
	assert.Nil(t, h.tree.Active())
}

func TestInteract_SliderClickCommits(t *testing.T) {
	h := newHarness(t)
	v := float32(0.9)
	changes := 0
	s, err := h.tree.AddBar("bar", 10, 10, 300, 0).AddSlider("value",
		FloatVar(&v, WithRange(0, 1), OnChange(func() { changes++ })))
	require.NoError(t, err)
	h.frame()

	tr := s.Track()
	x, y := tr.X+tr.W*0.25, tr.Y+tr.H/2
	h.press(x, y)
	assert.Equal(t, float32(0.9), v)
	h.release(x, y)
	assert.InDelta(t, 0.25, v, 1e-5)
	assert.Equal(t, 1, changes)

	// Same spot again: no change, no callback.
	h.click(Vec2{X: x, Y: y})
	assert.Equal(t, 1, changes)
}

func TestInteract_SliderLabelKeepsValue(t *testing.T) {
	h := newHarness(t)
	v := float32(0.75)
	s, err := h.tree.AddBar("bar", 10, 10, 300, 0).AddSlider("value", FloatVar(&v, WithRange(0, 1)))
	require.NoError(t, err)
	h.frame()

	label, _ := h.tree.splitRow(s.frame)
	p := center(label)
	require.False(t, s.Track().Contains(p))

	h.click(p)
	assert.Equal(t, float32(0.75), v, "clicking the label only focuses")
	assert.Same(t, s, h.tree.Focused())

	// A drag started on the label is relative: 20 px at 1% per px.
	h.press(p.X, p.Y)
	h.move(p.X+20, p.Y)
	assert.Equal(t, StateDragging, s.State())
	assert.InDelta(t, 0.95, v, 1e-5)
	h.release(p.X+20, p.Y)
	assert.InDelta(t, 0.95, v, 1e-5)
}

func TestInteract_SliderStepAndDeadzone(t *testing.T) {
	h := newHarness(t)
	v := float32(0)
	s, err := h.tree.AddBar("bar", 10, 10, 300, 0).AddSlider("value",
		FloatVar(&v, WithRange(0, 1), WithStep(0.25)))
	require.NoError(t, err)
	h.frame()

	tr := s.Track()
	y := tr.Y + tr.H/2
	h.press(tr.X, y)
	h.move(tr.X+2, y)
	assert.Equal(t, StatePressed, s.State(), "inside the deadzone")
	assert.Equal(t, float32(0), v)

	h.move(tr.X+tr.W*0.3, y)
	assert.Equal(t, StateDragging, s.State())
	assert.Equal(t, float32(0.25), v)
	h.release(tr.X+tr.W*0.3, y)
}

func TestInteract_SliderRelativeDrag(t *testing.T) {
	h := newHarness(t)
	n := 10
	s, err := h.tree.AddBar("bar", 10, 10, 300, 0).AddSlider("count", IntVar(&n))
	require.NoError(t, err)
	h.frame()

	p := center(s.Track())
	h.press(p.X, p.Y)
	h.move(p.X+5, p.Y)
	assert.Equal(t, 15, n)
	h.move(p.X-3, p.Y)
	assert.Equal(t, 7, n)
	h.release(p.X-3, p.Y)
	assert.Equal(t, 7, n, "release after a drag commits nothing more")
}

func TestInteract_SliderKeysAndWheel(t *testing.T) {
	h := newHarness(t)
	n := 5
	s, err := h.tree.AddBar("bar", 10, 10, 300, 0).AddSlider("count", IntVar(&n, WithRange(0, 10)))
	require.NoError(t, err)
	h.frame()

	h.tree.SetFocus(s)
	require.True(t, s.Focused())
	assert.True(t, h.tree.WantsKeyboard())

	h.key(KeyRight)
	assert.Equal(t, 6, n)
	h.key(KeyDown)
	assert.Equal(t, 5, n)
	h.key(KeyHome)
	assert.Equal(t, 0, n)
	h.key(KeyEnd)
	assert.Equal(t, 10, n)
	h.key(KeyLeft)
	assert.Equal(t, 9, n)

	p := center(s.Rect())
	h.move(p.X, p.Y)
	h.wheel(3)
	assert.Equal(t, 10, n, "clamped to the range")
	h.wheel(-2)
	assert.Equal(t, 8, n)

	h.key(KeyEscape)
	assert.False(t, s.Focused())
}

func TestInteract_HeldKeyRepeats(t *testing.T) {
	h := newHarness(t)
	n := 0
	s, err := h.tree.AddBar("bar", 10, 10, 300, 0).AddSlider("count", IntVar(&n, WithRange(0, 100)))
	require.NoError(t, err)
	h.frame()
	h.tree.SetFocus(s)

	h.in.SetKey(KeyRight, true)
	h.frame()
	assert.Equal(t, 1, n, "initial press")

	// 20 frames at 1/60 s stay inside KeyRepeatDelay.
	for range 19 {
		h.frame()
	}
	assert.Equal(t, 1, n)

	for range 15 {
		h.frame()
	}
	assert.GreaterOrEqual(t, n, 3, "held key repeats once the delay has passed")

	h.in.SetKey(KeyRight, false)
	h.frame()
	held := n
	h.frame()
	assert.Equal(t, held, n)
}

func TestInteract_NoClickAfterDrag(t *testing.T) {
	h := newHarness(t)
	c := Color{A: 1}
	cp, err := h.tree.AddBar("bar", 10, 10, 300, 0).AddColorPicker("color", ColorVar(&c))
	require.NoError(t, err)
	h.frame()

	// Drag from a channel bar and let go over the mode toggle.
	start := center(cp.Bar(0))
	end := center(cp.toggle)
	h.press(start.X, start.Y)
	h.move(end.X, end.Y)
	assert.Equal(t, StateDragging, cp.State())
	h.release(end.X, end.Y)

	assert.Equal(t, ColorModeRGB, cp.Mode(), "a drag must not end in a click")

	// A plain click on the toggle does switch.
	h.click(end)
	assert.Equal(t, ColorModeHSV, cp.Mode())
}

func TestInteract_ButtonClickRequiresReleaseInside(t *testing.T) {
	h := newHarness(t)
	clicks := 0
	btn := h.tree.AddBar("bar", 10, 10, 200, 0).AddButton("go", func() { clicks++ })
	h.frame()

	p := center(btn.Rect())
	h.press(p.X, p.Y)
	assert.Equal(t, StatePressed, btn.State())
	h.move(p.X+400, p.Y)
	assert.Equal(t, StatePressed, btn.State(), "buttons never drag")
	h.release(p.X+400, p.Y)
	assert.Equal(t, 0, clicks)
	assert.Equal(t, StateIdle, btn.State())

	h.press(p.X, p.Y)
	h.move(p.X+1, p.Y)
	h.release(p.X+1, p.Y)
	assert.Equal(t, 1, clicks)
}

func TestInteract_HoverStates(t *testing.T) {
	h := newHarness(t)
	bar := h.tree.AddBar("bar", 10, 10, 200, 0)
	a := bar.AddButton("a", nil)
	b := bar.AddButton("b", nil)
	h.frame()

	pa, pb := center(a.Rect()), center(b.Rect())
	h.move(pa.X, pa.Y)
	assert.Equal(t, StateHovered, a.State())
	assert.Same(t, a, h.tree.Hovered())

	h.move(pb.X, pb.Y)
	assert.Equal(t, StateIdle, a.State())
	assert.Equal(t, StateHovered, b.State())

	h.move(700, 500)
	assert.Equal(t, StateIdle, b.State())
	assert.Nil(t, h.tree.Hovered())
	assert.False(t, h.tree.WantsMouse())
}

func TestInteract_DisabledAndHiddenReturnToIdle(t *testing.T) {
	h := newHarness(t)
	s := "text"
	clicks := 0
	bar := h.tree.AddBar("bar", 10, 10, 200, 0)
	btn := bar.AddButton("go", func() { clicks++ })
	tf, err := bar.AddTextField("name", StringVar(&s))
	require.NoError(t, err)
	h.frame()

	p := center(btn.Rect())
	h.move(p.X, p.Y)
	require.Equal(t, StateHovered, btn.State())

	btn.SetEnabled(false)
	assert.Equal(t, StateIdle, btn.State())
	h.frame()
	assert.Nil(t, h.tree.Hovered())
	h.click(p)
	assert.Equal(t, 0, clicks)
	assert.Equal(t, StateIdle, btn.State())

	// Disabled in the middle of a press.
	btn.SetEnabled(true)
	h.press(p.X, p.Y)
	require.Equal(t, StatePressed, btn.State())
	btn.SetEnabled(false)
	h.release(p.X, p.Y)
	assert.Equal(t, 0, clicks)
	assert.Nil(t, h.tree.Active())

	h.tree.SetFocus(tf)
	require.True(t, tf.Focused())
	tf.SetVisible(false)
	h.frame()
	assert.False(t, tf.Focused())
	assert.Nil(t, h.tree.Focused())
	assert.Equal(t, StateIdle, tf.State())
}

func TestInteract_DisabledGroupDisablesChildren(t *testing.T) {
	h := newHarness(t)
	clicks := 0
	g := h.tree.AddBar("bar", 10, 10, 200, 0).AddGroup("group")
	btn := g.AddButton("go", func() { clicks++ })
	h.frame()

	g.SetEnabled(false)
	h.click(center(btn.Rect()))
	assert.Equal(t, 0, clicks)

	g.SetEnabled(true)
	h.click(center(btn.Rect()))
	assert.Equal(t, 1, clicks)
}

func TestInteract_TabCyclesFocus(t *testing.T) {
	h := newHarness(t)
	on, v, s := false, float32(0), "x"
	bar := h.tree.AddBar("bar", 10, 10, 250, 0)
	cb, err := bar.AddCheckBox("on", BoolVar(&on))
	require.NoError(t, err)
	sl, err := bar.AddSlider("v", FloatVar(&v))
	require.NoError(t, err)
	bar.AddButton("skip", nil)
	_, err = bar.AddSlider("ro", FloatVar(&v, ReadOnly()))
	require.NoError(t, err)
	tf, err := bar.AddTextField("s", StringVar(&s))
	require.NoError(t, err)
	h.frame()

	want := []Widget{cb, sl, tf, cb}
	for _, w := range want {
		h.key(KeyTab)
		assert.Same(t, w, h.tree.Focused())
	}

	h.in.ModShift = true
	h.key(KeyTab)
	h.in.ModShift = false
	assert.Same(t, tf, h.tree.Focused())
	assert.True(t, tf.Editing())

	// Pressing empty space clears focus.
	h.click(Vec2{X: 700, Y: 500})
	assert.Nil(t, h.tree.Focused())
	assert.False(t, tf.Editing())
	assert.Equal(t, "x", s)
}

func TestInteract_PanelTitleDrag(t *testing.T) {
	h := newHarness(t)
	bar := h.tree.AddBar("bar", 100, 100, 200, 0)
	bar.AddLabel("content")
	h.frame()

	h.press(150, 110)
	h.move(250, 210)
	assert.Equal(t, StateDragging, bar.State())
	assert.Equal(t, Vec2{X: 200, Y: 200}, bar.Position())
	assert.Equal(t, float32(200), bar.Rect().X)
	h.release(250, 210)
	assert.False(t, bar.grabbed)

	// Dragged past the edge, the bar stays on screen.
	h.press(250, 210)
	h.move(-500, -500)
	h.release(-500, -500)
	assert.Equal(t, Vec2{}, bar.Position())
}

func TestInteract_PanelBodyDoesNotDrag(t *testing.T) {
	h := newHarness(t)
	bar := h.tree.AddBar("bar", 100, 100, 200, 200)
	h.frame()

	p := center(bar.ContentRect())
	h.press(p.X, p.Y)
	h.move(p.X+50, p.Y+50)
	assert.Equal(t, StatePressed, bar.State())
	h.release(p.X+50, p.Y+50)
	assert.Equal(t, Vec2{X: 100, Y: 100}, bar.Position())
}

func TestInteract_CollapseToggle(t *testing.T) {
	h := newHarness(t)
	bar := h.tree.AddBar("bar", 10, 10, 200, 0)
	btn := bar.AddButton("inside", nil)
	g := bar.AddGroup("group")
	g.AddLabel("nested")
	h.frame()

	inside := center(btn.Rect())
	h.click(center(bar.toggle))
	assert.True(t, bar.Collapsed())
	assert.InDelta(t, h.tree.m.titleH, bar.Rect().H, eps)
	assert.Nil(t, h.tree.HitTest(inside))

	h.click(center(bar.toggle))
	assert.False(t, bar.Collapsed())
	assert.Same(t, btn, h.tree.HitTest(inside))

	// Nested groups toggle from anywhere on their header.
	h.click(Vec2{X: g.header.X + 5, Y: g.header.Y + g.header.H/2})
	assert.True(t, g.Collapsed())

	g.SetCollapsible(false)
	assert.False(t, g.Collapsed())
	g.SetCollapsed(true)
	assert.False(t, g.Collapsed())
}

func TestInteract_WheelScrollsPanel(t *testing.T) {
	h := newHarness(t)
	bar := h.tree.AddBar("bar", 10, 10, 200, 100)
	var first *Label
	for i := range 10 {
		l := bar.AddLabel("row")
		if i == 0 {
			first = l
		}
	}
	h.frame()

	maxScroll := bar.contentH - bar.inner.H
	require.Greater(t, maxScroll, float32(0))

	p := center(first.Rect())
	h.move(p.X, p.Y)
	h.wheel(-1)
	m := h.tree.m
	assert.InDelta(t, m.rowH*h.tree.Config().ScrollSpeed, bar.Scroll(), eps)

	h.wheel(-100)
	assert.InDelta(t, maxScroll, bar.Scroll(), eps)

	h.wheel(100)
	assert.Equal(t, float32(0), bar.Scroll())
}

func TestInteract_FittedPanelIgnoresWheel(t *testing.T) {
	h := newHarness(t)
	bar := h.tree.AddBar("bar", 10, 10, 200, 0)
	l := bar.AddLabel("row")
	h.frame()

	p := center(l.Rect())
	h.move(p.X, p.Y)
	h.wheel(-3)
	assert.Equal(t, float32(0), bar.Scroll())
}
