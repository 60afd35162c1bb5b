package tweakbar

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// phase tracks where the tree is in the Update, Draw, Flush cycle.
type phase uint8

const (
	phaseIdle phase = iota
	phaseUpdated
	phaseDrawn
)

// metrics are the style sizes multiplied by the configured scales.
type metrics struct {
	scale     float32
	textScale float32
	textH     float32 // Glyph cell height
	rowH      float32 // Height of one widget row
	pad       float32 // Panel padding
	spacing   float32 // Gap between rows
	titleH    float32 // Bar title height
	border    float32
	scrollW   float32
	inputPad  float32
	deadzone  float32
}

// Tree owns the bars of a tweak overlay and drives the per-frame cycle.
//
// Every frame the host calls Update, Draw and Flush in that order (or Frame,
// which does all three). Calling them out of order panics with ErrPhaseOrder.
// A Tree is not safe for concurrent use.
type Tree struct {
	cfg   Config
	style Style
	log   *slog.Logger

	clipboard Clipboard

	atlas    *FontAtlas
	fontTex  TextureID
	fontDone bool
	fontErr  error

	roots    []*Panel
	viewport Vec2
	m        metrics
	dirty    bool
	nextID   uint64
	phase    phase
	closed   bool

	pointer  Vec2
	hovered  Widget
	active   Widget
	focused  Widget
	pressPos Vec2
	dt       float32
}

// Option configures a Tree.
type Option func(*Tree)

// WithConfig sets the scale and interaction settings.
func WithConfig(cfg Config) Option {
	return func(t *Tree) { t.cfg = cfg }
}

// WithStyle sets the colors and sizes.
func WithStyle(style Style) Option {
	return func(t *Tree) { t.style = style }
}

// WithLogger routes the tree's logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tree) { t.log = l }
}

// WithFont replaces the built-in font atlas.
func WithFont(atlas *FontAtlas) Option {
	return func(t *Tree) { t.atlas = atlas }
}

// New creates an empty tree. It fails only on an invalid Config.
func New(opts ...Option) (*Tree, error) {
	t := &Tree{
		cfg:   DefaultConfig(),
		style: DefaultStyle(),
		log:   defaultLogger,
		dirty: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.cfg.Validate(); err != nil {
		return nil, err
	}
	if t.atlas == nil {
		t.atlas = DefaultFont()
	}
	t.computeMetrics()
	return t, nil
}

// Config returns the active configuration.
func (t *Tree) Config() Config { return t.cfg }

// SetConfig replaces the configuration and relayouts on the next Update.
func (t *Tree) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	t.cfg = cfg
	t.computeMetrics()
	t.Invalidate()
	return nil
}

// Style returns the active style.
func (t *Tree) Style() Style { return t.style }

// SetStyle replaces the style.
func (t *Tree) SetStyle(s Style) {
	t.style = s
	t.computeMetrics()
	t.Invalidate()
}

func (t *Tree) computeMetrics() {
	s, st := t.cfg.UIScale, t.style
	ts := s * t.cfg.TextScale
	m := metrics{
		scale:     s,
		textScale: ts,
		textH:     t.atlas.CellH * ts,
		pad:       st.PanelPadding * s,
		spacing:   st.ItemSpacing * s,
		border:    st.BorderSize * s,
		scrollW:   st.ScrollbarSize * s,
		inputPad:  st.InputPadding * s,
		deadzone:  t.cfg.DragDeadzone * s,
	}
	m.rowH = m.textH + 2*m.inputPad
	m.titleH = m.textH + 2*st.ButtonPadding*s
	t.m = m
}

// Invalidate forces a relayout on the next Update.
func (t *Tree) Invalidate() { t.dirty = true }

// SetViewport sets the overlay size used to place bars. Frame does this
// from the renderer automatically.
func (t *Tree) SetViewport(width, height int) {
	v := Vec2{X: float32(width), Y: float32(height)}
	if v != t.viewport {
		t.viewport = v
		t.Invalidate()
	}
}

// AddBar creates a top-level panel at (x, y) with the given pixel size.
// A zero height fits the bar to its content.
func (t *Tree) AddBar(title string, x, y, w, h float32) *Panel {
	p := newPanel(title)
	p.pos = Vec2{X: x, Y: y}
	p.size = Vec2{X: w, Y: h}
	t.adopt(p, nil)
	t.roots = append(t.roots, p)
	t.Invalidate()
	return p
}

// Bars returns the top-level panels, back to front.
func (t *Tree) Bars() []*Panel {
	return slices.Clone(t.roots)
}

// Bar returns the first bar with the given title.
func (t *Tree) Bar(title string) *Panel {
	for _, p := range t.roots {
		if p.label == title {
			return p
		}
	}
	return nil
}

// RemoveBar detaches a bar and everything in it.
func (t *Tree) RemoveBar(p *Panel) {
	i := slices.Index(t.roots, p)
	if i < 0 {
		return
	}
	t.roots = slices.Delete(t.roots, i, i+1)
	t.forget(p)
	t.Invalidate()
}

// BringToFront moves a bar to the end of the draw order.
func (t *Tree) BringToFront(p *Panel) {
	i := slices.Index(t.roots, p)
	if i < 0 || i == len(t.roots)-1 {
		return
	}
	t.roots = append(slices.Delete(t.roots, i, i+1), p)
}

// Close tears the tree down. Bound host variables are left untouched.
func (t *Tree) Close() {
	for _, p := range t.roots {
		t.forget(p)
	}
	t.roots = nil
	t.hovered, t.active, t.focused = nil, nil, nil
	t.closed = true
}

// adopt attaches w (and its subtree) to the tree under parent.
func (t *Tree) adopt(w Widget, parent *Panel) {
	b := w.Node()
	t.nextID++
	b.id = t.nextID
	b.tree = t
	b.parent = parent
	if p, ok := w.(*Panel); ok {
		for _, c := range p.children {
			t.adopt(c, p)
		}
	}
}

// forget drops tree references to w and its subtree.
func (t *Tree) forget(w Widget) {
	if p, ok := w.(*Panel); ok {
		for _, c := range p.children {
			t.forget(c)
		}
	}
	if t.hovered == w {
		t.hovered = nil
	}
	if t.active == w {
		t.active = nil
	}
	if t.focused == w {
		t.focused = nil
	}
	b := w.Node()
	b.state = StateIdle
	b.focused = false
	b.tree = nil
}

// Hovered returns the widget under the pointer, if any.
func (t *Tree) Hovered() Widget { return t.hovered }

// Active returns the pressed or dragged widget, if any.
func (t *Tree) Active() Widget { return t.active }

// Focused returns the widget holding keyboard focus, if any.
func (t *Tree) Focused() Widget { return t.focused }

// WantsMouse reports whether the pointer is over or captured by the overlay,
// so the host should not use it.
func (t *Tree) WantsMouse() bool { return t.hovered != nil || t.active != nil }

// WantsKeyboard reports whether a widget holds keyboard focus.
func (t *Tree) WantsKeyboard() bool { return t.focused != nil }

// HitTest returns the frontmost widget under p. Bars are tested from the
// last drawn to the first and children likewise, so the visually topmost
// widget wins; a child wins over the panel containing it.
func (t *Tree) HitTest(p Vec2) Widget {
	for i := len(t.roots) - 1; i >= 0; i-- {
		if w := t.roots[i].hitTest(p); w != nil {
			return w
		}
	}
	return nil
}

// layout places every bar. Runs at most once per Update.
func (t *Tree) layout() {
	for _, p := range t.roots {
		p.layoutRoot(t)
	}
	t.dirty = false
}

// Draw emits every bar's geometry into b, back to front.
func (t *Tree) Draw(b *Batch) {
	if t.phase != phaseUpdated {
		panic(errPhase("Draw called without a preceding Update"))
	}
	for i, p := range t.roots {
		if p.hidden {
			continue
		}
		b.PushLayer(LayerBars + i)
		p.draw(t, b)
		b.PopLayer()
	}
	t.drawTooltip(b)
	t.phase = phaseDrawn
}

// LoadFont uploads the font atlas through r. Frame calls it on first use.
func (t *Tree) LoadFont(r Renderer) error {
	tex, err := r.CreateTexture(t.atlas.Image)
	t.fontDone = true
	if err != nil {
		t.fontErr = fmt.Errorf("%w: font texture: %w", ErrRenderBackend, err)
		t.log.Warn("font texture upload failed, text is disabled", "err", err)
		return t.fontErr
	}
	t.fontTex, t.fontErr = tex, nil
	return nil
}

// Flush submits the drawn batch through r.
func (t *Tree) Flush(b *Batch, r Renderer) error {
	if t.phase != phaseDrawn {
		panic(errPhase("Flush called without a preceding Draw"))
	}
	t.phase = phaseIdle
	err := b.Flush(r)
	if err != nil {
		st := b.Stats()
		t.log.Warn("flush incomplete", "groups", st.Groups, "failed", st.Failed, "err", err)
	}
	return err
}

// Frame runs one full cycle: Update with in, Draw into b, Flush through r.
// All errors of the frame are returned together once it completed.
func (t *Tree) Frame(in *InputState, dt float32, b *Batch, r Renderer) error {
	var errs []error
	if !t.fontDone {
		errs = append(errs, t.LoadFont(r))
	}
	t.SetViewport(r.Viewport())
	t.Update(in, dt)
	t.Draw(b)
	errs = append(errs, t.Flush(b, r))
	return errors.Join(errs...)
}

// text draws a string at (x, y) in the tree's text scale.
func (t *Tree) text(b *Batch, x, y float32, s string, color uint32) {
	if t.fontErr != nil {
		return
	}
	b.AddText(t.atlas, t.fontTex, x, y, s, color, t.m.textScale)
}

// textIn draws s vertically centered in r, truncated to fit.
func (t *Tree) textIn(b *Batch, r Rect, s string, color uint32) {
	s = t.atlas.FitText(s, r.W, t.m.textScale)
	t.text(b, r.X, r.Y+(r.H-t.m.textH)/2, s, color)
}

// textWidth measures s in the tree's text scale.
func (t *Tree) textWidth(s string) float32 {
	return t.atlas.MeasureText(s, t.m.textScale).X
}

// drawTooltip shows the hovered widget's help text after the delay.
func (t *Tree) drawTooltip(b *Batch) {
	if t.hovered == nil || t.active != nil || t.cfg.TooltipDelay <= 0 {
		return
	}
	base := t.hovered.Node()
	if base.help == "" || base.hoverFor < t.cfg.TooltipDelay {
		return
	}
	size := t.atlas.MeasureText(base.help, t.m.textScale)
	pad := t.m.inputPad * 2
	x := t.pointer.X + 12*t.m.scale
	y := t.pointer.Y + 16*t.m.scale
	w, h := size.X+2*pad, size.Y+2*pad
	if t.viewport.X > 0 && x+w > t.viewport.X {
		x = maxf(0, t.viewport.X-w)
	}
	if t.viewport.Y > 0 && y+h > t.viewport.Y {
		y = maxf(0, t.pointer.Y-h-4*t.m.scale)
	}

	b.PushLayer(LayerForeground)
	b.AddRect(x, y, w, h, t.style.TooltipBgColor)
	b.AddRectOutline(x, y, w, h, t.style.PanelBorderColor, t.m.border)
	t.text(b, x+pad, y+pad, base.help, t.style.TextColor)
	b.PopLayer()
}
