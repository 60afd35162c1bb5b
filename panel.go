package tweakbar

import "slices"

// Panel is a container. Top-level panels (bars) are placed by the host and
// can be dragged by their title bar; nested panels form collapsible groups.
// Children are stacked top to bottom in the order they were added.
type Panel struct {
	Base
	children []Widget

	pos, size   Vec2 // Bars only, in pixels
	collapsed   bool
	collapsible bool
	scroll      float32
	contentH    float32 // Height of all children plus gaps
	inner       Rect    // Unclipped content area
	content     Rect    // inner clipped to the panel's visible rect
	header      Rect
	toggle      Rect

	grabbed    bool
	grabOffset Vec2
}

func newPanel(title string) *Panel {
	return &Panel{Base: Base{label: title}, collapsible: true}
}

func (p *Panel) Kind() Kind { return KindPanel }

// Children returns the child widgets in declaration order.
func (p *Panel) Children() []Widget { return slices.Clone(p.children) }

// Collapsed reports whether the panel only shows its header.
func (p *Panel) Collapsed() bool { return p.collapsed }

// SetCollapsed collapses or expands the panel.
func (p *Panel) SetCollapsed(c bool) {
	if c && !p.collapsible {
		return
	}
	p.collapsed = c
	p.invalidate()
}

// SetCollapsible controls whether the header shows a collapse toggle.
func (p *Panel) SetCollapsible(c bool) {
	p.collapsible = c
	if !c {
		p.collapsed = false
	}
	p.invalidate()
}

// Position returns a bar's top-left corner in pixels.
func (p *Panel) Position() Vec2 { return p.pos }

// SetPosition moves a bar. It is kept inside the viewport.
func (p *Panel) SetPosition(x, y float32) {
	p.pos = Vec2{X: x, Y: y}
	p.invalidate()
}

// Size returns a bar's requested size in pixels; zero height means fit.
func (p *Panel) Size() Vec2 { return p.size }

// SetSize resizes a bar.
func (p *Panel) SetSize(w, h float32) {
	p.size = Vec2{X: w, Y: h}
	p.invalidate()
}

// ContentRect returns the visible area children are laid out in.
func (p *Panel) ContentRect() Rect { return p.content }

// Scroll returns the vertical scroll offset in pixels.
func (p *Panel) Scroll() float32 { return p.scroll }

// SetScroll sets the vertical scroll offset; layout clamps it.
func (p *Panel) SetScroll(y float32) {
	p.scroll = y
	p.invalidate()
}

func (p *Panel) add(w Widget) {
	p.children = append(p.children, w)
	if p.tree != nil {
		p.tree.adopt(w, p)
		p.tree.Invalidate()
	} else {
		w.Node().parent = p
	}
}

// Remove detaches a direct child.
func (p *Panel) Remove(w Widget) {
	i := slices.Index(p.children, w)
	if i < 0 {
		return
	}
	p.children = slices.Delete(p.children, i, i+1)
	if p.tree != nil {
		t := p.tree
		t.forget(w)
		t.Invalidate()
	}
	w.Node().parent = nil
}

// walk visits the panel and its descendants in declaration order.
func (p *Panel) walk(fn func(Widget)) {
	fn(p)
	for _, c := range p.children {
		if cp, ok := c.(*Panel); ok {
			cp.walk(fn)
		} else {
			fn(c)
		}
	}
}

func (p *Panel) isBar() bool { return p.parent == nil }

func (p *Panel) headerHeight(t *Tree) float32 {
	if p.isBar() {
		return t.m.titleH
	}
	if p.label == "" {
		return 0
	}
	return t.m.rowH
}

// naturalHeight is the height that shows every child without scrolling.
func (p *Panel) naturalHeight(t *Tree) float32 {
	h := p.headerHeight(t)
	if p.collapsed {
		return h
	}
	n := 0
	for _, c := range p.children {
		if c.Node().hidden {
			continue
		}
		h += childHeight(t, c)
		n++
	}
	if n > 1 {
		h += t.m.spacing * float32(n-1)
	}
	if p.isBar() {
		h += 2 * t.m.pad
	} else if n > 0 {
		h += t.m.spacing
	}
	return h
}

// childHeight resolves a fixed or natural extent to pixels.
func childHeight(t *Tree, w Widget) float32 {
	if e := w.Node().extent; e.Fixed > 0 {
		return e.Fixed * t.m.scale
	}
	switch w := w.(type) {
	case *Panel:
		return w.naturalHeight(t)
	case *ColorPicker:
		return w.naturalHeight(t)
	case *Separator:
		return 2*t.m.spacing + t.m.border
	default:
		return t.m.rowH
	}
}

// layoutRoot places a bar from its position and size, inside the viewport.
func (p *Panel) layoutRoot(t *Tree) {
	if p.hidden {
		p.layout(t, Rect{}, Rect{})
		return
	}
	w, h := p.size.X, p.size.Y
	if h <= 0 {
		h = p.naturalHeight(t)
	}
	if p.collapsed {
		h = p.headerHeight(t)
	}
	x, y := p.pos.X, p.pos.Y
	if vp := t.viewport; vp.X > 0 && vp.Y > 0 {
		w, h = minf(w, vp.X), minf(h, vp.Y)
		x = clampf(x, 0, vp.X-w)
		y = clampf(y, 0, vp.Y-h)
	}
	p.pos = Vec2{X: x, Y: y}
	frame := Rect{X: x, Y: y, W: w, H: h}
	p.layout(t, frame, frame)
}

func (p *Panel) layout(t *Tree, frame, clip Rect) {
	p.place(frame, clip)
	if p.hidden {
		p.rect = Rect{X: frame.X, Y: frame.Y}
	}

	hh := minf(p.headerHeight(t), frame.H)
	p.header = Rect{X: frame.X, Y: frame.Y, W: frame.W, H: hh}
	p.toggle = Rect{}
	if p.collapsible && hh > 0 {
		p.toggle = Rect{X: frame.X + frame.W - hh, Y: frame.Y, W: hh, H: hh}
	}

	if p.isBar() {
		p.inner = Rect{X: frame.X, Y: frame.Y + hh, W: frame.W, H: frame.H - hh}.Inset(t.m.pad, t.m.pad)
	} else {
		indent := t.m.pad
		if hh == 0 {
			indent = 0
		}
		p.inner = Rect{X: frame.X + indent, Y: frame.Y + hh, W: maxf(frame.W-indent, 0), H: maxf(frame.H-hh, 0)}
	}
	if p.collapsed || p.hidden {
		p.inner.H = 0
	}

	var fixed, weights float32
	n := 0
	for _, c := range p.children {
		b := c.Node()
		if b.hidden {
			continue
		}
		n++
		if b.extent.Weight > 0 && b.extent.Fixed <= 0 {
			weights += b.extent.Weight
		} else {
			fixed += childHeight(t, c)
		}
	}
	var gaps float32
	if n > 1 {
		gaps = t.m.spacing * float32(n-1)
	}
	remain := maxf(0, p.inner.H-fixed-gaps)
	p.contentH = fixed + gaps
	if weights > 0 {
		p.contentH += remain
	}

	if p.contentH > p.inner.H+0.5 && p.inner.H > 0 {
		p.inner.W = maxf(p.inner.W-t.m.scrollW, 0)
	}
	p.scroll = clampf(p.scroll, 0, maxf(0, p.contentH-p.inner.H))
	p.content = p.rect.Intersect(p.inner)

	y := p.inner.Y - p.scroll
	for _, c := range p.children {
		b := c.Node()
		if b.hidden || p.collapsed || p.hidden {
			c.layout(t, Rect{X: p.inner.X, Y: y}, Rect{})
			continue
		}
		var h float32
		if b.extent.Weight > 0 && b.extent.Fixed <= 0 {
			h = remain * b.extent.Weight / weights
		} else {
			h = childHeight(t, c)
		}
		c.layout(t, Rect{X: p.inner.X, Y: y, W: p.inner.W, H: h}, p.content)
		y += h + t.m.spacing
	}
}

func (p *Panel) hitTest(pt Vec2) Widget {
	if p.hidden || p.rect.Empty() || !p.rect.Contains(pt) {
		return nil
	}
	if !p.collapsed {
		for i := len(p.children) - 1; i >= 0; i-- {
			if w := p.children[i].hitTest(pt); w != nil {
				return w
			}
		}
	}
	return p
}

func (p *Panel) handle(t *Tree, ev *Event) bool {
	switch ev.Type {
	case EventPress:
		p.grabbed = p.isBar() && p.header.Contains(ev.Pos) && !p.toggle.Contains(ev.Pos)
		p.grabOffset = ev.Pos.Sub(p.pos)
		return true
	case EventDragStart, EventDrag:
		if !p.grabbed {
			return false
		}
		np := ev.Pos.Sub(p.grabOffset)
		p.SetPosition(np.X, np.Y)
		return true
	case EventDragEnd:
		p.grabbed = false
		return true
	case EventClick:
		p.grabbed = false
		onToggle := p.toggle.Contains(ev.Pos) || (!p.isBar() && p.header.Contains(ev.Pos))
		if p.collapsible && onToggle {
			p.SetCollapsed(!p.collapsed)
			t.log.Debug("panel toggled", "panel", p.label, "collapsed", p.collapsed)
			return true
		}
		return false
	case EventScroll:
		maxScroll := p.contentH - p.inner.H
		if p.collapsed || maxScroll <= 0 {
			return false
		}
		p.SetScroll(clampf(p.scroll-ev.Wheel*t.m.rowH*t.cfg.ScrollSpeed, 0, maxScroll))
		return true
	}
	return false
}

func (p *Panel) draw(t *Tree, b *Batch) {
	if p.rect.Empty() {
		return
	}
	st := t.style
	f := p.frame

	if p.isBar() {
		b.AddRect(f.X, f.Y, f.W, f.H, st.PanelColor)
		b.AddRectOutline(f.X, f.Y, f.W, f.H, st.PanelBorderColor, t.m.border)
	}
	if p.header.H > 0 {
		hdr := p.header
		b.AddRect(hdr.X, hdr.Y, hdr.W, hdr.H, st.PanelHeaderBgColor)
		pad := t.m.inputPad
		textR := Rect{X: hdr.X + pad, Y: hdr.Y, W: hdr.W - 2*pad - p.toggle.W, H: hdr.H}
		t.textIn(b, textR, p.label, st.PanelHeaderTextColor)
		if !p.toggle.Empty() {
			sign := "-"
			if p.collapsed {
				sign = "+"
			}
			tw := t.textWidth(sign)
			t.text(b, p.toggle.X+(p.toggle.W-tw)/2, p.toggle.Y+(p.toggle.H-t.m.textH)/2, sign, st.PanelHeaderTextColor)
		}
	}
	if p.collapsed || p.content.Empty() {
		return
	}

	b.PushClip(p.content)
	for _, c := range p.children {
		if c.Node().hidden || c.Node().rect.Empty() {
			continue
		}
		c.draw(t, b)
	}
	b.PopClip()

	if p.contentH > p.inner.H+0.5 {
		trackX := p.inner.X + p.inner.W + (t.m.scrollW-t.m.scrollW/2)/2
		grabH := maxf(p.inner.H*p.inner.H/p.contentH, t.m.rowH/2)
		grabY := p.inner.Y + (p.inner.H-grabH)*p.scroll/(p.contentH-p.inner.H)
		b.PushClip(p.rect)
		b.AddRect(trackX, grabY, t.m.scrollW/2, grabH, st.ScrollbarGrabColor)
		b.PopClip()
	}
}

// rejected logs a widget that failed binding validation.
func (p *Panel) rejected(err error) {
	l := defaultLogger
	if p.tree != nil {
		l = p.tree.log
	}
	l.Debug("widget rejected", "panel", p.label, "err", err)
}

// AddGroup appends a collapsible nested panel.
func (p *Panel) AddGroup(title string) *Panel {
	g := newPanel(title)
	p.add(g)
	return g
}
