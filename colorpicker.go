package tweakbar

// ColorMode selects the channels a ColorPicker edits.
type ColorMode uint8

const (
	ColorModeRGB ColorMode = iota
	ColorModeHSV
)

func (m ColorMode) String() string {
	if m == ColorModeHSV {
		return "HSV"
	}
	return "RGB"
}

var channelNames = [2][4]string{
	{"R", "G", "B", "A"},
	{"H", "S", "V", "A"},
}

// ColorPicker edits a bound Color through a swatch and four channel bars.
// The header toggles between RGB and HSV channels.
type ColorPicker struct {
	Base
	bind   Binding
	mode   ColorMode
	hsv    [3]float32 // Last HSV edit, kept so hue survives zero saturation
	header Rect
	swatch Rect
	toggle Rect
	bars   [4]Rect
	active int // Channel being dragged, -1 for none
}

// AddColorPicker appends a color editor for a Color binding.
func (p *Panel) AddColorPicker(label string, bind Binding) (*ColorPicker, error) {
	if err := bind.check("color picker "+label, BindColor); err != nil {
		p.rejected(err)
		return nil, err
	}
	cp := &ColorPicker{Base: Base{label: label}, bind: bind, active: -1}
	p.add(cp)
	return cp, nil
}

func (cp *ColorPicker) Kind() Kind { return KindColorPicker }

// Binding returns the bound variable.
func (cp *ColorPicker) Binding() Binding { return cp.bind }

// Mode returns the channel set shown.
func (cp *ColorPicker) Mode() ColorMode { return cp.mode }

// SetMode switches between RGB and HSV channels.
func (cp *ColorPicker) SetMode(m ColorMode) { cp.mode = m }

// Bar returns the rectangle of channel i (0 to 3).
func (cp *ColorPicker) Bar(i int) Rect { return cp.bars[i] }

func (cp *ColorPicker) naturalHeight(t *Tree) float32 {
	return 5*t.m.rowH + 4*t.m.spacing
}

func (cp *ColorPicker) layout(t *Tree, frame, clip Rect) {
	cp.place(frame, clip)
	rowH := t.m.rowH
	if n := frame.H - 4*t.m.spacing; n < 5*rowH {
		rowH = maxf(n/5, 0)
	}
	cp.header = Rect{X: frame.X, Y: frame.Y, W: frame.W, H: rowH}
	_, value := t.splitRow(cp.header)
	pad := t.m.inputPad
	tw := t.textWidth("HSV") + 2*pad
	cp.toggle = Rect{X: value.X + value.W - tw - pad, Y: value.Y + pad/2, W: tw, H: rowH - pad}
	cp.swatch = Rect{X: value.X, Y: value.Y + pad/2, W: maxf(cp.toggle.X-value.X-pad, 0), H: rowH - pad}

	y := frame.Y + rowH + t.m.spacing
	for i := range cp.bars {
		row := Rect{X: frame.X, Y: y, W: frame.W, H: rowH}
		_, v := t.splitRow(row)
		cp.bars[i] = Rect{X: v.X, Y: v.Y + pad/2, W: v.W - pad, H: rowH - pad}
		y += rowH + t.m.spacing
	}
}

func (cp *ColorPicker) hitTest(p Vec2) Widget { return cp.hitSelf(cp, p) }

// channels returns the four channel values for the current mode.
func (cp *ColorPicker) channels() [4]float32 {
	c := cp.bind.Color()
	if cp.mode == ColorModeRGB {
		return [4]float32{c.R, c.G, c.B, c.A}
	}
	if ColorFromHSV(cp.hsv[0], cp.hsv[1], cp.hsv[2], c.A).Packed() != c.Packed() {
		cp.hsv[0], cp.hsv[1], cp.hsv[2] = c.HSV()
	}
	return [4]float32{cp.hsv[0], cp.hsv[1], cp.hsv[2], c.A}
}

// setChannel commits channel i of the current mode.
func (cp *ColorPicker) setChannel(t *Tree, i int, v float32) {
	v = clampf(v, 0, 1)
	ch := cp.channels()
	ch[i] = v
	var c Color
	if cp.mode == ColorModeRGB {
		c = Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
	} else {
		cp.hsv = [3]float32{ch[0], ch[1], ch[2]}
		c = ColorFromHSV(ch[0], ch[1], ch[2], ch[3])
	}
	if cp.bind.SetColor(c) {
		t.log.Debug("color changed", "widget", cp.label, "channel", channelNames[cp.mode][i], "value", v)
	}
}

func (cp *ColorPicker) barAt(p Vec2) int {
	for i, r := range cp.bars {
		if (Rect{X: r.X, Y: r.Y - r.H/4, W: r.W, H: r.H * 1.5}).Contains(p) {
			return i
		}
	}
	return -1
}

func (cp *ColorPicker) fromX(bar int, x float32) float32 {
	r := cp.bars[bar]
	return clampf((x-r.X)/r.W, 0, 1)
}

func (cp *ColorPicker) handle(t *Tree, ev *Event) bool {
	if cp.bind.IsReadOnly() {
		return ev.Type == EventPress
	}
	switch ev.Type {
	case EventPress:
		cp.active = cp.barAt(ev.Pos)
		return true
	case EventDragStart, EventDrag:
		if cp.active >= 0 {
			cp.setChannel(t, cp.active, cp.fromX(cp.active, ev.Pos.X))
		}
		return true
	case EventDragEnd:
		cp.active = -1
		return true
	case EventClick:
		defer func() { cp.active = -1 }()
		if cp.toggle.Contains(ev.Pos) {
			cp.mode = 1 - cp.mode
			return true
		}
		if i := cp.barAt(ev.Pos); i >= 0 {
			cp.setChannel(t, i, cp.fromX(i, ev.Pos.X))
		}
		return true
	case EventScroll:
		i := cp.barAt(ev.Pos)
		if i < 0 {
			return false
		}
		cp.setChannel(t, i, cp.channels()[i]+ev.Wheel/100)
		return true
	}
	return false
}

func (cp *ColorPicker) draw(t *Tree, b *Batch) {
	st := t.style
	label, _ := t.splitRow(cp.header)
	t.drawLabel(b, &cp.Base, label)

	c := cp.bind.Color()
	sw := cp.swatch
	b.AddRect(sw.X, sw.Y, sw.W, sw.H, ColorBlack)
	b.AddRect(sw.X, sw.Y, sw.W, sw.H, c.Packed())
	b.AddRectOutline(sw.X, sw.Y, sw.W, sw.H, st.InputBorderColor, t.m.border)

	tg := cp.toggle
	b.AddRect(tg.X, tg.Y, tg.W, tg.H, st.ButtonColor)
	mode := cp.mode.String()
	t.text(b, tg.X+(tg.W-t.textWidth(mode))/2, tg.Y+(tg.H-t.m.textH)/2, mode, st.TextColor)

	ch := cp.channels()
	names := channelNames[cp.mode]
	for i, r := range cp.bars {
		rowLabel := Rect{X: label.X, Y: r.Y, W: label.W - t.m.inputPad, H: r.H}
		nw := t.textWidth(names[i])
		t.text(b, rowLabel.X+rowLabel.W-nw, r.Y+(r.H-t.m.textH)/2, names[i], t.labelColor(&cp.Base))

		b.AddRect(r.X, r.Y, r.W, r.H, st.SliderTrackColor)
		cp.drawGradient(b, i, r, ch)
		mx := r.X + r.W*ch[i]
		b.AddRect(mx-t.m.border, r.Y, 2*t.m.border, r.H, ColorWhite)
		b.AddRectOutline(r.X, r.Y, r.W, r.H, st.InputBorderColor, t.m.border)
	}
}

// drawGradient fills bar i with the colors its channel sweeps through.
func (cp *ColorPicker) drawGradient(b *Batch, i int, r Rect, ch [4]float32) {
	at := func(v float32) uint32 {
		x := ch
		x[i] = v
		if i != 3 {
			x[3] = 1
		}
		if cp.mode == ColorModeRGB {
			return Color{R: x[0], G: x[1], B: x[2], A: x[3]}.Packed()
		}
		return ColorFromHSV(x[0], x[1], x[2], x[3]).Packed()
	}
	if cp.mode == ColorModeHSV && i == 0 {
		// Hue wraps through six primaries.
		w := r.W / 6
		for k := range 6 {
			c0, c1 := at(float32(k)/6), at(float32(k+1)/6-1e-4)
			b.AddGradientRect(r.X+float32(k)*w, r.Y, w, r.H, c0, c1, c1, c0)
		}
		return
	}
	c0, c1 := at(0), at(1)
	b.AddGradientRect(r.X, r.Y, r.W, r.H, c0, c1, c1, c0)
}
