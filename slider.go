package tweakbar

import "github.com/chewxy/math32"

// Slider edits a bound int or float32 by dragging along its track.
//
// With a range, a press on the track maps the pointer linearly onto
// [min, max]. Without one, or when the press lands on the label, dragging
// changes the value relative to where the drag started by one increment
// per pixel.
type Slider struct {
	Base
	bind    Binding
	track   Rect
	start   float64 // Value at press time
	onTrack bool    // Press landed on the track
}

// AddSlider appends a slider editing an int or float binding.
func (p *Panel) AddSlider(label string, bind Binding) (*Slider, error) {
	if err := bind.check("slider "+label, BindInt, BindFloat); err != nil {
		p.rejected(err)
		return nil, err
	}
	s := &Slider{Base: Base{label: label}, bind: bind}
	p.add(s)
	return s, nil
}

func (s *Slider) Kind() Kind { return KindSlider }

// Binding returns the bound variable.
func (s *Slider) Binding() Binding { return s.bind }

// Track returns the rectangle the value maps onto.
func (s *Slider) Track() Rect { return s.track }

func (s *Slider) layout(t *Tree, frame, clip Rect) {
	s.place(frame, clip)
	_, value := t.splitRow(frame)
	s.track = Rect{X: value.X, Y: frame.Y + t.m.inputPad/2, W: value.W - t.m.inputPad, H: frame.H - t.m.inputPad}
}

func (s *Slider) hitTest(p Vec2) Widget { return s.hitSelf(s, p) }

// valueAt maps a pointer x onto the bound range.
func (s *Slider) valueAt(x float32) float64 {
	lo, hi, _ := s.bind.Range()
	f := float64(clampf((x-s.track.X)/s.track.W, 0, 1))
	return lo + f*(hi-lo)
}

// increment is the change applied by one key press or wheel notch.
func (s *Slider) increment() float64 {
	if st := s.bind.Step(); st > 0 {
		return st
	}
	if s.bind.Kind() == BindInt {
		return 1
	}
	if lo, hi, ok := s.bind.Range(); ok && hi > lo {
		return (hi - lo) / 100
	}
	return 0.1
}

func (s *Slider) commit(t *Tree, v float64) bool {
	if !s.bind.SetNumber(v) {
		return false
	}
	t.log.Debug("slider changed", "widget", s.label, "value", s.bind.Number())
	return true
}

// absolute reports whether the pointer position maps directly to a value.
func (s *Slider) absolute() bool {
	_, _, ok := s.bind.Range()
	return ok && s.onTrack
}

func (s *Slider) follow(t *Tree, ev *Event) {
	if s.absolute() {
		s.commit(t, s.valueAt(ev.Pos.X))
		return
	}
	s.commit(t, s.start+float64(ev.Pos.X-ev.Press.X)*s.increment())
}

func (s *Slider) handle(t *Tree, ev *Event) bool {
	if s.bind.IsReadOnly() {
		return ev.Type == EventPress
	}
	switch ev.Type {
	case EventPress:
		s.start = s.bind.Number()
		s.onTrack = s.track.Contains(ev.Pos)
		return true
	case EventDragStart, EventDrag:
		s.follow(t, ev)
		return true
	case EventDragEnd:
		return true
	case EventClick:
		if s.absolute() && s.track.Contains(ev.Pos) {
			s.commit(t, s.valueAt(ev.Pos.X))
		}
		return true
	case EventScroll:
		s.commit(t, s.bind.Number()+float64(ev.Wheel)*s.increment())
		return true
	case EventKey:
		return s.key(t, ev.Input)
	}
	return false
}

func (s *Slider) key(t *Tree, in *InputState) bool {
	lo, hi, ranged := s.bind.Range()
	v := s.bind.Number()
	switch {
	case in.KeyRepeated(KeyLeft) || in.KeyRepeated(KeyDown):
		s.commit(t, v-s.increment())
	case in.KeyRepeated(KeyRight) || in.KeyRepeated(KeyUp):
		s.commit(t, v+s.increment())
	case ranged && in.KeyPressed(KeyHome):
		s.commit(t, lo)
	case ranged && in.KeyPressed(KeyEnd):
		s.commit(t, hi)
	default:
		return false
	}
	return true
}

func (s *Slider) draw(t *Tree, b *Batch) {
	st := t.style
	label, _ := t.splitRow(s.frame)
	t.drawLabel(b, &s.Base, label)

	r := s.track
	b.AddRect(r.X, r.Y, r.W, r.H, st.SliderTrackColor)

	if _, _, ok := s.bind.Range(); ok {
		frac := s.bind.Fraction()
		b.AddRect(r.X, r.Y, r.W*frac, r.H, st.SliderFillColor)

		grab := st.SliderGrabColor
		switch s.state {
		case StateDragging, StatePressed:
			grab = st.SliderGrabActive
		case StateHovered:
			grab = st.SliderGrabHovered
		}
		gw := math32.Max(4*t.m.scale, 1)
		gx := clampf(r.X+r.W*frac-gw/2, r.X, r.X+r.W-gw)
		b.AddRect(gx, r.Y, gw, r.H, grab)
	}

	text := s.bind.Format()
	tw := t.textWidth(text)
	color := st.ValueTextColor
	if !s.interactive() {
		color = st.TextDisabledColor
	}
	t.text(b, r.X+(r.W-tw)/2, r.Y+(r.H-t.m.textH)/2, text, color)
	t.drawFocus(b, &s.Base, r)
}
