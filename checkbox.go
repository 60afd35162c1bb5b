package tweakbar

// CheckBox toggles a bound bool.
type CheckBox struct {
	Base
	bind Binding
	box  Rect
}

// AddCheckBox appends a checkbox editing a bool binding.
func (p *Panel) AddCheckBox(label string, bind Binding) (*CheckBox, error) {
	if err := bind.check("checkbox "+label, BindBool); err != nil {
		p.rejected(err)
		return nil, err
	}
	cb := &CheckBox{Base: Base{label: label}, bind: bind}
	p.add(cb)
	return cb, nil
}

func (cb *CheckBox) Kind() Kind { return KindCheckBox }

// Binding returns the bound variable.
func (cb *CheckBox) Binding() Binding { return cb.bind }

func (cb *CheckBox) layout(t *Tree, frame, clip Rect) {
	cb.place(frame, clip)
	_, value := t.splitRow(frame)
	size := frame.H - 2*t.m.inputPad
	cb.box = Rect{X: value.X + t.m.inputPad, Y: frame.Y + t.m.inputPad, W: size, H: size}
}

func (cb *CheckBox) hitTest(p Vec2) Widget { return cb.hitSelf(cb, p) }

func (cb *CheckBox) toggle(t *Tree) {
	if cb.bind.SetBool(!cb.bind.Bool()) {
		t.log.Debug("checkbox changed", "widget", cb.label, "value", cb.bind.Bool())
	}
}

func (cb *CheckBox) handle(t *Tree, ev *Event) bool {
	switch ev.Type {
	case EventPress:
		return true
	case EventClick:
		cb.toggle(t)
		return true
	case EventKey:
		if ev.Input.KeyPressed(KeySpace) || ev.Input.KeyPressed(KeyEnter) {
			cb.toggle(t)
			return true
		}
	}
	return false
}

func (cb *CheckBox) draw(t *Tree, b *Batch) {
	st := t.style
	label, _ := t.splitRow(cb.frame)
	t.drawLabel(b, &cb.Base, label)

	r := cb.box
	bg := st.InputBgColor
	if cb.state == StateHovered || cb.state == StatePressed {
		bg = st.InputFocusedBgColor
	}
	b.AddRect(r.X, r.Y, r.W, r.H, bg)
	b.AddRectOutline(r.X, r.Y, r.W, r.H, st.InputBorderColor, t.m.border)
	if cb.bind.Bool() {
		in := r.Inset(r.W/4, r.H/4)
		b.AddRect(in.X, in.Y, in.W, in.H, st.CheckMarkColor)
	}
	t.drawFocus(b, &cb.Base, r)
}
