package tweakbar

// Button runs an action when clicked.
type Button struct {
	Base
	action func()
}

// AddButton appends a button that calls action on click.
func (p *Panel) AddButton(label string, action func()) *Button {
	btn := &Button{Base: Base{label: label}, action: action}
	p.add(btn)
	return btn
}

func (btn *Button) Kind() Kind { return KindButton }

// SetAction replaces the click action.
func (btn *Button) SetAction(action func()) { btn.action = action }

func (btn *Button) layout(_ *Tree, frame, clip Rect) { btn.place(frame, clip) }

func (btn *Button) hitTest(p Vec2) Widget { return btn.hitSelf(btn, p) }

func (btn *Button) handle(t *Tree, ev *Event) bool {
	switch ev.Type {
	case EventPress:
		return true
	case EventClick:
		if btn.action != nil {
			btn.action()
		}
		return true
	}
	return false
}

func (btn *Button) draw(t *Tree, b *Batch) {
	st := t.style
	r := btn.frame.Inset(t.m.inputPad, 0)

	bg := st.ButtonColor
	switch {
	case !btn.interactive():
		bg = st.ButtonDisabledColor
	case btn.state == StatePressed:
		bg = st.ButtonActiveColor
	case btn.state == StateHovered:
		bg = st.ButtonHoveredColor
	}
	b.AddRect(r.X, r.Y, r.W, r.H, bg)

	label := t.atlas.FitText(btn.label, r.W-2*t.m.inputPad, t.m.textScale)
	tw := t.textWidth(label)
	t.text(b, r.X+(r.W-tw)/2, r.Y+(r.H-t.m.textH)/2, label, t.labelColor(&btn.Base))
}
