package tweakbar

// Label shows static text, or a read-only view of a bound variable.
type Label struct {
	Base
	bind Binding
}

// AddLabel appends a line of static text.
func (p *Panel) AddLabel(text string) *Label {
	l := &Label{Base: Base{label: text}}
	p.add(l)
	return l
}

// AddValue appends a label displaying the current value of any binding.
func (p *Panel) AddValue(label string, bind Binding) (*Label, error) {
	if err := bind.check("value "+label, BindBool, BindInt, BindFloat, BindColor, BindString); err != nil {
		p.rejected(err)
		return nil, err
	}
	l := &Label{Base: Base{label: label}, bind: bind}
	p.add(l)
	return l, nil
}

func (l *Label) Kind() Kind { return KindLabel }

func (l *Label) layout(_ *Tree, frame, clip Rect) { l.place(frame, clip) }

func (l *Label) hitTest(p Vec2) Widget { return l.hitSelf(l, p) }

func (l *Label) handle(_ *Tree, ev *Event) bool { return ev.Type == EventPress }

func (l *Label) draw(t *Tree, b *Batch) {
	if l.bind.Kind() == BindNone {
		t.drawLabel(b, &l.Base, l.frame)
		return
	}
	label, value := t.splitRow(l.frame)
	t.drawLabel(b, &l.Base, label)
	value.W -= t.m.inputPad
	if l.bind.Kind() == BindColor {
		sw := value.Inset(0, t.m.inputPad/2)
		sw.W = minf(sw.W, 4*sw.H)
		b.AddRect(sw.X, sw.Y, sw.W, sw.H, l.bind.Color().Packed())
		b.AddRectOutline(sw.X, sw.Y, sw.W, sw.H, t.style.InputBorderColor, t.m.border)
		return
	}
	t.textIn(b, value, l.bind.Format(), t.style.ValueTextColor)
}
