package tweakbar

// Separator is a horizontal rule between rows. It takes no input.
type Separator struct {
	Base
}

// AddSeparator appends a horizontal rule.
func (p *Panel) AddSeparator() *Separator {
	s := &Separator{}
	p.add(s)
	return s
}

func (s *Separator) Kind() Kind { return KindSeparator }

func (s *Separator) layout(_ *Tree, frame, clip Rect) { s.place(frame, clip) }

func (s *Separator) hitTest(Vec2) Widget { return nil }

func (s *Separator) handle(*Tree, *Event) bool { return false }

func (s *Separator) draw(t *Tree, b *Batch) {
	f := s.frame
	y := f.Y + (f.H-t.m.border)/2
	b.AddRect(f.X, y, f.W, t.m.border, t.style.SeparatorColor)
}
