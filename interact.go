package tweakbar

// Update applies one frame of input: it advances key repeat timing by dt,
// relayouts if needed, resolves hover and pointer capture, runs the
// Idle/Hovered/Pressed/Dragging transitions, commits values and routes
// keyboard input to the focused widget.
func (t *Tree) Update(in *InputState, dt float32) {
	if t.phase == phaseDrawn {
		panic(errPhase("Update called between Draw and Flush"))
	}
	if t.closed {
		t.phase = phaseUpdated
		return
	}
	if in == nil {
		in = NewInputState()
	}
	t.dt = dt
	t.pointer = in.MousePos()
	in.UpdateKeyRepeat(dt)

	t.dropInactive()
	if t.dirty {
		t.layout()
	}

	if t.active != nil {
		t.updateCapture(in)
	}
	if t.active == nil {
		t.updateHover()
		if in.MouseClicked(MouseButtonLeft) {
			t.press()
		}
	}
	if in.MouseWheelY != 0 {
		t.scroll(in.MouseWheelY)
	}
	t.updateKeyboard(in)

	// A drag may have moved a bar or scrolled a panel.
	if t.dirty {
		t.layout()
	}
	t.phase = phaseUpdated
}

// dropInactive releases references to widgets that were hidden, disabled or
// removed since the last frame, returning them to Idle.
func (t *Tree) dropInactive() {
	if t.active != nil && !t.active.Node().interactive() {
		t.active.Node().state = StateIdle
		t.active = nil
	}
	if t.hovered != nil && !t.hovered.Node().interactive() {
		t.hovered.Node().state = StateIdle
		t.hovered = nil
	}
	if t.focused != nil && !t.focused.Node().interactive() {
		t.SetFocus(nil)
	}
}

// updateHover moves the Hovered state to the widget under the pointer.
func (t *Tree) updateHover() {
	hit := t.HitTest(t.pointer)
	if hit != nil && !hit.Node().interactive() {
		hit = nil
	}
	if hit != t.hovered {
		if t.hovered != nil {
			b := t.hovered.Node()
			b.state = StateIdle
			b.hoverFor = 0
		}
		t.hovered = hit
		if hit != nil {
			hit.Node().state = StateHovered
		}
	}
	if t.hovered != nil {
		t.hovered.Node().hoverFor += t.dt
	}
}

// press starts pointer capture on the hovered widget.
func (t *Tree) press() {
	w := t.hovered
	if w == nil {
		t.SetFocus(nil)
		return
	}
	if root := rootOf(w); root != nil {
		t.BringToFront(root)
	}
	if focusable(w) {
		t.SetFocus(w)
	} else {
		t.SetFocus(nil)
	}
	b := w.Node()
	b.state = StatePressed
	b.hoverFor = 0
	t.active = w
	t.pressPos = t.pointer
	w.handle(t, &Event{Type: EventPress, Pos: t.pointer, Press: t.pressPos})
	t.log.Debug("press", "widget", b.label, "kind", w.Kind())
}

// updateCapture advances the captured widget through Pressed and Dragging
// until the button is released.
func (t *Tree) updateCapture(in *InputState) {
	w := t.active
	b := w.Node()
	ev := Event{Pos: t.pointer, Press: t.pressPos}

	if b.state == StatePressed && draggable(w) && t.pointer.Sub(t.pressPos).Len() > t.m.deadzone {
		b.state = StateDragging
		ev.Type = EventDragStart
		w.handle(t, &ev)
	} else if b.state == StateDragging {
		ev.Type = EventDrag
		w.handle(t, &ev)
	}

	if in.MouseDown(MouseButtonLeft) {
		return
	}

	// Released: a press that never became a drag is a click when it ends
	// inside the widget.
	switch b.state {
	case StateDragging:
		ev.Type = EventDragEnd
		w.handle(t, &ev)
	case StatePressed:
		if b.rect.Contains(t.pointer) {
			ev.Type = EventClick
			w.handle(t, &ev)
			t.log.Debug("click", "widget", b.label, "kind", w.Kind())
		}
	}
	b.state = StateIdle
	b.hoverFor = 0
	t.active = nil
	t.hovered = nil
}

// scroll offers the wheel to the hovered widget, then to its panels.
func (t *Tree) scroll(wheel float32) {
	if t.active != nil {
		return
	}
	ev := Event{Type: EventScroll, Pos: t.pointer, Wheel: wheel}
	var w Widget = t.hovered
	if w == nil {
		return
	}
	for w != nil {
		if w.Node().interactive() && w.handle(t, &ev) {
			return
		}
		p := w.Node().parent
		if p == nil {
			return
		}
		w = p
	}
}

// updateKeyboard handles focus cycling and forwards keys to the focus.
func (t *Tree) updateKeyboard(in *InputState) {
	if in.KeyPressed(KeyTab) {
		t.FocusNext(in.ModShift)
		return
	}
	if t.focused == nil {
		return
	}
	if len(in.InputChars) == 0 && !anyKeyActivity(in) {
		return
	}
	if !t.focused.handle(t, &Event{Type: EventKey, Pos: t.pointer, Input: in}) && in.KeyPressed(KeyEscape) {
		t.SetFocus(nil)
	}
}

func anyKeyActivity(in *InputState) bool {
	for k := KeyNone + 1; k < KeyCount; k++ {
		if in.KeyRepeated(k) {
			return true
		}
	}
	return false
}

// SetFocus moves keyboard focus to w, or clears it when w is nil or cannot
// take focus. The previous holder is notified first so it can commit.
func (t *Tree) SetFocus(w Widget) {
	if w != nil && (!focusable(w) || w.Node().tree != t) {
		w = nil
	}
	if w == t.focused {
		return
	}
	if old := t.focused; old != nil {
		old.Node().focused = false
		t.focused = nil
		old.handle(t, &Event{Type: EventBlur, Pos: t.pointer})
	}
	if w != nil {
		w.Node().focused = true
		t.focused = w
		w.handle(t, &Event{Type: EventFocus, Pos: t.pointer})
	}
}

// FocusNext moves focus to the next (or previous) keyboard widget in tree
// order, wrapping around.
func (t *Tree) FocusNext(reverse bool) {
	var order []Widget
	for _, p := range t.roots {
		p.walk(func(w Widget) {
			if focusable(w) && w.Node().interactive() {
				order = append(order, w)
			}
		})
	}
	if len(order) == 0 {
		t.SetFocus(nil)
		return
	}
	cur := -1
	for i, w := range order {
		if w == t.focused {
			cur = i
			break
		}
	}
	var next int
	switch {
	case cur < 0 && reverse:
		next = len(order) - 1
	case cur < 0:
		next = 0
	case reverse:
		next = (cur - 1 + len(order)) % len(order)
	default:
		next = (cur + 1) % len(order)
	}
	t.SetFocus(order[next])
}

// rootOf returns the bar containing w.
func rootOf(w Widget) *Panel {
	p, _ := w.(*Panel)
	for b := w.Node(); b.parent != nil; b = b.parent.Node() {
		p = b.parent
	}
	return p
}
