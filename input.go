package tweakbar

// MouseButton identifies a pointer button. Only MouseButtonLeft drives
// widgets; the others are tracked for hosts that share the InputState.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key is one of the keys the bar reacts to: focus cycling, slider stepping,
// text editing and the Ctrl+C/X/V clipboard shortcuts.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyC
	KeyV
	KeyX
	KeyCount
)

// Held arrows and Backspace repeat after KeyRepeatDelay seconds, then every
// KeyRepeatInterval seconds.
const (
	KeyRepeatDelay    float32 = 0.4
	KeyRepeatInterval float32 = 0.03
)

// InputState is the per-frame input snapshot a Tree consumes.
//
// The host records pointer, button, wheel, key and rune events into it,
// passes it to Tree.Update (or Tree.Frame), then calls Reset. Button and key
// setters turn level changes into press and release edges, so hosts may
// report the full state every frame or only the transitions.
type InputState struct {
	MouseX, MouseY float32 // Pointer in framebuffer pixels

	buttons [MouseButtonCount]edges

	// Wheel notches this frame, as reported by the window system.
	MouseWheelX float32
	MouseWheelY float32

	keys [KeyCount]edges
	hold [KeyCount]struct{ now, prev float32 } // Seconds held, this and last frame

	InputChars []rune // Runes typed this frame, in order

	ModCtrl  bool
	ModShift bool
	ModAlt   bool
	ModSuper bool
}

// edges is the level and this frame's transitions of a button or key.
type edges struct {
	down, pressed, released bool
}

func (e *edges) set(down bool) (changed bool) {
	if e.down == down {
		return false
	}
	e.down = down
	if down {
		e.pressed = true
	} else {
		e.released = true
	}
	return true
}

func validButton(b MouseButton) bool { return b >= 0 && b < MouseButtonCount }

func validKey(k Key) bool { return k > KeyNone && k < KeyCount }

// NewInputState returns an empty snapshot.
func NewInputState() *InputState {
	return &InputState{InputChars: make([]rune, 0, 16)}
}

// Reset ends the frame: edges, wheel and typed runes are cleared while held
// buttons and keys stay down.
func (s *InputState) Reset() {
	for i := range s.buttons {
		s.buttons[i].pressed, s.buttons[i].released = false, false
	}
	for i := range s.keys {
		s.keys[i].pressed, s.keys[i].released = false, false
	}
	s.InputChars = s.InputChars[:0]
	s.MouseWheelX, s.MouseWheelY = 0, 0
}

// SetMousePos moves the pointer.
func (s *InputState) SetMousePos(x, y float32) {
	s.MouseX, s.MouseY = x, y
}

// MousePos returns the pointer position.
func (s *InputState) MousePos() Vec2 {
	return Vec2{X: s.MouseX, Y: s.MouseY}
}

// SetMouseButton records the button level. Out-of-range buttons are ignored.
func (s *InputState) SetMouseButton(button MouseButton, down bool) {
	if validButton(button) {
		s.buttons[button].set(down)
	}
}

// SetKey records the key level and restarts its repeat timer on a change.
// Keys outside the bar's set are ignored.
func (s *InputState) SetKey(key Key, down bool) {
	if validKey(key) && s.keys[key].set(down) {
		s.hold[key].now, s.hold[key].prev = 0, 0
	}
}

// UpdateKeyRepeat advances the hold timers of held keys by dt seconds.
// Tree.Update calls it once per frame.
func (s *InputState) UpdateKeyRepeat(dt float32) {
	for k := range s.keys {
		h := &s.hold[k]
		h.prev = h.now
		if s.keys[k].down {
			h.now += dt
		}
	}
}

// SetMouseWheel sets this frame's wheel notches.
func (s *InputState) SetMouseWheel(x, y float32) {
	s.MouseWheelX, s.MouseWheelY = x, y
}

// AddInputChar queues a typed rune for the focused text field.
func (s *InputState) AddInputChar(ch rune) {
	s.InputChars = append(s.InputChars, ch)
}

// MouseDown reports whether the button is held.
func (s *InputState) MouseDown(button MouseButton) bool {
	return validButton(button) && s.buttons[button].down
}

// MouseClicked reports whether the button went down this frame.
func (s *InputState) MouseClicked(button MouseButton) bool {
	return validButton(button) && s.buttons[button].pressed
}

// MouseReleased reports whether the button went up this frame.
func (s *InputState) MouseReleased(button MouseButton) bool {
	return validButton(button) && s.buttons[button].released
}

// KeyDown reports whether the key is held.
func (s *InputState) KeyDown(key Key) bool {
	return validKey(key) && s.keys[key].down
}

// KeyPressed reports whether the key went down this frame.
func (s *InputState) KeyPressed(key Key) bool {
	return validKey(key) && s.keys[key].pressed
}

// KeyRepeated reports a press edge, or a repeat tick of a held key: the
// first once KeyRepeatDelay has passed, then one per KeyRepeatInterval.
func (s *InputState) KeyRepeated(key Key) bool {
	if !validKey(key) {
		return false
	}
	if s.keys[key].pressed {
		return true
	}
	h := s.hold[key]
	if !s.keys[key].down || h.now < KeyRepeatDelay {
		return false
	}
	if h.prev < KeyRepeatDelay {
		return true
	}
	ticks := func(t float32) int { return int((t - KeyRepeatDelay) / KeyRepeatInterval) }
	return ticks(h.now) > ticks(h.prev)
}

var keyNames = [KeyCount]string{
	KeyNone:      "--",
	KeyTab:       "Tab",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyDelete:    "Del",
	KeyBackspace: "Backspace",
	KeySpace:     "Space",
	KeyEnter:     "Enter",
	KeyEscape:    "Esc",
	KeyC:         "C",
	KeyV:         "V",
	KeyX:         "X",
}

// KeyName returns the label shown for a key in help text.
func KeyName(k Key) string {
	if k < 0 || k >= KeyCount {
		return "?"
	}
	return keyNames[k]
}
