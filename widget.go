package tweakbar

import "fmt"

// Kind tags the closed set of widget variants.
type Kind uint8

const (
	KindPanel Kind = iota
	KindButton
	KindCheckBox
	KindSlider
	KindColorPicker
	KindLabel
	KindTextField
	KindSeparator
)

func (k Kind) String() string {
	switch k {
	case KindPanel:
		return "panel"
	case KindButton:
		return "button"
	case KindCheckBox:
		return "checkbox"
	case KindSlider:
		return "slider"
	case KindColorPicker:
		return "colorpicker"
	case KindLabel:
		return "label"
	case KindTextField:
		return "textfield"
	case KindSeparator:
		return "separator"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// State is a widget's pointer interaction state.
type State uint8

const (
	StateIdle State = iota
	StateHovered
	StatePressed
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHovered:
		return "hovered"
	case StatePressed:
		return "pressed"
	case StateDragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Extent is how much vertical space a child claims in its panel.
// The zero Extent means the widget's natural height.
type Extent struct {
	Fixed  float32 // Height in unscaled pixels
	Weight float32 // Share of the space left after fixed children
}

// Fixed claims a fixed height in unscaled pixels.
func Fixed(px float32) Extent { return Extent{Fixed: px} }

// Proportional claims a weighted share of the remaining height.
func Proportional(weight float32) Extent { return Extent{Weight: weight} }

// Widget is implemented by the widget variants of this package only.
// Behaviour that differs between variants is dispatched on Kind or through
// these methods.
type Widget interface {
	Kind() Kind
	Node() *Base

	// layout positions the widget inside frame, its unclipped rectangle.
	layout(t *Tree, frame, clip Rect)
	// draw emits the widget's geometry.
	draw(t *Tree, b *Batch)
	// hitTest returns the frontmost, deepest widget under p, or nil.
	hitTest(p Vec2) Widget
	// handle reacts to one interaction event and reports whether it used it.
	handle(t *Tree, ev *Event) bool
}

// Base holds the state every widget shares.
type Base struct {
	id       uint64
	label    string
	help     string
	frame    Rect // Full layout rectangle, may extend past the parent
	rect     Rect // frame intersected with the parent's content rect
	parent   *Panel
	tree     *Tree
	hidden   bool
	disabled bool
	state    State
	focused  bool
	extent   Extent
	hoverFor float32 // Seconds the pointer has rested on the widget
}

// Node returns the shared widget state.
func (b *Base) Node() *Base { return b }

// ID returns the widget's tree-unique identifier.
func (b *Base) ID() uint64 { return b.id }

// Label returns the widget label.
func (b *Base) Label() string { return b.label }

// SetLabel changes the widget label.
func (b *Base) SetLabel(label string) { b.label = label }

// Help returns the tooltip text.
func (b *Base) Help() string { return b.help }

// SetHelp sets the tooltip text shown after hovering.
func (b *Base) SetHelp(help string) { b.help = help }

// Rect returns the visible bounding rectangle computed by the last layout.
func (b *Base) Rect() Rect { return b.rect }

// Parent returns the containing panel, nil for a bar.
func (b *Base) Parent() *Panel { return b.parent }

// State returns the pointer interaction state.
func (b *Base) State() State { return b.state }

// Focused reports whether the widget holds keyboard focus.
func (b *Base) Focused() bool { return b.focused }

// Visible reports the widget's own visibility flag.
func (b *Base) Visible() bool { return !b.hidden }

// Enabled reports the widget's own enabled flag.
func (b *Base) Enabled() bool { return !b.disabled }

// SetVisible shows or hides the widget. Hiding returns it to Idle.
func (b *Base) SetVisible(v bool) {
	if b.hidden == !v {
		return
	}
	b.hidden = !v
	if !v {
		b.state = StateIdle
	}
	b.invalidate()
}

// SetEnabled enables or disables the widget. Disabling returns it to Idle.
func (b *Base) SetEnabled(v bool) {
	b.disabled = !v
	if !v {
		b.state = StateIdle
	}
}

// Extent returns the vertical space the widget claims.
func (b *Base) Extent() Extent { return b.extent }

// SetExtent changes the vertical space the widget claims.
func (b *Base) SetExtent(e Extent) {
	b.extent = e
	b.invalidate()
}

func (b *Base) invalidate() {
	if b.tree != nil {
		b.tree.Invalidate()
	}
}

// shown reports whether the widget and all its ancestors are visible and
// expanded.
func (b *Base) shown() bool {
	if b.hidden {
		return false
	}
	for p := b.parent; p != nil; p = p.parent {
		if p.hidden || p.collapsed {
			return false
		}
	}
	return true
}

// interactive reports whether the widget can receive input.
func (b *Base) interactive() bool {
	if b.disabled || !b.shown() || b.rect.Empty() {
		return false
	}
	for p := b.parent; p != nil; p = p.parent {
		if p.disabled {
			return false
		}
	}
	return true
}

// place stores the layout frame. The visible rect is anchored inside clip
// even when the two are disjoint.
func (b *Base) place(frame, clip Rect) {
	b.frame = frame
	b.rect = clip.Intersect(frame)
}

// hitSelf is the hit test shared by leaf widgets.
func (b *Base) hitSelf(w Widget, p Vec2) Widget {
	if b.hidden || b.rect.Empty() || !b.rect.Contains(p) {
		return nil
	}
	return w
}

// EventType identifies an interaction event delivered to a widget.
type EventType uint8

const (
	EventPress     EventType = iota // Primary button went down on the widget
	EventDragStart                  // Pointer left the deadzone while pressed
	EventDrag                       // Pointer moved while dragging
	EventDragEnd                    // Button released after a drag
	EventClick                      // Released inside without dragging
	EventScroll                     // Wheel moved over the widget
	EventKey                        // Keyboard input while focused
	EventFocus                      // Widget gained keyboard focus
	EventBlur                       // Widget lost keyboard focus
)

// Event is one interaction delivered to a widget.
type Event struct {
	Type  EventType
	Pos   Vec2        // Pointer position
	Press Vec2        // Where the press started
	Wheel float32     // Vertical wheel notches for EventScroll
	Input *InputState // Frame input for EventKey
}

// draggable reports whether pressing w may turn into a drag.
func draggable(w Widget) bool {
	switch w := w.(type) {
	case *Slider:
		return !w.bind.IsReadOnly()
	case *ColorPicker:
		return !w.bind.IsReadOnly()
	case *Panel:
		return w.grabbed
	default:
		return false
	}
}

// focusable reports whether w accepts keyboard input.
func focusable(w Widget) bool {
	switch w := w.(type) {
	case *Slider:
		return !w.bind.IsReadOnly()
	case *TextField:
		return !w.bind.IsReadOnly()
	case *CheckBox:
		return !w.bind.IsReadOnly()
	default:
		return false
	}
}

// splitRow divides a row into the label column and the value area.
func (t *Tree) splitRow(r Rect) (label, value Rect) {
	lw := r.W * t.style.LabelFraction
	label = Rect{X: r.X, Y: r.Y, W: lw, H: r.H}
	value = Rect{X: r.X + lw, Y: r.Y, W: r.W - lw, H: r.H}
	return label, value
}

// labelColor picks the label text color for the widget's enabled state.
func (t *Tree) labelColor(b *Base) uint32 {
	if !b.interactive() {
		return t.style.TextDisabledColor
	}
	return t.style.TextColor
}

// drawLabel draws the label column of a row.
func (t *Tree) drawLabel(b *Batch, w *Base, r Rect) {
	r.X += t.m.inputPad
	r.W -= 2 * t.m.inputPad
	t.textIn(b, r, w.label, t.labelColor(w))
}

// drawFocus outlines r when w holds keyboard focus.
func (t *Tree) drawFocus(b *Batch, w *Base, r Rect) {
	if w.focused {
		b.AddRectOutline(r.X, r.Y, r.W, r.H, t.style.FocusColor, t.m.border)
	}
}
