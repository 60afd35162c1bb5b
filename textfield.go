package tweakbar

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
)

// TextField edits a bound string, int or float32 as text.
//
// Focus copies the value into an edit buffer. Enter or losing focus commits
// it; Escape drops the edit. Numeric text that does not parse is discarded.
type TextField struct {
	Base
	bind    Binding
	field   Rect
	buf     []rune
	cursor  int
	editing bool
	offset  float32 // Horizontal text scroll keeping the cursor visible
}

var errNotFinite = errors.New("not a finite number")

// AddTextField appends a text editor for a string, int or float binding.
func (p *Panel) AddTextField(label string, bind Binding) (*TextField, error) {
	if err := bind.check("text field "+label, BindString, BindInt, BindFloat); err != nil {
		p.rejected(err)
		return nil, err
	}
	tf := &TextField{Base: Base{label: label}, bind: bind}
	p.add(tf)
	return tf, nil
}

func (tf *TextField) Kind() Kind { return KindTextField }

// Binding returns the bound variable.
func (tf *TextField) Binding() Binding { return tf.bind }

// Editing reports whether an uncommitted edit is in progress.
func (tf *TextField) Editing() bool { return tf.editing }

// Text returns the edit buffer while editing, otherwise the bound value.
func (tf *TextField) Text() string {
	if tf.editing {
		return string(tf.buf)
	}
	return tf.bind.Format()
}

// Cursor returns the cursor position in runes.
func (tf *TextField) Cursor() int { return tf.cursor }

func (tf *TextField) layout(t *Tree, frame, clip Rect) {
	tf.place(frame, clip)
	_, value := t.splitRow(frame)
	tf.field = Rect{X: value.X, Y: frame.Y + t.m.inputPad/2, W: value.W - t.m.inputPad, H: frame.H - t.m.inputPad}
}

func (tf *TextField) hitTest(p Vec2) Widget { return tf.hitSelf(tf, p) }

func (tf *TextField) begin() {
	tf.buf = []rune(tf.bind.Format())
	tf.cursor = len(tf.buf)
	tf.offset = 0
	tf.editing = true
}

func (tf *TextField) commit(t *Tree) {
	if !tf.editing {
		return
	}
	tf.editing = false
	text := string(tf.buf)
	var changed bool
	switch tf.bind.Kind() {
	case BindString:
		changed = tf.bind.SetText(text)
	case BindInt, BindFloat:
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			err = errNotFinite
		}
		if err != nil {
			t.log.Debug("text field input discarded", "widget", tf.label, "text", text, "err", err)
			return
		}
		changed = tf.bind.SetNumber(v)
	}
	if changed {
		t.log.Debug("text field committed", "widget", tf.label, "value", tf.bind.Format())
	}
}

// cursorAt returns the rune index closest to pointer x.
func (tf *TextField) cursorAt(t *Tree, x float32) int {
	x -= tf.field.X + t.m.inputPad - tf.offset
	for i := range tf.buf {
		w := t.textWidth(string(tf.buf[:i]))
		next := t.textWidth(string(tf.buf[:i+1]))
		if x < (w+next)/2 {
			return i
		}
	}
	return len(tf.buf)
}

func (tf *TextField) handle(t *Tree, ev *Event) bool {
	switch ev.Type {
	case EventFocus:
		tf.begin()
		return true
	case EventBlur:
		tf.commit(t)
		return true
	case EventPress:
		if tf.editing {
			tf.cursor = tf.cursorAt(t, ev.Pos.X)
		}
		return true
	case EventKey:
		return tf.key(t, ev.Input)
	}
	return false
}

func (tf *TextField) key(t *Tree, in *InputState) bool {
	if !tf.editing {
		tf.begin()
	}
	used := false
	for _, r := range in.InputChars {
		if r < 32 || r == 127 {
			continue
		}
		tf.buf = slices.Insert(tf.buf, tf.cursor, r)
		tf.cursor++
		used = true
	}
	if in.ModCtrl && tf.clip(t, in) {
		return true
	}
	switch {
	case in.KeyPressed(KeyEnter):
		tf.commit(t)
		t.SetFocus(nil)
		return true
	case in.KeyPressed(KeyEscape):
		tf.editing = false
		t.SetFocus(nil)
		return true
	case in.KeyRepeated(KeyBackspace):
		if tf.cursor > 0 {
			tf.buf = slices.Delete(tf.buf, tf.cursor-1, tf.cursor)
			tf.cursor--
		}
	case in.KeyRepeated(KeyDelete):
		if tf.cursor < len(tf.buf) {
			tf.buf = slices.Delete(tf.buf, tf.cursor, tf.cursor+1)
		}
	case in.KeyRepeated(KeyLeft):
		tf.cursor = max(tf.cursor-1, 0)
	case in.KeyRepeated(KeyRight):
		tf.cursor = min(tf.cursor+1, len(tf.buf))
	case in.KeyPressed(KeyHome):
		tf.cursor = 0
	case in.KeyPressed(KeyEnd):
		tf.cursor = len(tf.buf)
	default:
		return used
	}
	return true
}

// clip handles the clipboard shortcuts.
func (tf *TextField) clip(t *Tree, in *InputState) bool {
	switch {
	case in.KeyPressed(KeyC):
		t.setClipboardText(string(tf.buf))
	case in.KeyPressed(KeyX):
		t.setClipboardText(string(tf.buf))
		tf.buf, tf.cursor = tf.buf[:0], 0
	case in.KeyPressed(KeyV):
		paste := []rune(t.clipboardText())
		tf.buf = slices.Insert(tf.buf, tf.cursor, paste...)
		tf.cursor += len(paste)
	default:
		return false
	}
	return true
}

func (tf *TextField) draw(t *Tree, b *Batch) {
	st := t.style
	label, _ := t.splitRow(tf.frame)
	t.drawLabel(b, &tf.Base, label)

	r := tf.field
	bg := st.InputBgColor
	if tf.focused {
		bg = st.InputFocusedBgColor
	}
	b.AddRect(r.X, r.Y, r.W, r.H, bg)
	b.AddRectOutline(r.X, r.Y, r.W, r.H, st.InputBorderColor, t.m.border)

	pad := t.m.inputPad
	inner := r.Inset(pad, 0)
	ty := r.Y + (r.H-t.m.textH)/2
	if !tf.editing {
		t.textIn(b, inner, tf.bind.Format(), st.ValueTextColor)
		return
	}

	cx := t.textWidth(string(tf.buf[:tf.cursor]))
	if cx-tf.offset > inner.W {
		tf.offset = cx - inner.W
	} else if cx < tf.offset {
		tf.offset = cx
	}
	b.PushClip(inner)
	t.text(b, inner.X-tf.offset, ty, string(tf.buf), st.TextColor)
	if tf.focused {
		b.AddRect(inner.X+cx-tf.offset, ty, maxf(t.m.scale, 1), t.m.textH, st.CursorColor)
	}
	b.PopClip()
	t.drawFocus(b, &tf.Base, r)
}
