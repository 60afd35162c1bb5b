package tweakbar

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/chewxy/math32"
)

// BindingKind is the semantic type of a bound host variable.
type BindingKind uint8

const (
	BindNone BindingKind = iota
	BindBool
	BindInt
	BindFloat
	BindColor
	BindString
)

func (k BindingKind) String() string {
	switch k {
	case BindBool:
		return "bool"
	case BindInt:
		return "int"
	case BindFloat:
		return "float"
	case BindColor:
		return "color"
	case BindString:
		return "string"
	default:
		return "none"
	}
}

// Binding refers to a host-owned variable a widget edits. The widget never
// owns the value; the variable must outlive the widget.
//
// Commits write through the pointer and call the change callback, if any,
// only when the value actually changed.
type Binding struct {
	kind BindingKind
	b    *bool
	i    *int
	f    *float32
	c    *Color
	s    *string

	min, max, step float64
	hasRange       bool
	readOnly       bool
	onChange       func()
	unsupported    string // Go type passed to Bind that has no kind
}

// BindOption configures a Binding.
type BindOption func(*Binding)

// WithRange limits numeric values to [min, max].
func WithRange(min, max float64) BindOption {
	return func(b *Binding) {
		b.min, b.max, b.hasRange = min, max, true
	}
}

// WithStep snaps numeric values to multiples of step above min.
func WithStep(step float64) BindOption {
	return func(b *Binding) { b.step = step }
}

// ReadOnly marks the variable as display-only.
func ReadOnly() BindOption {
	return func(b *Binding) { b.readOnly = true }
}

// OnChange registers a callback invoked after every committed change.
func OnChange(fn func()) BindOption {
	return func(b *Binding) { b.onChange = fn }
}

func newBinding(kind BindingKind, opts []BindOption) Binding {
	b := Binding{kind: kind}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// BoolVar binds a bool.
func BoolVar(p *bool, opts ...BindOption) Binding {
	b := newBinding(BindBool, opts)
	b.b = p
	return b
}

// IntVar binds an int.
func IntVar(p *int, opts ...BindOption) Binding {
	b := newBinding(BindInt, opts)
	b.i = p
	return b
}

// FloatVar binds a float32.
func FloatVar(p *float32, opts ...BindOption) Binding {
	b := newBinding(BindFloat, opts)
	b.f = p
	return b
}

// ColorVar binds an RGBA color.
func ColorVar(p *Color, opts ...BindOption) Binding {
	b := newBinding(BindColor, opts)
	b.c = p
	return b
}

// StringVar binds a string.
func StringVar(p *string, opts ...BindOption) Binding {
	b := newBinding(BindString, opts)
	b.s = p
	return b
}

// Bind picks the binding kind from the pointer type. Unsupported types
// produce a binding every widget rejects with ErrInvalidBinding.
func Bind(ptr any, opts ...BindOption) Binding {
	switch p := ptr.(type) {
	case *bool:
		return BoolVar(p, opts...)
	case *int:
		return IntVar(p, opts...)
	case *float32:
		return FloatVar(p, opts...)
	case *Color:
		return ColorVar(p, opts...)
	case *string:
		return StringVar(p, opts...)
	default:
		b := newBinding(BindNone, opts)
		b.unsupported = fmt.Sprintf("%T", ptr)
		return b
	}
}

// Kind returns the semantic type of the bound variable.
func (b Binding) Kind() BindingKind { return b.kind }

// IsReadOnly reports whether the widget may only display the value.
func (b Binding) IsReadOnly() bool { return b.readOnly }

// Range returns the numeric range and whether one was set.
func (b Binding) Range() (min, max float64, ok bool) { return b.min, b.max, b.hasRange }

// Step returns the numeric step, 0 when continuous.
func (b Binding) Step() float64 { return b.step }

func (b Binding) isNil() bool {
	switch b.kind {
	case BindBool:
		return b.b == nil
	case BindInt:
		return b.i == nil
	case BindFloat:
		return b.f == nil
	case BindColor:
		return b.c == nil
	case BindString:
		return b.s == nil
	default:
		return true
	}
}

// check validates the binding for a widget accepting the given kinds.
func (b Binding) check(widget string, allowed ...BindingKind) error {
	if b.kind == BindNone {
		if b.unsupported != "" {
			return fmt.Errorf("%w: %s: unsupported variable type %s", ErrInvalidBinding, widget, b.unsupported)
		}
		return fmt.Errorf("%w: %s: no variable bound", ErrInvalidBinding, widget)
	}
	if !slices.Contains(allowed, b.kind) {
		return fmt.Errorf("%w: %s: cannot edit a %s variable", ErrInvalidBinding, widget, b.kind)
	}
	if b.isNil() {
		return fmt.Errorf("%w: %s: nil %s pointer", ErrInvalidBinding, widget, b.kind)
	}
	if b.hasRange && b.min > b.max {
		return fmt.Errorf("%w: %s: range [%g, %g] is inverted", ErrInvalidBinding, widget, b.min, b.max)
	}
	if b.step < 0 {
		return fmt.Errorf("%w: %s: negative step %g", ErrInvalidBinding, widget, b.step)
	}
	return nil
}

func (b Binding) notify() {
	if b.onChange != nil {
		b.onChange()
	}
}

// Bool returns the bound bool.
func (b Binding) Bool() bool { return *b.b }

// SetBool commits v and reports whether the variable changed.
func (b Binding) SetBool(v bool) bool {
	if b.readOnly || *b.b == v {
		return false
	}
	*b.b = v
	b.notify()
	return true
}

// Number returns an int or float binding's value.
func (b Binding) Number() float64 {
	if b.kind == BindInt {
		return float64(*b.i)
	}
	return float64(*b.f)
}

// Normalize clamps v to the range and snaps it to the step.
// Int bindings always snap to whole numbers.
func (b Binding) Normalize(v float64) float64 {
	if b.hasRange {
		v = min(max(v, b.min), b.max)
	}
	step := b.step
	if b.kind == BindInt && step < 1 {
		step = 1
	}
	if step > 0 {
		origin := 0.0
		if b.hasRange {
			origin = b.min
		}
		v = origin + math.Round((v-origin)/step)*step
		if b.hasRange {
			v = min(v, b.max)
		}
	}
	return v
}

// SetNumber normalizes and commits v, reporting whether the variable changed.
// NaN and infinities are rejected.
func (b Binding) SetNumber(v float64) bool {
	if b.readOnly || math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	v = b.Normalize(v)
	switch b.kind {
	case BindInt:
		n := toInt(v)
		if *b.i == n {
			return false
		}
		*b.i = n
	case BindFloat:
		f := float32(min(max(v, -math.MaxFloat32), math.MaxFloat32))
		if *b.f == f || (math32.IsNaN(*b.f) && math32.IsNaN(f)) {
			return false
		}
		*b.f = f
	default:
		return false
	}
	b.notify()
	return true
}

// toInt converts v, saturating at the int limits.
func toInt(v float64) int {
	switch {
	case v >= math.MaxInt:
		return math.MaxInt
	case v <= math.MinInt:
		return math.MinInt
	}
	return int(v)
}

// Fraction returns where the numeric value sits in its range, in [0, 1].
func (b Binding) Fraction() float32 {
	if !b.hasRange || b.max <= b.min {
		return 0
	}
	return clampf(float32((b.Number()-b.min)/(b.max-b.min)), 0, 1)
}

// Color returns the bound color.
func (b Binding) Color() Color { return *b.c }

// SetColor commits c and reports whether the variable changed.
func (b Binding) SetColor(c Color) bool {
	c = c.Clamped()
	if b.readOnly || *b.c == c {
		return false
	}
	*b.c = c
	b.notify()
	return true
}

// Text returns the bound string.
func (b Binding) Text() string { return *b.s }

// SetText commits s and reports whether the variable changed.
func (b Binding) SetText(s string) bool {
	if b.readOnly || *b.s == s {
		return false
	}
	*b.s = s
	b.notify()
	return true
}

// Format renders the current value for display.
func (b Binding) Format() string {
	if b.isNil() {
		return ""
	}
	switch b.kind {
	case BindBool:
		if *b.b {
			return "on"
		}
		return "off"
	case BindInt:
		return strconv.Itoa(*b.i)
	case BindFloat:
		return strconv.FormatFloat(float64(*b.f), 'f', b.precision(), 32)
	case BindColor:
		r, g, bb, a := UnpackRGBA(b.c.Packed())
		return fmt.Sprintf("#%02X%02X%02X%02X", r, g, bb, a)
	case BindString:
		return *b.s
	default:
		return ""
	}
}

// precision picks decimals from the step: 0.01 shows two, 1 shows none.
func (b Binding) precision() int {
	if b.step <= 0 {
		return 2
	}
	p := 0
	for s := b.step; s < 1 && p < 6; s *= 10 {
		p++
	}
	return p
}
