// Package glfwinput feeds GLFW window events into a tweakbar.InputState.
package glfwinput

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/tweakbar"
)

// Adapter collects GLFW callbacks into an InputState.
//
// Installing an Adapter replaces the window's key, char, mouse button,
// scroll and cursor callbacks. Hosts that need them too should call
// Forward from their own callbacks instead of using New.
type Adapter struct {
	window *glfw.Window
	input  *tweakbar.InputState
	last   float64
}

// New creates an adapter and installs its callbacks on window.
func New(window *glfw.Window) *Adapter {
	a := &Adapter{
		window: window,
		input:  tweakbar.NewInputState(),
		last:   glfw.GetTime(),
	}
	window.SetKeyCallback(a.keyCallback)
	window.SetCharCallback(a.charCallback)
	window.SetMouseButtonCallback(a.mouseButtonCallback)
	window.SetScrollCallback(a.scrollCallback)
	window.SetCursorPosCallback(a.cursorPosCallback)
	return a
}

// Update returns the input gathered since the previous call and the elapsed
// time in seconds. Call it once per frame after glfw.PollEvents.
func (a *Adapter) Update() (*tweakbar.InputState, float32) {
	now := glfw.GetTime()
	dt := float32(now - a.last)
	a.last = now

	x, y := a.window.GetCursorPos()
	a.input.SetMousePos(float32(x), float32(y))

	a.input.ModCtrl = a.window.GetKey(glfw.KeyLeftControl) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightControl) == glfw.Press
	a.input.ModShift = a.window.GetKey(glfw.KeyLeftShift) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightShift) == glfw.Press
	a.input.ModAlt = a.window.GetKey(glfw.KeyLeftAlt) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightAlt) == glfw.Press
	a.input.ModSuper = a.window.GetKey(glfw.KeyLeftSuper) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightSuper) == glfw.Press

	return a.input, dt
}

// EndFrame clears per-frame edges. Call it after the tree has been updated.
func (a *Adapter) EndFrame() { a.input.Reset() }

// Input returns the current input state.
func (a *Adapter) Input() *tweakbar.InputState { return a.input }

// Forward passes one key event to the adapter.
func (a *Adapter) Forward(key glfw.Key, action glfw.Action) {
	k := keyOf(key)
	if k == tweakbar.KeyNone {
		return
	}
	switch action {
	case glfw.Press:
		a.input.SetKey(k, true)
	case glfw.Release:
		a.input.SetKey(k, false)
	}
}

func (a *Adapter) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	a.Forward(key, action)
}

func (a *Adapter) charCallback(_ *glfw.Window, char rune) {
	a.input.AddInputChar(char)
}

func (a *Adapter) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	b := buttonOf(button)
	if b < 0 {
		return
	}
	switch action {
	case glfw.Press:
		a.input.SetMouseButton(b, true)
	case glfw.Release:
		a.input.SetMouseButton(b, false)
	}
}

func (a *Adapter) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	a.input.SetMouseWheel(float32(xoff), float32(yoff))
}

func (a *Adapter) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	a.input.SetMousePos(float32(xpos), float32(ypos))
}

// Clipboard implements tweakbar.Clipboard on a GLFW window.
type Clipboard struct {
	Window *glfw.Window
}

func (c Clipboard) GetText() string     { return c.Window.GetClipboardString() }
func (c Clipboard) SetText(text string) { c.Window.SetClipboardString(text) }

var _ tweakbar.Clipboard = Clipboard{}

func keyOf(key glfw.Key) tweakbar.Key {
	switch key {
	case glfw.KeyTab:
		return tweakbar.KeyTab
	case glfw.KeyLeft:
		return tweakbar.KeyLeft
	case glfw.KeyRight:
		return tweakbar.KeyRight
	case glfw.KeyUp:
		return tweakbar.KeyUp
	case glfw.KeyDown:
		return tweakbar.KeyDown
	case glfw.KeyHome:
		return tweakbar.KeyHome
	case glfw.KeyEnd:
		return tweakbar.KeyEnd
	case glfw.KeyDelete:
		return tweakbar.KeyDelete
	case glfw.KeyBackspace:
		return tweakbar.KeyBackspace
	case glfw.KeySpace:
		return tweakbar.KeySpace
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return tweakbar.KeyEnter
	case glfw.KeyEscape:
		return tweakbar.KeyEscape
	case glfw.KeyC:
		return tweakbar.KeyC
	case glfw.KeyV:
		return tweakbar.KeyV
	case glfw.KeyX:
		return tweakbar.KeyX
	default:
		return tweakbar.KeyNone
	}
}

func buttonOf(button glfw.MouseButton) tweakbar.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return tweakbar.MouseButtonLeft
	case glfw.MouseButtonRight:
		return tweakbar.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return tweakbar.MouseButtonMiddle
	default:
		return -1
	}
}
