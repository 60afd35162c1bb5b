package tweakbar

import "strings"

// Clipboard gives text fields access to the system clipboard.
//
// For GLFW:
//
//	type glfwClipboard struct{ w *glfw.Window }
//
//	func (c glfwClipboard) GetText() string     { return c.w.GetClipboardString() }
//	func (c glfwClipboard) SetText(text string) { c.w.SetClipboardString(text) }
type Clipboard interface {
	// GetText returns the clipboard text, or "" if it holds none.
	GetText() string
	SetText(text string)
}

// WithClipboard enables Ctrl+C, Ctrl+X and Ctrl+V in text fields.
func WithClipboard(c Clipboard) Option {
	return func(t *Tree) { t.clipboard = c }
}

// clipboardText returns pasteable clipboard text on a single line.
func (t *Tree) clipboardText() string {
	if t.clipboard == nil {
		return ""
	}
	s := t.clipboard.GetText()
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return s
}

func (t *Tree) setClipboardText(s string) {
	if t.clipboard != nil {
		t.clipboard.SetText(s)
	}
}
