package render

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultTitle  = "Waterleaf"
)

// Window is a GLFW window without a client API; presentation goes through
// a Device. Every method must be called from the main thread.
type Window struct {
	windowGlfw *glfw.Window
	Width      int
	Height     int
	title      string
	onResize   []func(width, height int)
}

// NewWindow initializes GLFW and opens a resizable window. Non-positive
// sizes and an empty title fall back to the defaults.
func NewWindow(width, height int, title string) (*Window, error) {
	width, height, title = WindowDefaults(width, height, title)

	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Important: tell GLFW we don't want OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &Window{
		windowGlfw: win,
		Width:      width,
		Height:     height,
		title:      title,
	}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.Width, w.Height = width, height
		for _, fn := range w.onResize {
			fn(width, height)
		}
	})
	win.SetKeyCallback(func(gw *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.SetShouldClose(true)
		}
	})
	return w, nil
}

func WindowDefaults(width, height int, title string) (int, int, string) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if title == "" {
		title = DefaultTitle
	}
	return width, height, title
}

func (w *Window) Handle() *glfw.Window {
	return w.windowGlfw
}

func (w *Window) Title() string {
	return w.title
}

func (w *Window) SetTitle(title string) {
	w.title = title
	w.windowGlfw.SetTitle(title)
}

// OnResize registers fn for framebuffer size changes.
func (w *Window) OnResize(fn func(width, height int)) {
	w.onResize = append(w.onResize, fn)
}

func (w *Window) FramebufferSize() (int, int) {
	return w.windowGlfw.GetFramebufferSize()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) ShouldClose() bool {
	return w.windowGlfw.ShouldClose()
}

func (w *Window) Close() {
	w.windowGlfw.SetShouldClose(true)
}

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	w.windowGlfw.Destroy()
	glfw.Terminate()
}
