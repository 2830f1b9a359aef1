package waterleaf

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyEscape int = iota
	KeyTab
	KeyF3
	KeyF5
	KeyF12
	numKeys
)

var keyToGlfw = map[int]glfw.Key{
	KeyEscape: glfw.KeyEscape,
	KeyTab:    glfw.KeyTab,
	KeyF3:     glfw.KeyF3,
	KeyF5:     glfw.KeyF5,
	KeyF12:    glfw.KeyF12,
}

type InputModule struct{}

type Input struct {
	Pressed      [numKeys]bool
	JustPressed  [numKeys]bool
	JustReleased [numKeys]bool
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	ensureWindowResource(app, 0, 0, "")
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func inputSystem(s *WindowState, input *Input) {
	win := s.Window.Handle()
	for key, glfwKey := range keyToGlfw {
		input.update(key, win.GetKey(glfwKey) == glfw.Press)
	}
}

// update records the state of key for this frame, deriving the edges from
// the previous frame.
func (input *Input) update(key int, down bool) {
	input.JustPressed[key] = down && !input.Pressed[key]
	input.JustReleased[key] = !down && input.Pressed[key]
	input.Pressed[key] = down
}

// ProfilerHotkeysModule binds F3 to logging the profiler report and F5 to
// clearing its history. F12 requests an overlay snapshot when OverlayModule
// is installed and is ignored otherwise.
// FrameProfilerModule must be installed first.
type ProfilerHotkeysModule struct{}

func (mod ProfilerHotkeysModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[Profiler](app); !ok {
		panic("profiler hotkeys module: FrameProfilerModule must be installed first")
	}
	if _, ok := Resource[Input](app); !ok {
		app.UseModules(InputModule{})
	}
	app.UseSystem(System(profilerHotkeysSystem).InStage(Update))
}

func profilerHotkeysSystem(input *Input, p *Profiler, cmd *Commands) {
	if input.JustPressed[KeyF3] {
		cmd.Logger().Infof("\n%s", p.StatsString())
	}
	if input.JustPressed[KeyF5] {
		p.Frames.ClearHistory()
		cmd.Logger().Infof("profiler history cleared")
	}
	if input.JustPressed[KeyF12] {
		if overlayState, ok := Resource[OverlayState](cmd.app); ok {
			overlayState.RequestSnapshot()
		}
	}
}
