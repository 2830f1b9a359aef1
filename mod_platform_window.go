package waterleaf

import (
	"fmt"
	"reflect"

	"github.com/waterleaf/waterleaf/profiling"
	"github.com/waterleaf/waterleaf/render"
)

// WindowState is the shared window resource. The title shows the smoothed
// frame time, refreshed every titleRefreshFrames frames.
type WindowState struct {
	Window *render.Window
	title  string
	fps    *profiling.SmoothedStopwatch
	frames int
}

const titleRefreshFrames = 30

// PlatformWindowModule ensures a single shared GLFW window (WindowState) is created
// and made available as a resource for any renderer module.
// Install is idempotent: if a WindowState resource already exists, it is reused.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

// NewPlatformWindow creates a module that provides a shared WindowState resource.
// If Width/Height are zero, sensible defaults are used.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	width, height, title = render.WindowDefaults(width, height, title)
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

// Install provides the WindowState resource if missing.
func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	ensureWindowResource(app, m.Width, m.Height, m.Title)
}

func createWindowState(width, height int, title string) *WindowState {
	win, err := render.NewWindow(width, height, title)
	if err != nil {
		panic(fmt.Errorf("platform window: %w", err))
	}
	return &WindowState{
		Window: win,
		title:  win.Title(),
		fps:    profiling.NewSmoothedStopwatch(nil, profiling.DefaultSmoothing),
	}
}

// ensureWindowResource guarantees a single shared WindowState resource exists
// and that window events are pumped every frame.
func ensureWindowResource(app *App, width, height int, title string) {
	t := reflect.TypeOf((*WindowState)(nil)).Elem()
	if app.hasResource(t) {
		return
	}
	width, height, title = render.WindowDefaults(width, height, title)
	ws := createWindowState(width, height, title)
	app.addResources(ws)
	app.UseSystem(System(windowEventsSystem).InStage(Prelude))
	app.Logger().Infof("Created shared window (%dx%d) '%s'", width, height, title)
}

func windowEventsSystem(ws *WindowState, cmd *Commands) {
	ws.Window.PollEvents()
	if ws.Window.ShouldClose() {
		cmd.Exit()
	}

	ws.fps.Tick()
	ws.frames++
	if ws.frames%titleRefreshFrames == 0 {
		ws.Window.SetTitle(windowTitle(ws.title, ws.fps.SmoothedElapsedMs()))
	}
}

func windowTitle(base string, frameMs float64) string {
	if frameMs <= 0 {
		return base
	}
	return fmt.Sprintf("%s | %.2f ms (%.0f FPS)", base, frameMs, 1000/frameMs)
}
