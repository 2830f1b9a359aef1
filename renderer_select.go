package waterleaf

// RendererName identifies a concrete renderer module.
// Keep names aligned with ensureSingleRenderer tags.
type RendererName string

const (
	RendererClear RendererName = "clear"
)

// Renderer is an alias to Module for semantic clarity in APIs.
type Renderer interface {
	Module
}

// UseRenderer installs exactly one renderer module, enforcing exclusivity via ensureSingleRenderer,
// and ensures a shared WindowState exists (created with defaults if missing).
// Usage:
//
//	app.UseRenderer(RendererClear, RenderModule{})
func (app *App) UseRenderer(name RendererName, mod Renderer) *App {
	return app.UseRendererWithWindow(name, mod, 0, 0, "")
}

// UseRendererWithWindow installs the renderer and ensures a shared window with explicit size/title.
func (app *App) UseRendererWithWindow(name RendererName, mod Renderer, width, height int, title string) *App {
	ensureSingleRenderer(app, string(name))
	ensureWindowResource(app, width, height, title)
	app.Logger().Infof("Renderer selected: %s", name)
	app.UseModules(mod)
	return app
}

// UseClearRenderer selects the clear-and-present renderer with default colors.
func (app *App) UseClearRenderer(width, height int, title string) *App {
	return app.UseRendererWithWindow(RendererClear, RenderModule{}, width, height, title)
}
