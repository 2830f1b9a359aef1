package waterleaf

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/waterleaf/waterleaf/profiling"
	"github.com/waterleaf/waterleaf/render"
)

var DefaultClearColor = mgl32.Vec3{0.10, 0.25, 0.45}

// GpuState is the resource holding the device of the shared window.
type GpuState struct {
	Device *render.Device
	color  mgl32.Vec3
	period time.Duration
	clock  profiling.Clock
	start  time.Time
	errors int
	// nil unless a Profiler was installed earlier
	profiler *Profiler
}

// RenderModule clears the window every frame with a slowly pulsing color.
// It needs the WindowState resource; install it through UseRenderer so the
// window exists first.
type RenderModule struct {
	ClearColor  mgl32.Vec3
	PulsePeriod time.Duration
}

func (m RenderModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, string(RendererClear))
	ensureWindowResource(app, 0, 0, "")

	ws, _ := Resource[WindowState](app)
	device, err := render.NewDevice(ws.Window)
	if err != nil {
		panic(fmt.Errorf("render module: %w", err))
	}

	color := m.ClearColor
	if color == (mgl32.Vec3{}) {
		color = DefaultClearColor
	}
	period := m.PulsePeriod
	if period <= 0 {
		period = 4 * time.Second
	}
	clock := profiling.DefaultClock()
	profiler, _ := Resource[Profiler](app)
	cmd.AddResources(&GpuState{
		Device:   device,
		color:    color,
		period:   period,
		clock:    clock,
		start:    clock.Now(),
		profiler: profiler,
	})
	cmd.UseSystem(System(renderSystem).InStage(Render))
	cmd.UseSystem(System(releaseGpuSystem).InStage(Finale))
}

func renderSystem(gpu *GpuState, cmd *Commands) {
	if gpu.profiler != nil {
		defer gpu.profiler.Measure(SectionGpuSubmit)()
	}

	elapsed := gpu.clock.Now().Sub(gpu.start).Seconds()
	c := render.PulseColor(gpu.color, elapsed, gpu.period.Seconds())
	if err := gpu.Device.Clear(c); err != nil {
		gpu.errors++
		cmd.Logger().Warnf("render: %v", err)
		if gpu.profiler != nil {
			gpu.profiler.SetCount("render errors", gpu.errors)
		}
	}
}

func releaseGpuSystem(gpu *GpuState, cmd *Commands) {
	if cmd.app.Exiting() {
		gpu.Device.Release()
	}
}
