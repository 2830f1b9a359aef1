package waterleaf

import (
	"fmt"
	"image"
	"reflect"

	"github.com/waterleaf/waterleaf/overlay"
)

// OverlayState is the resource holding the last rendered profiler overlay.
type OverlayState struct {
	overlay   *overlay.Overlay
	dir       string
	every     uint64
	requested bool
	Last      *image.RGBA
	LastPath  string
	Snapshots int
}

// RequestSnapshot makes the overlay render at the end of the current frame.
func (s *OverlayState) RequestSnapshot() {
	s.requested = true
}

// OverlayModule rasterizes the Profiler every Every frames or on request
// and, when Dir is set, saves the image as PNG. A final snapshot is taken
// when the App exits.
// FrameProfilerModule must be installed first.
type OverlayModule struct {
	Dir     string
	Every   int
	Options overlay.Options
}

func (m OverlayModule) Install(app *App, cmd *Commands) {
	if !app.hasResource(reflect.TypeOf((*Profiler)(nil)).Elem()) {
		panic("overlay module: FrameProfilerModule must be installed first")
	}
	every := uint64(0)
	if m.Every > 0 {
		every = uint64(m.Every)
	}
	cmd.AddResources(&OverlayState{
		overlay: overlay.New(m.Options),
		dir:     m.Dir,
		every:   every,
	})
	cmd.UseSystem(System(overlaySystem).InStage(Finale))
}

func overlaySystem(state *OverlayState, p *Profiler, cmd *Commands) {
	frame := p.Frames.FramesRecorded()
	due := state.every > 0 && frame > 0 && frame%state.every == 0
	if !due && !state.requested && !cmd.app.Exiting() {
		return
	}
	state.requested = false
	defer p.Measure(SectionOverlay)()

	state.Last = state.overlay.Draw(p.Frames, fmt.Sprintf("session %s", p.Session))
	if state.dir == "" {
		return
	}
	path, err := overlay.SavePNG(state.dir, p.Session, frame, state.Last)
	if err != nil {
		cmd.Logger().Errorf("overlay snapshot: %v", err)
		return
	}
	state.LastPath = path
	state.Snapshots++
	cmd.Logger().Debugf("overlay snapshot written to %s", path)
}
