package waterleaf

import (
	"time"

	"github.com/waterleaf/waterleaf/profiling"
)

type Time struct {
	Time  time.Time
	Dt    time.Duration
	Frame uint64
	clock profiling.Clock
}

// TimeModule keeps a Time resource updated at the start of every frame.
// A nil Clock means the process monotonic clock.
type TimeModule struct {
	Clock profiling.Clock
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	clock := mod.Clock
	if clock == nil {
		clock = profiling.DefaultClock()
	}
	cmd.AddResources(&Time{
		Time:  clock.Now(),
		Dt:    0,
		clock: clock,
	})
	cmd.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(timeResource *Time) {
	now := timeResource.clock.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
	timeResource.Frame++
}
