package waterleaf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_Edges(t *testing.T) {
	var input Input

	input.update(KeyF3, true)
	assert.True(t, input.Pressed[KeyF3])
	assert.True(t, input.JustPressed[KeyF3])

	input.update(KeyF3, true)
	assert.True(t, input.Pressed[KeyF3])
	assert.False(t, input.JustPressed[KeyF3], "holding is not a new press")

	input.update(KeyF3, false)
	assert.False(t, input.Pressed[KeyF3])
	assert.True(t, input.JustReleased[KeyF3])

	input.update(KeyF3, false)
	assert.False(t, input.JustReleased[KeyF3])
}

func TestProfilerHotkeys(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var out bytes.Buffer
	app := NewApp()
	app.Commands().AddResources(NewDefaultLoggerTo("", false, &out, &out), &Input{})
	app.UseModules(
		FrameProfilerModule{Sections: []string{"a"}, Clock: clockwork.NewFakeClock()},
		OverlayModule{},
		ProfilerHotkeysModule{},
	)
	input, _ := Resource[Input](app)
	state, _ := Resource[OverlayState](app)
	p, _ := Resource[Profiler](app)

	app.Step()
	app.Step()
	require.True(t, p.Frames.IsFrameDataAccessible(1))
	assert.Nil(t, state.Last)

	input.update(KeyF3, true)
	input.update(KeyF12, true)
	app.Step()
	assert.Equal(t, 1, strings.Count(out.String(), "Timings (CPU):"))
	assert.NotNil(t, state.Last)

	input.update(KeyF3, false)
	input.update(KeyF12, false)
	input.update(KeyF5, true)
	app.Step()
	assert.Contains(t, out.String(), "profiler history cleared")
	assert.Zero(t, p.Frames.FramesRecorded())
}

func TestProfilerHotkeys_WithoutOverlay(t *testing.T) {
	app := NewApp()
	app.Commands().AddResources(NewNopLogger(), &Input{})
	app.UseModules(
		FrameProfilerModule{Sections: []string{"a"}, Clock: clockwork.NewFakeClock()},
		ProfilerHotkeysModule{},
	)
	input, _ := Resource[Input](app)

	input.update(KeyF12, true)
	assert.NotPanics(t, func() { app.Step() })
	_, ok := Resource[OverlayState](app)
	assert.False(t, ok)
}

func TestProfilerHotkeys_RequiresProfiler(t *testing.T) {
	app := NewApp()
	app.Commands().AddResources(NewNopLogger(), &Input{})
	assert.Panics(t, func() { app.UseModules(ProfilerHotkeysModule{}) })
}
