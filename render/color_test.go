package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestToWGPU(t *testing.T) {
	c := ToWGPU(mgl32.Vec4{0.25, 0.5, 0.75, 1})
	assert.InDelta(t, 0.25, c.R, 1e-6)
	assert.InDelta(t, 0.5, c.G, 1e-6)
	assert.InDelta(t, 0.75, c.B, 1e-6)
	assert.InDelta(t, 1.0, c.A, 1e-6)
}

func TestPulseColor(t *testing.T) {
	base := mgl32.Vec3{0.4, 0.8, 1}

	start := PulseColor(base, 0, 2)
	assert.True(t, start.ApproxEqualThreshold(mgl32.Vec4{0.3, 0.6, 0.75, 1}, 1e-5), "got %v", start)

	peak := PulseColor(base, 0.5, 2)
	assert.True(t, peak.ApproxEqualThreshold(base.Vec4(1), 1e-5), "got %v", peak)

	trough := PulseColor(base, 1.5, 2)
	assert.True(t, trough.ApproxEqualThreshold(mgl32.Vec4{0.2, 0.4, 0.5, 1}, 1e-5), "got %v", trough)

	assert.Equal(t, base.Vec4(1), PulseColor(base, 3, 0))
}

func TestWindowDefaults(t *testing.T) {
	w, h, title := WindowDefaults(0, -5, "")
	assert.Equal(t, DefaultWidth, w)
	assert.Equal(t, DefaultHeight, h)
	assert.Equal(t, DefaultTitle, title)

	w, h, title = WindowDefaults(640, 480, "demo")
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.Equal(t, "demo", title)
}
