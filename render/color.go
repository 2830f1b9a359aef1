package render

import (
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

func ToWGPU(c mgl32.Vec4) wgpu.Color {
	return wgpu.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}

// PulseColor scales base by a brightness that oscillates once per period
// between 0.5 and 1. Alpha stays 1.
func PulseColor(base mgl32.Vec3, elapsedSeconds, periodSeconds float64) mgl32.Vec4 {
	if periodSeconds <= 0 {
		return base.Vec4(1)
	}
	phase := 2 * math.Pi * elapsedSeconds / periodSeconds
	k := float32(0.75 + 0.25*math.Sin(phase))
	return base.Mul(k).Vec4(1)
}
