package overlay

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	Good = mgl32.Vec4{0.2, 0.8, 0.3, 1}
	Bad  = mgl32.Vec4{0.9, 0.2, 0.2, 1}
)

// ToRGBA clamps every channel into [0, 1] first.
func ToRGBA(c mgl32.Vec4) color.RGBA {
	ch := func(v float32) uint8 {
		return uint8(math.Round(float64(mgl32.Clamp(v, 0, 1)) * 255))
	}
	return color.RGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: ch(c[3])}
}

// BudgetColor goes from Good at zero to Bad at twice the budget.
func BudgetColor(us, budgetUs uint64) mgl32.Vec4 {
	if budgetUs == 0 || us >= 2*budgetUs {
		return Bad
	}
	t := float32(us) / float32(2*budgetUs)
	return Good.Add(Bad.Sub(Good).Mul(t))
}
