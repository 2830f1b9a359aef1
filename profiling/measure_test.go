package profiling

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestProfileInvoke(t *testing.T) {
	clk := clockwork.NewFakeClock()
	out, took := ProfileInvoke(clk, func() string {
		clk.Advance(12 * time.Millisecond)
		return "done"
	})
	assert.Equal(t, "done", out)
	assert.Equal(t, 12*time.Millisecond, took)
}

func TestProfileInvokeDiscardResult(t *testing.T) {
	clk := clockwork.NewFakeClock()
	took := ProfileInvokeDiscardResult(clk, func() {
		clk.Advance(750 * time.Microsecond)
	})
	assert.Equal(t, 750*time.Microsecond, took)

	took = ProfileInvokeDiscardResult(nil, func() {})
	assert.GreaterOrEqual(t, took, time.Duration(0))
}

func TestProfileInUnits(t *testing.T) {
	const allowedNoiseMs = 50
	us := ProfileInMicrosecs(func() { time.Sleep(2 * time.Millisecond) })
	assert.GreaterOrEqual(t, us, uint64(2000))

	ms := ProfileInMillisecs(func() { time.Sleep(2 * time.Millisecond) })
	assert.GreaterOrEqual(t, ms, uint64(2))
	assert.LessOrEqual(t, ms, uint64(2+allowedNoiseMs))
}
