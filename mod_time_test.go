package waterleaf

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeModule(t *testing.T) {
	clk := clockwork.NewFakeClock()
	app := NewApp()
	app.UseModules(TimeModule{Clock: clk})

	tm, ok := Resource[Time](app)
	require.True(t, ok)
	assert.Equal(t, clk.Now(), tm.Time)

	app.Step()
	assert.Zero(t, tm.Dt)
	assert.Equal(t, uint64(1), tm.Frame)

	clk.Advance(5 * time.Millisecond)
	app.Step()
	assert.Equal(t, 5*time.Millisecond, tm.Dt)
	assert.Equal(t, clk.Now(), tm.Time)
	assert.Equal(t, uint64(2), tm.Frame)
}

func TestTimeModule_DefaultClock(t *testing.T) {
	app := NewApp()
	app.UseModules(TimeModule{})
	app.Step()

	tm, ok := Resource[Time](app)
	require.True(t, ok)
	assert.GreaterOrEqual(t, tm.Dt, time.Duration(0))
}
