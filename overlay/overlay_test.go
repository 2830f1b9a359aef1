package overlay

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waterleaf/waterleaf/profiling"
)

func newProfiler(t *testing.T, clk clockwork.FakeClock, frametimes ...time.Duration) *profiling.FrameProfiler {
	t.Helper()
	p, err := profiling.FrameProfilerFromBuilder(16,
		profiling.NewMultiSectionTimerBuilder(2).WithClock(clk).WithName(0, "update").WithName(1, "render"))
	require.NoError(t, err)
	for _, d := range frametimes {
		p.BeginMeasureOf(0)
		clk.Advance(d)
		p.EndMeasureOf(0)
		p.StartNewFrame()
	}
	return p
}

func TestNew_Defaults(t *testing.T) {
	o := New(Options{})
	assert.Equal(t, image.Rect(0, 0, DefaultWidth, DefaultHeight), o.Bounds())
	assert.Equal(t, DefaultBudget, o.opts.Budget)
	assert.NotNil(t, o.opts.Face)
}

func TestBarHeight(t *testing.T) {
	assert.Equal(t, 0, BarHeight(0, 16_000, 80))
	assert.Equal(t, 40, BarHeight(16_000, 16_000, 80))
	assert.Equal(t, 80, BarHeight(32_000, 16_000, 80))
	assert.Equal(t, 80, BarHeight(500_000, 16_000, 80))
	assert.Equal(t, 80, BarHeight(1, 0, 80))
}

func TestBudgetColor(t *testing.T) {
	assert.Equal(t, Good, BudgetColor(0, 16_000))
	assert.Equal(t, Bad, BudgetColor(32_000, 16_000))
	assert.Equal(t, Bad, BudgetColor(1, 0))

	mid := BudgetColor(16_000, 16_000)
	assert.True(t, mid.ApproxEqualThreshold(mgl32.Vec4{0.55, 0.5, 0.25, 1}, 1e-5), "got %v", mid)
}

func TestToRGBA_Clamps(t *testing.T) {
	c := ToRGBA(mgl32.Vec4{2, -1, 0.5, 1})
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(0), c.G)
	assert.Equal(t, uint8(128), c.B)
	assert.Equal(t, uint8(255), c.A)
}

func TestDraw_GraphBars(t *testing.T) {
	clk := clockwork.NewFakeClock()
	p := newProfiler(t, clk, 8*time.Millisecond, 40*time.Millisecond)

	o := New(Options{Width: 200, Height: 200, Budget: 16 * time.Millisecond})
	img := o.Draw(p, "")

	bottom := 199
	newest := o.opts.Width - margin - 1
	older := newest - barWidth

	assert.Equal(t, ToRGBA(Bad), img.RGBAAt(newest, bottom), "40ms frame is over twice the budget")
	assert.Equal(t, ToRGBA(BudgetColor(8000, 16000)), img.RGBAAt(older, bottom))

	// the 8ms bar covers a quarter of the graph
	assert.Equal(t, ToRGBA(o.opts.Background), img.RGBAAt(older, bottom-graphHeight/4-1))
	assert.Equal(t, ToRGBA(o.opts.Background), img.RGBAAt(margin, bottom), "no bars for frames never recorded")
}

func TestDraw_TextIsRendered(t *testing.T) {
	clk := clockwork.NewFakeClock()
	p := newProfiler(t, clk, time.Millisecond)

	o := New(Options{Width: 300, Height: 200})
	img := o.Draw(p, "extra line")

	bg := ToRGBA(o.opts.Background)
	textArea := image.Rect(0, 0, o.opts.Width, o.opts.Height-graphHeight-margin)
	painted := 0
	for y := textArea.Min.Y; y < textArea.Max.Y; y++ {
		for x := textArea.Min.X; x < textArea.Max.X; x++ {
			if img.RGBAAt(x, y) != bg {
				painted++
			}
		}
	}
	assert.Greater(t, painted, 100)
}

func TestWritePNG_RoundTripsBounds(t *testing.T) {
	clk := clockwork.NewFakeClock()
	o := New(Options{Width: 64, Height: 120})
	img := o.Draw(newProfiler(t, clk, time.Millisecond), "")

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, img))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestSavePNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	session := uuid.New()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	path, err := SavePNG(dir, session, 42, img)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SnapshotName(session, 42)), path)
	assert.Contains(t, path, session.String())
	assert.Contains(t, path, "000042")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}
