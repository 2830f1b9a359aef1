// Package overlay rasterizes frame profiler statistics into an image: the
// text report on top and a frametime bar graph along the bottom.
package overlay

import (
	"image"
	"image/draw"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/waterleaf/waterleaf/profiling"
)

const (
	DefaultWidth  = 480
	DefaultHeight = 320
	DefaultBudget = time.Second / 60

	graphHeight = 80
	barWidth    = 3
	margin      = 4
)

type Options struct {
	Width  int
	Height int
	// Budget is the frame time drawn as the graph's middle line.
	Budget     time.Duration
	Face       font.Face
	Background mgl32.Vec4
	Foreground mgl32.Vec4
}

type Overlay struct {
	opts Options
}

func New(opts Options) *Overlay {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= graphHeight {
		opts.Height = DefaultHeight
	}
	if opts.Budget <= 0 {
		opts.Budget = DefaultBudget
	}
	if opts.Face == nil {
		opts.Face = basicfont.Face7x13
	}
	if opts.Background == (mgl32.Vec4{}) {
		opts.Background = mgl32.Vec4{0, 0, 0, 0.75}
	}
	if opts.Foreground == (mgl32.Vec4{}) {
		opts.Foreground = mgl32.Vec4{1, 1, 1, 1}
	}
	return &Overlay{opts: opts}
}

func (o *Overlay) Bounds() image.Rectangle {
	return image.Rect(0, 0, o.opts.Width, o.opts.Height)
}

// Draw renders text below the report lines of p. Lines that do not fit are
// dropped.
func (o *Overlay) Draw(p *profiling.FrameProfiler, text string) *image.RGBA {
	img := image.NewRGBA(o.Bounds())
	draw.Draw(img, img.Bounds(), image.NewUniform(ToRGBA(o.opts.Background)), image.Point{}, draw.Src)

	lines := strings.Split(strings.TrimRight(p.Report(), "\n"), "\n")
	if text != "" {
		lines = append(lines, strings.Split(strings.TrimRight(text, "\n"), "\n")...)
	}
	o.drawLines(img, lines)
	o.drawGraph(img, p)
	return img
}

func (o *Overlay) drawLines(img *image.RGBA, lines []string) {
	metrics := o.opts.Face.Metrics()
	lineHeight := metrics.Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = 13
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ToRGBA(o.opts.Foreground)),
		Face: o.opts.Face,
	}

	textBottom := o.opts.Height - graphHeight - margin
	y := margin + metrics.Ascent.Ceil()
	for _, line := range lines {
		if y > textBottom {
			return
		}
		d.Dot = fixed.P(margin, y)
		d.DrawString(line)
		y += lineHeight
	}
}

// drawGraph puts the newest frame at the right edge. Bar height maps twice
// the budget to the full graph height.
func (o *Overlay) drawGraph(img *image.RGBA, p *profiling.FrameProfiler) {
	budgetUs := uint64(o.opts.Budget / time.Microsecond)
	top := o.opts.Height - graphHeight
	bottom := o.opts.Height

	maxBars := (o.opts.Width - 2*margin) / barWidth
	for back := 1; back <= maxBars; back++ {
		us, ok := p.HistoricalFrametime(back)
		if !ok {
			break
		}
		h := BarHeight(us, budgetUs, graphHeight)
		x1 := o.opts.Width - margin - (back-1)*barWidth
		x0 := x1 - barWidth + 1
		bar := image.Rect(x0, bottom-h, x1, bottom)
		draw.Draw(img, bar, image.NewUniform(ToRGBA(BudgetColor(us, budgetUs))), image.Point{}, draw.Src)
	}

	budgetLine := image.Rect(0, top+graphHeight/2, o.opts.Width, top+graphHeight/2+1)
	draw.Draw(img, budgetLine, image.NewUniform(ToRGBA(o.opts.Foreground)), image.Point{}, draw.Over)
}

// BarHeight scales us so that twice budgetUs fills maxPx pixels.
func BarHeight(us, budgetUs uint64, maxPx int) int {
	if budgetUs == 0 || us >= 2*budgetUs {
		return maxPx
	}
	return int(us * uint64(maxPx) / (2 * budgetUs))
}
