package profiling

import (
	"fmt"
	"strings"
)

// FrameProfiler splits each frame into named sections and keeps the last
// BufferedFrames frames of per-section timings plus whole-frame durations.
//
// Frames-back offsets count finished frames: 1 is the frame closed by the
// latest StartNewFrame. Offset 0 is never historical; use
// CurrentCumulativeTimingOf for the frame in progress.
//
// A FrameProfiler is meant to be driven from a single goroutine.
type FrameProfiler struct {
	numFramesBuffered int
	sections          *BufferedMultiSectionTimer
	frameTime         *BufferedSectionTimer
}

// NewFrameProfiler takes ownership of sections. The frame timer shares the
// sections' clock and starts counting immediately.
func NewFrameProfiler(framesBuffered int, sections *MultiSectionTimer) *FrameProfiler {
	if framesBuffered < 0 {
		framesBuffered = 0
	}
	return &FrameProfiler{
		numFramesBuffered: framesBuffered,
		sections:          NewBufferedMultiSectionTimer(framesBuffered, sections),
		frameTime:         NewBufferedSectionTimer(framesBuffered, NewSectionTimer(sections.Clock())),
	}
}

// FrameProfilerFromBuilder consumes b and fails when it is incomplete.
func FrameProfilerFromBuilder(framesBuffered int, b *MultiSectionTimerBuilder) (*FrameProfiler, error) {
	timer, err := FromBuilder(b)
	if err != nil {
		return nil, fmt.Errorf("frame profiler: %w", err)
	}
	return NewFrameProfiler(framesBuffered, timer), nil
}

func (p *FrameProfiler) SectionCount() int {
	return p.sections.Len()
}

func (p *FrameProfiler) BufferedFrames() int {
	return p.numFramesBuffered
}

func (p *FrameProfiler) IsKeyValid(key int) bool {
	return p.sections.IsKeyValid(key)
}

func (p *FrameProfiler) NameOf(key int) (string, bool) {
	return p.sections.NameOf(key)
}

func (p *FrameProfiler) Names() []string {
	return p.sections.Names()
}

// FramesRecorded counts StartNewFrame calls since construction or the last
// ClearHistory.
func (p *FrameProfiler) FramesRecorded() uint64 {
	return p.sections.TotalWrites()
}

func (p *FrameProfiler) IsFrameDataAccessible(framesBack int) bool {
	if framesBack <= 0 {
		return false
	}
	return p.frameTime.IsHistoryAvailable(framesBack - 1)
}

// StartNewFrame closes the current frame: section totals go to history and
// are cleared, and the whole-frame duration since the previous call is
// recorded.
func (p *FrameProfiler) StartNewFrame() {
	p.sections.PushStateToHistory()
	p.sections.ClearElapsedOfAll()
	p.frameTime.SaveElapsed(true)
	p.frameTime.PushStateToHistory()
}

func (p *FrameProfiler) BeginMeasureOf(key int) bool {
	return p.sections.SetBeginningNowOf(key)
}

// EndMeasureOf adds the time since the matching BeginMeasureOf to the
// section's total for the current frame.
func (p *FrameProfiler) EndMeasureOf(key int) bool {
	return p.sections.AddSaveElapsedOf(key, false)
}

// Measure begins a measurement and returns the function that ends it:
//
//	defer profiler.Measure(keyPhysics)()
func (p *FrameProfiler) Measure(key int) func() {
	if !p.BeginMeasureOf(key) {
		return func() {}
	}
	return func() { p.EndMeasureOf(key) }
}

func (p *FrameProfiler) CurrentCumulativeTimingOf(key int) (uint64, bool) {
	return p.sections.SavedElapsedUsOf(key)
}

func (p *FrameProfiler) HistoricalTimingOf(key int, framesBack int) (uint64, bool) {
	if framesBack <= 0 {
		return 0, false
	}
	return p.sections.HistoricalElapsedUsOf(key, framesBack)
}

func (p *FrameProfiler) HistoricalFrametime(framesBack int) (uint64, bool) {
	if framesBack <= 0 {
		return 0, false
	}
	return p.frameTime.HistoricalElapsedUs(framesBack - 1)
}

// LastFrametime is the duration of the most recently finished frame.
func (p *FrameProfiler) LastFrametime() (uint64, bool) {
	return p.HistoricalFrametime(1)
}

// ClearHistory forgets every recorded frame. Accumulators of the frame in
// progress are kept.
func (p *FrameProfiler) ClearHistory() {
	p.sections.ClearHistory()
	p.frameTime.ClearHistory()
}

func (p *FrameProfiler) frametimeSamples(frames int) []float64 {
	var out []float64
	for back := 1; back <= frames; back++ {
		us, ok := p.HistoricalFrametime(back)
		if !ok {
			break
		}
		out = append(out, float64(us))
	}
	return out
}

func (p *FrameProfiler) timingSamples(key int, frames int) []float64 {
	var out []float64
	for back := 1; back <= frames; back++ {
		us, ok := p.HistoricalTimingOf(key, back)
		if !ok {
			break
		}
		out = append(out, float64(us))
	}
	return out
}

func mean(samples []float64) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples)), true
}

// AverageFrametime averages up to frames recorded frame durations, in
// microseconds. It fails when nothing is recorded yet.
func (p *FrameProfiler) AverageFrametime(frames int) (float64, bool) {
	return mean(p.frametimeSamples(frames))
}

func (p *FrameProfiler) AverageTimingOf(key int, frames int) (float64, bool) {
	if !p.IsKeyValid(key) {
		return 0, false
	}
	return mean(p.timingSamples(key, frames))
}

func (p *FrameProfiler) StatisticsOfFrametime(frames int) (Statistics, bool) {
	samples := p.frametimeSamples(frames)
	if len(samples) == 0 {
		return Statistics{}, false
	}
	return ComputeStatistics(samples), true
}

func (p *FrameProfiler) StatisticsOf(key int, frames int) (Statistics, bool) {
	samples := p.timingSamples(key, frames)
	if len(samples) == 0 {
		return Statistics{}, false
	}
	return ComputeStatistics(samples), true
}

// FrameSnapshot holds every section of one finished frame.
type FrameSnapshot struct {
	FramesBack  int
	FrametimeUs uint64
	SectionsUs  []uint64
}

func (p *FrameProfiler) Snapshot(framesBack int) (FrameSnapshot, bool) {
	frametime, ok := p.HistoricalFrametime(framesBack)
	if !ok {
		return FrameSnapshot{}, false
	}
	snap := FrameSnapshot{
		FramesBack:  framesBack,
		FrametimeUs: frametime,
		SectionsUs:  make([]uint64, p.SectionCount()),
	}
	for key := range snap.SectionsUs {
		snap.SectionsUs[key], _ = p.HistoricalTimingOf(key, framesBack)
	}
	return snap, true
}

// Report renders the current, last and average timings of every section.
func (p *FrameProfiler) Report() string {
	var sb strings.Builder

	sb.WriteString("Timings (CPU):\n")
	if avg, ok := p.AverageFrametime(p.numFramesBuffered); ok {
		last, _ := p.LastFrametime()
		sb.WriteString(fmt.Sprintf("  %-15s: last %.2f ms, avg %.2f ms\n", "frame", usToMs(float64(last)), usToMs(avg)))
	} else {
		sb.WriteString(fmt.Sprintf("  %-15s: no frames recorded\n", "frame"))
	}
	for key := 0; key < p.SectionCount(); key++ {
		name, _ := p.NameOf(key)
		current, _ := p.CurrentCumulativeTimingOf(key)
		last, _ := p.HistoricalTimingOf(key, 1)
		avg, _ := p.AverageTimingOf(key, p.numFramesBuffered)
		sb.WriteString(fmt.Sprintf("  %-15s: now %.2f ms, last %.2f ms, avg %.2f ms\n",
			name, usToMs(float64(current)), usToMs(float64(last)), usToMs(avg)))
	}
	return sb.String()
}

func usToMs(us float64) float64 {
	return us / 1000.0
}
