package waterleaf

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/waterleaf/waterleaf/profiling"
)

const DefaultFramesBuffered = 120

// Sections measured by the built-in modules when they are listed in
// FrameProfilerModule.Sections.
const (
	SectionGpuSubmit = "gpu submit"
	SectionOverlay   = "overlay"
)

var ErrDuplicateSection = errors.New("duplicate profiler section")

// FrameStart runs before Prelude and opens a new profiler frame.
var FrameStart = Stage{Name: "FrameStart", UpdateType: DynamicUpdate}

// Profiler is the App resource wrapping a FrameProfiler with lookups by
// section name and free-form counters.
type Profiler struct {
	Session uuid.UUID
	Frames  *profiling.FrameProfiler

	keys   map[string]int
	counts map[string]int
}

// NewProfiler names one section per entry of sections, in order.
func NewProfiler(framesBuffered int, clock profiling.Clock, sections ...string) (*Profiler, error) {
	keys := make(map[string]int, len(sections))
	b := profiling.NewMultiSectionTimerBuilder(len(sections)).WithClock(clock)
	for key, name := range sections {
		if _, ok := keys[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSection, name)
		}
		keys[name] = key
		b.WithName(key, name)
	}

	frames, err := profiling.FrameProfilerFromBuilder(framesBuffered, b)
	if err != nil {
		return nil, err
	}
	return &Profiler{
		Session: uuid.New(),
		Frames:  frames,
		keys:    keys,
		counts:  make(map[string]int),
	}, nil
}

func (p *Profiler) KeyOf(name string) (int, bool) {
	key, ok := p.keys[name]
	return key, ok
}

func (p *Profiler) Begin(name string) bool {
	key, ok := p.keys[name]
	return ok && p.Frames.BeginMeasureOf(key)
}

func (p *Profiler) End(name string) bool {
	key, ok := p.keys[name]
	return ok && p.Frames.EndMeasureOf(key)
}

// Measure is the by-name form of FrameProfiler.Measure. Unknown names
// measure nothing.
func (p *Profiler) Measure(name string) func() {
	key, ok := p.keys[name]
	if !ok {
		return func() {}
	}
	return p.Frames.Measure(key)
}

func (p *Profiler) SetCount(name string, count int) {
	p.counts[name] = count
}

func (p *Profiler) Count(name string) (int, bool) {
	c, ok := p.counts[name]
	return c, ok
}

// StatsString is the timing report followed by the counters sorted by name.
func (p *Profiler) StatsString() string {
	var sb strings.Builder
	sb.WriteString(p.Frames.Report())

	if len(p.counts) == 0 {
		return sb.String()
	}
	sb.WriteString("\nStats:\n")
	keys := make([]string, 0, len(p.counts))
	for k := range p.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %-15s: %d\n", k, p.counts[k]))
	}
	return sb.String()
}

// FrameProfilerModule installs a *Profiler resource and closes a profiler
// frame at the start of every App frame. With ProfileStages every stage
// gets its own section, ahead of Sections.
type FrameProfilerModule struct {
	Sections       []string
	FramesBuffered int
	ProfileStages  bool
	// ReportEvery logs the report every that many frames; 0 disables it.
	ReportEvery int
	Clock       profiling.Clock
}

func (m FrameProfilerModule) Install(app *App, cmd *Commands) {
	framesBuffered := m.FramesBuffered
	if framesBuffered <= 0 {
		framesBuffered = DefaultFramesBuffered
	}

	var sections []string
	if m.ProfileStages {
		for _, stage := range app.Stages() {
			sections = append(sections, stage.Name)
		}
	}
	sections = append(sections, m.Sections...)

	profiler, err := NewProfiler(framesBuffered, m.Clock, sections...)
	if err != nil {
		panic(fmt.Errorf("frame profiler module: %w", err))
	}
	cmd.AddResources(profiler)
	if m.ProfileStages {
		app.stageProfiler = profiler
	}
	app.Logger().Debugf("profiler session %s: %d sections, %d frames buffered", profiler.Session, len(sections), framesBuffered)

	app.UseStage(FrameStart, BeforeStage(Prelude))
	cmd.UseSystem(System(startFrameSystem).InStage(FrameStart))

	if m.ReportEvery > 0 {
		every := uint64(m.ReportEvery)
		cmd.UseSystem(System(func(p *Profiler) {
			if n := p.Frames.FramesRecorded(); n > 0 && n%every == 0 {
				app.Logger().Infof("frame %d\n%s", n, p.StatsString())
			}
		}).InStage(Finale))
	}
}

func startFrameSystem(p *Profiler) {
	p.Frames.StartNewFrame()
}
