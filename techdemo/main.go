package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/tevino/abool/v2"

	"github.com/waterleaf/waterleaf"
	"github.com/waterleaf/waterleaf/overlay"
	"github.com/waterleaf/waterleaf/profiling"
)

const sectionSimulate = "simulate"

func init() {
	runtime.LockOSThread()
}

var quit = abool.NewBool(false)

func main() {
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	frames := flag.Int("frames", waterleaf.DefaultFramesBuffered, "number of frames kept by the profiler")
	reportEvery := flag.Int("report", 300, "log the profiler report every N frames, 0 disables")
	overlayDir := flag.String("overlay-dir", "", "directory for profiler overlay PNG snapshots")
	snapshotEvery := flag.Int("snapshot-every", 0, "write an overlay snapshot every N frames, 0 only on exit")
	fontPath := flag.String("font", "", "TTF/OTF font for the overlay, built-in bitmap font when empty")
	stats := flag.String("statsview", "", "serve runtime stats on this address, e.g. localhost:18066")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *stats != "" {
		viewer.SetConfiguration(viewer.WithAddr(*stats))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		fmt.Printf("stats server available at http://%s/debug/statsview\n", *stats)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		quit.Set()
	}()

	overlayOpts := overlay.Options{}
	if *fontPath != "" {
		face, err := overlay.LoadFace(*fontPath, 13)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		overlayOpts.Face = face
	}

	app := waterleaf.NewAppBuilder().
		UseModule(
			waterleaf.LoggingModule{Prefix: "techdemo", Debug: *debug},
			waterleaf.TimeModule{},
			waterleaf.FrameProfilerModule{
				Sections:       []string{sectionSimulate, waterleaf.SectionGpuSubmit, waterleaf.SectionOverlay},
				FramesBuffered: *frames,
				ProfileStages:  true,
				ReportEvery:    *reportEvery,
			},
			waterleaf.OverlayModule{
				Dir:     *overlayDir,
				Every:   *snapshotEvery,
				Options: overlayOpts,
			},
		).
		Build()
	app.UseClearRenderer(*width, *height, "Waterleaf techdemo")
	app.UseModules(waterleaf.ProfilerHotkeysModule{})
	app.UseSystem(waterleaf.System(quitSystem).InStage(waterleaf.Prelude))
	app.UseSystem(waterleaf.System(simulateSystem))

	app.Run()

	if ws, ok := waterleaf.Resource[waterleaf.WindowState](app); ok {
		ws.Window.Destroy()
	}
	if p, ok := waterleaf.Resource[waterleaf.Profiler](app); ok {
		printSummary(p)
	}
}

func quitSystem(cmd *waterleaf.Commands) {
	if quit.IsSet() {
		cmd.Exit()
	}
}

// simulateSystem burns a frame-dependent amount of CPU so the profiler has
// something to show.
func simulateSystem(p *waterleaf.Profiler, t *waterleaf.Time) {
	defer p.Measure(sectionSimulate)()

	n := 20_000 + int(t.Frame%60)*1_000
	acc := 0.0
	for i := 0; i < n; i++ {
		acc += math.Sin(float64(i))
	}
	p.SetCount("simulate steps", n)
	if math.IsNaN(acc) {
		p.SetCount("simulate NaN", 1)
	}
}

func printSummary(p *waterleaf.Profiler) {
	title := color.New(color.FgCyan, color.Bold)
	title.Printf("profiler session %s, %d frames\n", p.Session, p.Frames.FramesRecorded())

	st, ok := p.Frames.StatisticsOfFrametime(p.Frames.BufferedFrames())
	if !ok {
		fmt.Println("no frames recorded")
		return
	}
	budget := uint64(overlay.DefaultBudget / time.Microsecond)
	line := color.New(color.FgGreen)
	if st.Median > float64(budget) {
		line = color.New(color.FgRed)
	}
	line.Printf("frametime median %.2f ms, mean %.2f ms, std %.2f ms over %d frames\n",
		st.Median/1000, st.Mean/1000, st.Std/1000, st.Samples)

	for key, name := range p.Frames.Names() {
		avg, ok := p.Frames.AverageTimingOf(key, p.Frames.BufferedFrames())
		if !ok {
			continue
		}
		fmt.Printf("  %-15s avg %.3f ms\n", name, avg/1000)
	}
	fmt.Printf("report assembled in %d us\n", profiling.ProfileInMicrosecs(func() { _ = p.StatsString() }))
}
