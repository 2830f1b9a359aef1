package profiling

import "time"

// DefaultSmoothing is the weight of the newest sample in SmoothedStopwatch.
const DefaultSmoothing = 0.1

// SmoothedStopwatch measures the interval between consecutive Tick calls and
// keeps an exponential moving average of it, for FPS counters and window
// titles where the raw frame time is too jumpy to read.
type SmoothedStopwatch struct {
	clock       Clock
	last        time.Time
	lastElapsed time.Duration
	smoothedMs  float64
	coefficient float64
	primed      bool
}

// NewSmoothedStopwatch clamps coefficient into (0, 1]; anything outside
// falls back to DefaultSmoothing.
func NewSmoothedStopwatch(clock Clock, coefficient float64) *SmoothedStopwatch {
	if coefficient <= 0 || coefficient > 1 {
		coefficient = DefaultSmoothing
	}
	clock = orDefault(clock)
	return &SmoothedStopwatch{
		clock:       clock,
		last:        clock.Now(),
		coefficient: coefficient,
	}
}

// Reset restarts the interval and forgets the average.
func (s *SmoothedStopwatch) Reset() {
	s.last = s.clock.Now()
	s.lastElapsed = 0
	s.smoothedMs = 0
	s.primed = false
}

// Tick closes the current interval and folds it into the average.
func (s *SmoothedStopwatch) Tick() time.Duration {
	now := s.clock.Now()
	s.lastElapsed = now.Sub(s.last)
	if s.lastElapsed < 0 {
		s.lastElapsed = 0
	}
	s.last = now

	ms := float64(s.lastElapsed) / float64(time.Millisecond)
	if !s.primed {
		s.smoothedMs = ms
		s.primed = true
	} else {
		s.smoothedMs += s.coefficient * (ms - s.smoothedMs)
	}
	return s.lastElapsed
}

func (s *SmoothedStopwatch) LastElapsed() time.Duration {
	return s.lastElapsed
}

func (s *SmoothedStopwatch) LastElapsedMs() uint64 {
	return durationMs(s.lastElapsed)
}

func (s *SmoothedStopwatch) SmoothedElapsedMs() float64 {
	return s.smoothedMs
}
