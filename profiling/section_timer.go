package profiling

import "time"

// SectionTimer is a single start/stop accumulation window.
//
// The beginning only moves through SetBeginning* and the reset flag of the
// save calls; the saved elapsed value only changes through SaveElapsed,
// AddSaveElapsed and ClearElapsed.
type SectionTimer struct {
	clock     Clock
	beginning time.Time
	saved     time.Duration
}

// NewSectionTimer returns a timer that begins now. A nil clock selects
// DefaultClock.
func NewSectionTimer(clock Clock) SectionTimer {
	clock = orDefault(clock)
	return SectionTimer{
		clock:     clock,
		beginning: clock.Now(),
	}
}

func (t *SectionTimer) now() time.Time {
	if t.clock == nil {
		t.clock = defaultClock
	}
	return t.clock.Now()
}

func (t *SectionTimer) Beginning() time.Time {
	return t.beginning
}

// SetBeginning moves the beginning to tp. A beginning in the future is
// clamped to now, so elapsed values are never negative.
func (t *SectionTimer) SetBeginning(tp time.Time) {
	now := t.now()
	if tp.After(now) {
		tp = now
	}
	t.beginning = tp
}

func (t *SectionTimer) SetBeginningNow() {
	t.beginning = t.now()
}

// SaveElapsed overwrites the saved value with the time since the beginning.
// With resetBeginning the beginning moves to the same instant that was used
// for the measurement.
func (t *SectionTimer) SaveElapsed(resetBeginning bool) {
	now := t.now()
	t.saved = now.Sub(t.beginning)
	if resetBeginning {
		t.beginning = now
	}
}

// AddSaveElapsed adds the time since the beginning to the saved value.
func (t *SectionTimer) AddSaveElapsed(resetBeginning bool) {
	now := t.now()
	t.saved += now.Sub(t.beginning)
	if resetBeginning {
		t.beginning = now
	}
}

func (t *SectionTimer) ClearElapsed() {
	t.saved = 0
}

func (t *SectionTimer) SavedElapsed() time.Duration {
	return t.saved
}

// SavedElapsedUs truncates the saved value to whole microseconds.
func (t *SectionTimer) SavedElapsedUs() uint64 {
	return durationUs(t.saved)
}

// SavedElapsedMs truncates the saved value to whole milliseconds.
func (t *SectionTimer) SavedElapsedMs() uint64 {
	return durationMs(t.saved)
}
