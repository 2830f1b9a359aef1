package profiling

import (
	"errors"
	"time"
)

var (
	ErrIncompleteBuilder = errors.New("profiling: not every section was named")
	ErrBuilderConsumed   = errors.New("profiling: builder was already consumed")
)

// MultiSectionTimerBuilder collects the display names of a fixed number of
// sections. It is complete once every key in [0, n) has been named.
type MultiSectionTimerBuilder struct {
	clock            Clock
	timers           []SectionTimer
	names            []*string
	leftToInitialize int
	consumed         bool
}

func NewMultiSectionTimerBuilder(n int) *MultiSectionTimerBuilder {
	if n < 0 {
		n = 0
	}
	return &MultiSectionTimerBuilder{
		clock:            defaultClock,
		timers:           make([]SectionTimer, n),
		names:            make([]*string, n),
		leftToInitialize: n,
	}
}

// WithClock sets the clock handed to every section. Sections named before
// the call keep the clock they were created with.
func (b *MultiSectionTimerBuilder) WithClock(clock Clock) *MultiSectionTimerBuilder {
	b.clock = orDefault(clock)
	return b
}

// WithName names a section and resets its timer. Keys outside [0, n) are
// ignored and never affect completeness.
func (b *MultiSectionTimerBuilder) WithName(key int, name string) *MultiSectionTimerBuilder {
	if b.consumed || key < 0 || key >= len(b.names) {
		return b
	}
	if b.names[key] == nil {
		b.leftToInitialize--
	}
	b.names[key] = &name
	b.timers[key] = NewSectionTimer(b.clock)
	return b
}

func (b *MultiSectionTimerBuilder) IsComplete() bool {
	return !b.consumed && b.leftToInitialize == 0
}

func (b *MultiSectionTimerBuilder) LeftToInitialize() int {
	return b.leftToInitialize
}

func (b *MultiSectionTimerBuilder) Len() int {
	return len(b.names)
}

// MultiSectionTimer is a fixed set of named SectionTimers addressed by key.
// It has a single owner; nothing in this package copies it.
type MultiSectionTimer struct {
	clock  Clock
	timers []SectionTimer
	names  []string
}

// FromBuilder consumes a complete builder. An incomplete builder yields
// ErrIncompleteBuilder and stays usable; a consumed one yields
// ErrBuilderConsumed.
func FromBuilder(b *MultiSectionTimerBuilder) (*MultiSectionTimer, error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	if !b.IsComplete() {
		return nil, ErrIncompleteBuilder
	}
	names := make([]string, len(b.names))
	for i, n := range b.names {
		names[i] = *n
	}
	m := &MultiSectionTimer{
		clock:  b.clock,
		timers: b.timers,
		names:  names,
	}
	b.timers, b.names, b.consumed = nil, nil, true
	return m, nil
}

func (m *MultiSectionTimer) Len() int {
	return len(m.timers)
}

func (m *MultiSectionTimer) Clock() Clock {
	return m.clock
}

func (m *MultiSectionTimer) IsKeyValid(key int) bool {
	return key >= 0 && key < len(m.timers)
}

func (m *MultiSectionTimer) NameOf(key int) (string, bool) {
	if !m.IsKeyValid(key) {
		return "", false
	}
	return m.names[key], true
}

// Names returns a copy of all section names in key order.
func (m *MultiSectionTimer) Names() []string {
	return append([]string(nil), m.names...)
}

func (m *MultiSectionTimer) BeginningOf(key int) (time.Time, bool) {
	if !m.IsKeyValid(key) {
		return time.Time{}, false
	}
	return m.timers[key].Beginning(), true
}

func (m *MultiSectionTimer) SetBeginningOf(key int, tp time.Time) bool {
	if !m.IsKeyValid(key) {
		return false
	}
	m.timers[key].SetBeginning(tp)
	return true
}

func (m *MultiSectionTimer) SetBeginningNowOf(key int) bool {
	if !m.IsKeyValid(key) {
		return false
	}
	m.timers[key].SetBeginningNow()
	return true
}

func (m *MultiSectionTimer) SetBeginningOfAll(tp time.Time) {
	for i := range m.timers {
		m.timers[i].SetBeginning(tp)
	}
}

func (m *MultiSectionTimer) SetBeginningNowOfAll() {
	for i := range m.timers {
		m.timers[i].SetBeginningNow()
	}
}

func (m *MultiSectionTimer) SaveElapsedOf(key int, resetBeginning bool) bool {
	if !m.IsKeyValid(key) {
		return false
	}
	m.timers[key].SaveElapsed(resetBeginning)
	return true
}

func (m *MultiSectionTimer) SaveElapsedOfAll(resetBeginning bool) {
	for i := range m.timers {
		m.timers[i].SaveElapsed(resetBeginning)
	}
}

func (m *MultiSectionTimer) AddSaveElapsedOf(key int, resetBeginning bool) bool {
	if !m.IsKeyValid(key) {
		return false
	}
	m.timers[key].AddSaveElapsed(resetBeginning)
	return true
}

func (m *MultiSectionTimer) AddSaveElapsedOfAll(resetBeginning bool) {
	for i := range m.timers {
		m.timers[i].AddSaveElapsed(resetBeginning)
	}
}

func (m *MultiSectionTimer) ClearElapsedOf(key int) bool {
	if !m.IsKeyValid(key) {
		return false
	}
	m.timers[key].ClearElapsed()
	return true
}

func (m *MultiSectionTimer) ClearElapsedOfAll() {
	for i := range m.timers {
		m.timers[i].ClearElapsed()
	}
}

func (m *MultiSectionTimer) SavedElapsedOf(key int) (time.Duration, bool) {
	if !m.IsKeyValid(key) {
		return 0, false
	}
	return m.timers[key].SavedElapsed(), true
}

func (m *MultiSectionTimer) SavedElapsedUsOf(key int) (uint64, bool) {
	if !m.IsKeyValid(key) {
		return 0, false
	}
	return m.timers[key].SavedElapsedUs(), true
}

func (m *MultiSectionTimer) SavedElapsedMsOf(key int) (uint64, bool) {
	if !m.IsKeyValid(key) {
		return 0, false
	}
	return m.timers[key].SavedElapsedMs(), true
}
