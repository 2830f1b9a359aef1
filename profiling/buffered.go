package profiling

// BufferedSectionTimer is a SectionTimer that can snapshot its saved value
// into a ring of microsecond records.
type BufferedSectionTimer struct {
	SectionTimer
	history *Ring[uint64]
}

func NewBufferedSectionTimer(capacity int, timer SectionTimer) *BufferedSectionTimer {
	return &BufferedSectionTimer{
		SectionTimer: timer,
		history:      NewRing[uint64](capacity),
	}
}

// PushStateToHistory records the current SavedElapsedUs.
func (t *BufferedSectionTimer) PushStateToHistory() {
	t.history.Push(t.SavedElapsedUs())
}

func (t *BufferedSectionTimer) ClearHistory() {
	t.history.Clear()
}

func (t *BufferedSectionTimer) HistoryCapacity() int {
	return t.history.Capacity()
}

func (t *BufferedSectionTimer) HistoryLen() int {
	return t.history.Len()
}

// IsHistoryAvailable reports whether the record pushed offset pushes before
// the most recent one is still held.
func (t *BufferedSectionTimer) IsHistoryAvailable(offset int) bool {
	return t.history.IsAvailable(offset)
}

// HistoricalElapsedUs reads a record; offset 0 is the most recent push.
func (t *BufferedSectionTimer) HistoricalElapsedUs(offset int) (uint64, bool) {
	return t.history.Read(offset)
}

// BufferedMultiSectionTimer records a snapshot of every section once per
// tick. All sections share one cursor, so a historical offset always refers
// to the same tick for every key.
type BufferedMultiSectionTimer struct {
	*MultiSectionTimer

	capacity    int
	records     []uint64
	cursor      int
	totalWrites uint64
}

// NewBufferedMultiSectionTimer takes ownership of timer. The caller must not
// keep using it directly.
func NewBufferedMultiSectionTimer(capacity int, timer *MultiSectionTimer) *BufferedMultiSectionTimer {
	if capacity < 0 {
		capacity = 0
	}
	return &BufferedMultiSectionTimer{
		MultiSectionTimer: timer,
		capacity:          capacity,
		records:           make([]uint64, capacity*timer.Len()),
	}
}

// BufferedMultiSectionTimerFromBuilder consumes b like FromBuilder.
func BufferedMultiSectionTimerFromBuilder(capacity int, b *MultiSectionTimerBuilder) (*BufferedMultiSectionTimer, error) {
	timer, err := FromBuilder(b)
	if err != nil {
		return nil, err
	}
	return NewBufferedMultiSectionTimer(capacity, timer), nil
}

// PushStateToHistory writes SavedElapsedUsOf for every key, in key order,
// into the current cursor slot and advances the cursor.
func (b *BufferedMultiSectionTimer) PushStateToHistory() {
	b.totalWrites++
	if b.capacity == 0 {
		return
	}
	n := b.Len()
	base := b.cursor * n
	for key := 0; key < n; key++ {
		b.records[base+key] = b.timers[key].SavedElapsedUs()
	}
	b.cursor++
	if b.cursor == b.capacity {
		b.cursor = 0
	}
}

func (b *BufferedMultiSectionTimer) ClearHistory() {
	b.cursor = 0
	b.totalWrites = 0
}

func (b *BufferedMultiSectionTimer) HistoryCapacity() int {
	return b.capacity
}

func (b *BufferedMultiSectionTimer) HistoryLen() int {
	if b.totalWrites < uint64(b.capacity) {
		return int(b.totalWrites)
	}
	return b.capacity
}

func (b *BufferedMultiSectionTimer) TotalWrites() uint64 {
	return b.totalWrites
}

// IsHistoryAvailable uses the HistoricalElapsedUsOf offset convention:
// offset 0 is the live value and is always available.
func (b *BufferedMultiSectionTimer) IsHistoryAvailable(offset int) bool {
	if offset == 0 {
		return true
	}
	back := offset - 1
	return back >= 0 && back < b.capacity && uint64(back) < b.totalWrites
}

// HistoricalElapsedUsOf returns the value of key offset ticks ago. Offset 0
// is the live accumulator (identical to SavedElapsedUsOf); offset k > 0 is
// the k-th most recent push.
func (b *BufferedMultiSectionTimer) HistoricalElapsedUsOf(key int, offset int) (uint64, bool) {
	if !b.IsKeyValid(key) || !b.IsHistoryAvailable(offset) {
		return 0, false
	}
	if offset == 0 {
		return b.SavedElapsedUsOf(key)
	}
	slot := b.cursor - offset
	if slot < 0 {
		slot += b.capacity
	}
	return b.records[slot*b.Len()+key], true
}
