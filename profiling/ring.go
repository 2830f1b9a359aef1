package profiling

// Ring is a fixed-capacity circular history of values.
//
// Availability is decided by the write counter, not by storage contents:
// offset k back from the most recent write is readable iff k < capacity and
// k < total writes. Clear therefore hides stale values without touching them.
type Ring[V any] struct {
	storage     []V
	cursor      int
	totalWrites uint64
}

// NewRing allocates the full storage up front. Capacity 0 is legal and never
// retains anything.
func NewRing[V any](capacity int) *Ring[V] {
	if capacity < 0 {
		capacity = 0
	}
	return &Ring[V]{storage: make([]V, capacity)}
}

// Push writes v at the cursor and advances it.
func (r *Ring[V]) Push(v V) {
	r.totalWrites++
	if len(r.storage) == 0 {
		return
	}
	r.storage[r.cursor] = v
	r.cursor++
	if r.cursor == len(r.storage) {
		r.cursor = 0
	}
}

func (r *Ring[V]) IsAvailable(offset int) bool {
	return offset >= 0 && offset < len(r.storage) && uint64(offset) < r.totalWrites
}

// Read returns the value written offset pushes ago; offset 0 is the most
// recent write.
func (r *Ring[V]) Read(offset int) (V, bool) {
	var zero V
	if !r.IsAvailable(offset) {
		return zero, false
	}
	return r.storage[r.slot(offset)], true
}

// slot maps a backward offset to a storage index. Callers check availability.
func (r *Ring[V]) slot(offset int) int {
	idx := r.cursor - 1 - offset
	if idx < 0 {
		idx += len(r.storage)
	}
	return idx
}

func (r *Ring[V]) Clear() {
	r.cursor = 0
	r.totalWrites = 0
}

func (r *Ring[V]) Capacity() int {
	return len(r.storage)
}

func (r *Ring[V]) TotalWrites() uint64 {
	return r.totalWrites
}

// Len is the number of readable offsets.
func (r *Ring[V]) Len() int {
	if r.totalWrites < uint64(len(r.storage)) {
		return int(r.totalWrites)
	}
	return len(r.storage)
}
