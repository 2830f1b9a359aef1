package profiling

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the timestamp source used by every timer in this package.
// Implementations must be monotonic: time.Time values produced by
// time.Now carry a monotonic reading, so Sub and Before ignore wall-clock
// adjustments.
type Clock interface {
	Now() time.Time
}

var defaultClock Clock = clockwork.NewRealClock()

// DefaultClock returns the process-wide monotonic clock.
func DefaultClock() Clock {
	return defaultClock
}

func orDefault(clock Clock) Clock {
	if clock == nil {
		return defaultClock
	}
	return clock
}

func durationUs(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(d / time.Microsecond)
}

func durationMs(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(d / time.Millisecond)
}
