package profiling

import "time"

// ProfileInvoke runs fn and returns its result along with how long it took.
func ProfileInvoke[T any](clock Clock, fn func() T) (T, time.Duration) {
	clock = orDefault(clock)
	begin := clock.Now()
	out := fn()
	return out, clock.Now().Sub(begin)
}

// ProfileInvokeDiscardResult times fn when there is nothing to return.
func ProfileInvokeDiscardResult(clock Clock, fn func()) time.Duration {
	clock = orDefault(clock)
	begin := clock.Now()
	fn()
	return clock.Now().Sub(begin)
}

func ProfileInMicrosecs(fn func()) uint64 {
	return durationUs(ProfileInvokeDiscardResult(defaultClock, fn))
}

func ProfileInMillisecs(fn func()) uint64 {
	return durationMs(ProfileInvokeDiscardResult(defaultClock, fn))
}
