//go:build !amd64 && !arm64

package cpu

// CounterName identifies the clock read by ReadCycleCounter.
const CounterName = "monotonic"

// readCycleCounter falls back to the monotonic wall clock on platforms
// without assembly support. Returns nanoseconds since an arbitrary point.
func readCycleCounter() uint64 {
	return uint64(wallNanos())
}

// getCounterFrequencyHz returns 1 GHz: the fallback counts nanoseconds.
func getCounterFrequencyHz() uint64 {
	return 1_000_000_000
}
