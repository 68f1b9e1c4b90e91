package cycleprof

import "time"

// Shared test helpers used across multiple test files

// manualClock is a deterministic TimeSource. Reads return the current
// counter value; tests move it forward with advance.
type manualClock struct {
	now uint64
	// hz is the rate EstimateFrequency pretends to observe.
	hz uint64
	// calibrations counts EstimateFrequency calls.
	calibrations int
}

func newManualClock() *manualClock {
	return &manualClock{now: 1000, hz: 1_000_000}
}

func (c *manualClock) ReadCycles() uint64 {
	return c.now
}

func (c *manualClock) EstimateFrequency(d time.Duration) uint64 {
	c.calibrations++

	return uint64(float64(c.hz) * d.Seconds())
}

func (c *manualClock) advance(cycles uint64) {
	c.now += cycles
}

// work returns a closure advancing the clock, standing in for own-work.
func (c *manualClock) work(cycles uint64) func() {
	return func() { c.advance(cycles) }
}
