package cpu

import "time"

// ReadCycleCounter reads the CPU's cycle counter (TSC on x86, CNTVCT on ARM).
// On platforms without assembly support it falls back to a monotonic
// nanosecond clock.
func ReadCycleCounter() uint64 {
	return readCycleCounter()
}

// CyclesSince returns the number of cycles elapsed since the given start cycle count.
func CyclesSince(start uint64) uint64 {
	return ReadCycleCounter() - start
}

// CounterFrequencyHz reports the counter frequency when the platform
// exposes it architecturally (CNTFRQ_EL0 on arm64, 1 GHz for the nanosecond
// fallback). It returns 0 when the frequency has to be calibrated.
func CounterFrequencyHz() uint64 {
	return getCounterFrequencyHz()
}

// EstimateFrequency busy-waits for d of wall-clock time and returns the
// number of counter cycles observed over that window.
//
// The result is a delta, not a rate: divide by d (see CyclesPerSecond) to
// get cycles per second. Scheduler preemption and the granularity of the
// wall clock both skew it, so treat it as an estimate.
func EstimateFrequency(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}

	start := wallNanos()
	startCycles := ReadCycleCounter()

	// Busy-wait for the calibration duration
	for wallNanos()-start < d.Nanoseconds() {
		// Spin
	}

	return ReadCycleCounter() - startCycles
}

// CyclesPerSecond scales a cycle delta measured over d to Hz.
func CyclesPerSecond(cycles uint64, d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}

	return uint64(float64(cycles) / d.Seconds())
}

// CyclesToNanoseconds converts a cycle count to nanoseconds at freqHz.
// It returns 0 when freqHz is unknown.
func CyclesToNanoseconds(cycles, freqHz uint64) uint64 {
	if freqHz == 0 {
		return 0
	}

	return uint64(float64(cycles) * 1e9 / float64(freqHz))
}

// ReadOverhead returns the smallest delta seen between two back-to-back
// counter reads over the given number of samples.
func ReadOverhead(samples int) uint64 {
	if samples <= 0 {
		samples = 1
	}

	best := ^uint64(0)

	for i := 0; i < samples; i++ {
		c0 := ReadCycleCounter()
		delta := ReadCycleCounter() - c0

		if delta < best {
			best = delta
		}
	}

	return best
}
