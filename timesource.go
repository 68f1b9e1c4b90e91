package cycleprof

import (
	"time"

	"github.com/cwbudde/cycleprof/internal/cpu"
)

// DefaultCalibration is the wall-clock window used to estimate the counter
// frequency when a report is generated.
const DefaultCalibration = 100 * time.Millisecond

// TimeSource supplies cycle timestamps and their calibration.
//
// ReadCycles must be monotonic on the calling thread. EstimateFrequency
// busy-waits d of wall-clock time and returns the number of cycles that
// elapsed meanwhile; the profiler divides by d to get Hz.
type TimeSource interface {
	ReadCycles() uint64
	EstimateFrequency(d time.Duration) uint64
}

// HardwareTimeSource reads the CPU cycle counter: RDTSC on amd64,
// CNTVCT_EL0 on arm64 and a monotonic nanosecond clock elsewhere.
type HardwareTimeSource struct{}

// ReadCycles implements TimeSource.
func (HardwareTimeSource) ReadCycles() uint64 {
	return cpu.ReadCycleCounter()
}

// EstimateFrequency implements TimeSource.
func (HardwareTimeSource) EstimateFrequency(d time.Duration) uint64 {
	return cpu.EstimateFrequency(d)
}

// Counter names the hardware counter in use.
func (HardwareTimeSource) Counter() string {
	return cpu.CounterName
}

// counterName reports ts's counter name when it exposes one.
func counterName(ts TimeSource) string {
	if named, ok := ts.(interface{ Counter() string }); ok {
		return named.Counter()
	}

	return ""
}
