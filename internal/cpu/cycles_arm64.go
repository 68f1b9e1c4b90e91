//go:build arm64

package cpu

// CounterName identifies the hardware counter read by ReadCycleCounter.
const CounterName = "cntvct_el0"

// readCycleCounter reads the virtual counter (CNTVCT_EL0).
// Implemented in cycles_arm64.s
//
//go:noescape
func readCycleCounter() uint64

// getCounterFrequencyHz reads CNTFRQ_EL0.
// Implemented in cycles_arm64.s
//
//go:noescape
func getCounterFrequencyHz() uint64
