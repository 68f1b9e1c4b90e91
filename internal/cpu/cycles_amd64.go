//go:build amd64

package cpu

// CounterName identifies the hardware counter read by ReadCycleCounter.
const CounterName = "rdtsc"

// readCycleCounter reads the CPU timestamp counter using RDTSC.
// Implemented in cycles_amd64.s
//
//go:noescape
func readCycleCounter() uint64

// getCounterFrequencyHz returns 0: the TSC rate is not architecturally
// visible and has to be calibrated.
func getCounterFrequencyHz() uint64 {
	return 0
}
