package cpu

import "errors"

var (
	// ErrAffinityUnsupported is returned by PinCurrentThread on platforms
	// without sched_setaffinity.
	ErrAffinityUnsupported = errors.New("cpu: thread affinity not supported")

	// ErrInvalidCPU is returned for a CPU index outside [0, NumCPU).
	ErrInvalidCPU = errors.New("cpu: invalid cpu index")
)
