//go:build linux

package cpu

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// PinCurrentThread locks the calling goroutine to its OS thread and pins
// that thread to the given CPU, so successive counter reads come from the
// same core. The caller owns the lock for the rest of the goroutine's life.
func PinCurrentThread(cpuIndex int) error {
	if cpuIndex < 0 || cpuIndex >= runtime.NumCPU() {
		return fmt.Errorf("%w: cpu %d", ErrInvalidCPU, cpuIndex)
	}

	runtime.LockOSThread()

	var set unix.CPUSet
	set.Zero()
	set.Set(cpuIndex)

	if err := unix.SchedSetaffinity(0, &set); err != nil {
		runtime.UnlockOSThread()
		return fmt.Errorf("sched_setaffinity: %w", err)
	}

	return nil
}
