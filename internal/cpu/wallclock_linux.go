//go:build linux

package cpu

import (
	"time"

	"golang.org/x/sys/unix"
)

var wallEpoch = time.Now()

// wallNanos reads CLOCK_MONOTONIC_RAW, which is not slewed by NTP.
func wallNanos() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC_RAW, &ts); err != nil {
		return time.Since(wallEpoch).Nanoseconds()
	}

	return ts.Nano()
}
