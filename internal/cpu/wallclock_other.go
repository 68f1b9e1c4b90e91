//go:build !linux

package cpu

import "time"

var wallEpoch = time.Now()

// wallNanos returns nanoseconds on the Go monotonic clock.
func wallNanos() int64 {
	return time.Since(wallEpoch).Nanoseconds()
}
