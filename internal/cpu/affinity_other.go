//go:build !linux

package cpu

// PinCurrentThread is not supported outside linux.
func PinCurrentThread(int) error {
	return ErrAffinityUnsupported
}
