package cycleprof

import "errors"

// Sentinel errors returned by cycleprof operations.
var (
	// ErrNoRegion is returned when an identifier or name has no entry in
	// the registry. The reserved root identifier never resolves.
	ErrNoRegion = errors.New("cycleprof: no such region")

	// ErrInvalidRegistry is returned when a region table is malformed:
	// empty or duplicate names, duplicate identifiers, or identifiers
	// outside [1, MaxRegions].
	ErrInvalidRegistry = errors.New("cycleprof: invalid region registry")

	// ErrCapacity is returned when the slot table capacity cannot hold
	// every registered region or exceeds MaxRegions+1.
	ErrCapacity = errors.New("cycleprof: invalid slot capacity")

	// ErrRegionOutOfRange is the panic value (wrapped) raised when a scope
	// targets a slot at or beyond the table capacity. It signals that the
	// registry and the slot table have drifted apart.
	ErrRegionOutOfRange = errors.New("cycleprof: region out of slot range")

	// ErrReservedRegion is the panic value (wrapped) raised when a scope
	// targets the root sentinel.
	ErrReservedRegion = errors.New("cycleprof: region 0 is reserved")

	// ErrSessionNotStarted is returned by Report when Start was never called.
	ErrSessionNotStarted = errors.New("cycleprof: session not started")

	// ErrSessionRunning is returned by Report before End has been called.
	ErrSessionRunning = errors.New("cycleprof: session still running")

	// ErrEmptySession is returned by Report when the session measured no cycles.
	ErrEmptySession = errors.New("cycleprof: session measured zero cycles")
)
