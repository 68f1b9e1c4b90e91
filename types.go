package cycleprof

// Region is the small dense identifier of an instrumented code region.
// It indexes the profiler's slot table directly.
type Region uint16

// RootRegion is the reserved "no parent" sentinel. It owns slot 0, which
// absorbs the time of top-level scopes and is never reported.
const RootRegion Region = 0

// MaxRegions is the largest region identifier a registry accepts.
const MaxRegions = 512

// Slot is the aggregate record kept per region.
//
// Exclusive accumulates across every close. Inclusive is overwritten on
// each close with the value the slot held when that scope was entered plus
// the scope's own elapsed cycles, which keeps recursive chains from being
// counted more than once.
type Slot struct {
	Name      string
	Exclusive uint64
	Inclusive uint64
	Hits      uint64
}

// RegionInfo pairs a region identifier with its name.
type RegionInfo struct {
	ID   Region
	Name string
}
