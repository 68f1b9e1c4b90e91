package cycleprof

import "fmt"

// Scope is the open measurement of one region entry. It is created by
// Profiler.Enter and must be closed exactly once on every exit path,
// normally with defer:
//
//	s := p.Enter(RegionParse)
//	defer s.Close()
//
// A Scope borrows its Profiler and must not outlive the code it
// instruments.
type Scope struct {
	p        *Profiler
	region   Region
	parent   Region
	baseline uint64
	start    uint64
}

// Region returns the region the scope measures.
func (s *Scope) Region() Region {
	return s.region
}

// Time runs fn inside region r. The scope is closed even if fn panics.
func (p *Profiler) Time(r Region, fn func()) {
	s := p.Enter(r)
	defer s.Close()

	fn()
}

// Measure runs fn inside region r and returns its error. The scope is
// closed on every return path, panics included.
func (p *Profiler) Measure(r Region, fn func() error) error {
	s := p.Enter(r)
	defer s.Close()

	return fn()
}

// badRegion fails fast on identifiers the slot table cannot hold.
//
//go:noinline
func (p *Profiler) badRegion(r Region) {
	if r == RootRegion {
		panic(ErrReservedRegion)
	}

	panic(fmt.Errorf("%w: %d (capacity %d)", ErrRegionOutOfRange, r, len(p.slots)))
}
