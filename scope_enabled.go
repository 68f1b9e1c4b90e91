//go:build !noprofile

package cycleprof

// Enabled reports whether scopes record anything. Build with the
// "noprofile" tag to compile Enter and Close down to no-ops.
const Enabled = true

// Enter opens a scope for region r.
//
// r becomes the parent of every scope opened before this one closes. The
// slot's inclusive value is captured as the scope's baseline so that a
// recursive chain of r ends up with the wall time of its outermost entry.
//
// Enter panics if r is RootRegion or lies outside the slot table.
func (p *Profiler) Enter(r Region) Scope {
	if r == RootRegion || int(r) >= len(p.slots) {
		p.badRegion(r)
	}

	parent := p.parent
	p.parent = r
	baseline := p.slots[r].Inclusive

	return Scope{
		p:        p,
		region:   r,
		parent:   parent,
		baseline: baseline,
		start:    p.ts.ReadCycles(),
	}
}

// Close ends the scope and folds its elapsed cycles into the slot table.
// Closing the same Scope again does nothing.
//
// The elapsed time is added to the region's exclusive total and
// subtracted from the parent's; the parent adds its own full elapsed time
// when it closes, so what remains is the time spent outside its children.
// Unsigned wraparound on the parent is expected and cancels out.
func (s *Scope) Close() {
	p := s.p
	if p == nil {
		return
	}

	elapsed := p.ts.ReadCycles() - s.start
	s.p = nil

	if p.parent != s.region {
		// A nested scope was never closed. Restoring our parent below
		// repairs the cursor; the count surfaces in the report.
		p.unbalanced++
	}

	p.slots[s.parent].Exclusive -= elapsed

	slot := &p.slots[s.region]
	slot.Exclusive += elapsed
	slot.Hits++
	slot.Name = p.names[s.region]
	slot.Inclusive = s.baseline + elapsed

	p.parent = s.parent
}
