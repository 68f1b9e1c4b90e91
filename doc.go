// Package cycleprof is an in-process instrumentation profiler that counts
// hardware cycles per named code region.
//
// Every region reports exclusive cycles (time inside the region minus the
// regions it calls) and inclusive cycles (the region and everything below
// it), and both stay correct under arbitrary nesting and recursion. The
// bookkeeping needs O(1) work per entry and exit and keeps no explicit call
// stack: a single "current parent" cursor on the Profiler is enough because
// scopes always close in the reverse order they were opened.
//
// # Regions
//
// Regions form a closed table fixed at build time. Identifier 0 is the
// reserved root; real regions start at 1:
//
//	var regions = cycleprof.MustNewRegistry("parse", "eval")
//
//	const (
//	    RegionParse cycleprof.Region = iota + 1
//	    RegionEval
//	)
//
// Tables can also be loaded from YAML with LoadRegistry.
//
// # Sessions and scopes
//
//	p, err := cycleprof.New(regions)
//	if err != nil {
//	    return err
//	}
//
//	p.Start()
//	parse(p)
//	p.End()
//
//	fmt.Print(p.Output())
//
//	func parse(p *cycleprof.Profiler) {
//	    s := p.Enter(RegionParse)
//	    defer s.Close()
//	    // ...
//	}
//
// Time and Measure wrap a function in a scope for callers that prefer a
// closure over defer.
//
// A Profiler is single-threaded. Goroutines that need profiling each own
// an instance; nothing is merged across instances.
//
// # Disabling
//
// Building with the "noprofile" tag turns Enter and Close into no-ops so
// instrumentation can stay in place in production builds.
package cycleprof
