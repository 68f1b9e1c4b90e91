package cycleprof

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Report is the frozen result of one profiling session.
type Report struct {
	// TotalCycles is the session length, End minus Start.
	TotalCycles uint64
	// Frequency is the estimated counter rate in Hz.
	Frequency   uint64
	Elapsed     time.Duration
	Calibration time.Duration
	// Counter names the hardware counter, when the TimeSource reports one.
	Counter string
	// Unbalanced counts scopes that closed while a nested scope was still
	// open. Non-zero means some scope was never closed.
	Unbalanced int
	// Entries holds every region with at least one hit, in ascending
	// identifier order.
	Entries []Entry
}

// Entry is one reported region.
type Entry struct {
	Region           Region
	Name             string
	Exclusive        uint64
	Inclusive        uint64
	Hits             uint64
	ExclusivePercent float64
	InclusivePercent float64
}

// Lookup returns the entry for id.
func (r *Report) Lookup(id Region) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Region == id {
			return e, true
		}
	}

	return Entry{}, false
}

const reportRule = "=============================="

// String renders the report as a text table.
func (r *Report) String() string {
	var b strings.Builder

	b.WriteString("\n" + reportRule + "\n")

	counter := ""
	if r.Counter != "" {
		counter = r.Counter + ", "
	}

	fmt.Fprintf(&b, "Total time: %.4fs, CPU freq: %d Hz (%sestimated over %v)\n",
		r.Elapsed.Seconds(), r.Frequency, counter, r.Calibration)
	fmt.Fprintf(&b, "Total elapsed: %d cycles\n", r.TotalCycles)
	b.WriteString("Regions:\n")
	fmt.Fprintf(&b, "    %-24s %9s %9s %10s %16s\n", "name", "excl%", "incl%", "hits", "exclusive")

	for _, e := range r.Entries {
		fmt.Fprintf(&b, "    %-24s %8.2f%% %8.2f%% %10d %16d\n",
			e.Name, e.ExclusivePercent, e.InclusivePercent, e.Hits, e.Exclusive)
	}

	if r.Unbalanced > 0 {
		fmt.Fprintf(&b, "WARNING: %d scope(s) closed with a nested scope still open\n", r.Unbalanced)
	}

	b.WriteString(reportRule + "\n")

	return b.String()
}

// WriteTo implements io.WriterTo.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())

	return int64(n), err
}
