package cycleprof

import (
	"fmt"
	"io"
	"strconv"

	"github.com/google/pprof/profile"
)

// Profile converts the report into a pprof profile with one single-frame
// sample per region. Sample values are hits, exclusive cycles and
// inclusive cycles, in that order.
func (r *Report) Profile() (*profile.Profile, error) {
	p := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "hits", Unit: "count"},
			{Type: "exclusive", Unit: "cycles"},
			{Type: "inclusive", Unit: "cycles"},
		},
		DefaultSampleType: "exclusive",
		PeriodType:        &profile.ValueType{Type: "cpu", Unit: "cycles"},
		Period:            1,
		DurationNanos:     r.Elapsed.Nanoseconds(),
		Comments: []string{
			fmt.Sprintf("total %d cycles", r.TotalCycles),
			fmt.Sprintf("frequency %d Hz", r.Frequency),
		},
	}

	for i, e := range r.Entries {
		id := uint64(i + 1)

		fn := &profile.Function{ID: id, Name: e.Name, SystemName: e.Name}
		loc := &profile.Location{ID: id, Line: []profile.Line{{Function: fn}}}

		p.Function = append(p.Function, fn)
		p.Location = append(p.Location, loc)
		p.Sample = append(p.Sample, &profile.Sample{
			Location: []*profile.Location{loc},
			Value:    []int64{int64(e.Hits), int64(e.Exclusive), int64(e.Inclusive)},
			Label:    map[string][]string{"region": {strconv.Itoa(int(e.Region))}},
		})
	}

	if err := p.CheckValid(); err != nil {
		return nil, fmt.Errorf("failed to build pprof profile: %w", err)
	}

	return p, nil
}

// WriteProfile writes the report to w as a gzip-compressed pprof profile.
func (r *Report) WriteProfile(w io.Writer) error {
	p, err := r.Profile()
	if err != nil {
		return err
	}

	if err := p.Write(w); err != nil {
		return fmt.Errorf("failed to write pprof profile: %w", err)
	}

	return nil
}
