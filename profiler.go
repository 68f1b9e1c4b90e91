package cycleprof

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/cycleprof/internal/cpu"
)

// Profiler owns a fixed-capacity slot table and the single "current
// parent" cursor shared by every open Scope.
//
// A Profiler is not safe for concurrent use. Give each goroutine that
// records scopes its own instance (ideally locked to one OS thread, since
// cycle counters are not synchronized across cores).
type Profiler struct {
	slots  []Slot
	names  []string
	parent Region

	ts          TimeSource
	calibration time.Duration
	logger      *zap.Logger

	start, end uint64
	started    bool
	running    bool
	frequency  uint64 // Hz, estimated lazily once per session
	unbalanced int
}

// Option configures a Profiler.
type Option func(*options)

type options struct {
	ts          TimeSource
	capacity    int
	calibration time.Duration
	logger      *zap.Logger
}

// WithTimeSource replaces the hardware cycle counter.
func WithTimeSource(ts TimeSource) Option {
	return func(o *options) { o.ts = ts }
}

// WithCapacity sizes the slot table. It must cover every registered
// region and may not exceed MaxRegions+1.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithCalibration sets the wall-clock window used to estimate the counter
// frequency. Non-positive values select DefaultCalibration.
func WithCalibration(d time.Duration) Option {
	return func(o *options) { o.calibration = d }
}

// WithLogger attaches a logger for session events. The default discards.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a Profiler for the regions in reg.
func New(reg *Registry, opts ...Option) (*Profiler, error) {
	o := options{
		ts:          HardwareTimeSource{},
		capacity:    reg.Capacity(),
		calibration: DefaultCalibration,
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.capacity < reg.Capacity() || o.capacity > MaxRegions+1 {
		return nil, fmt.Errorf("%w: %d (registry needs %d, max %d)",
			ErrCapacity, o.capacity, reg.Capacity(), MaxRegions+1)
	}

	if o.calibration <= 0 {
		o.calibration = DefaultCalibration
	}

	if o.ts == nil {
		o.ts = HardwareTimeSource{}
	}

	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	return &Profiler{
		slots:       make([]Slot, o.capacity),
		names:       reg.names(o.capacity),
		ts:          o.ts,
		calibration: o.calibration,
		logger:      o.logger.Named("cycleprof"),
	}, nil
}

// Start begins a measurement session. Calling it again restarts the
// session clock without clearing the slots.
func (p *Profiler) Start() {
	p.started = true
	p.running = true
	p.frequency = 0
	p.end = 0
	p.start = p.ts.ReadCycles()

	p.logger.Debug("session started", zap.Uint64("start", p.start))
}

// End closes the measurement session and freezes its total.
func (p *Profiler) End() {
	p.end = p.ts.ReadCycles()
	p.running = false

	if p.parent != RootRegion {
		p.logger.Warn("session ended inside an open scope",
			zap.Uint16("region", uint16(p.parent)),
			zap.String("name", p.names[p.parent]))
	}

	p.logger.Debug("session ended",
		zap.Uint64("end", p.end),
		zap.Uint64("total_cycles", p.end-p.start))
}

// Reset zeroes every slot, the parent cursor and the session state.
func (p *Profiler) Reset() {
	clear(p.slots)

	p.parent = RootRegion
	p.start, p.end = 0, 0
	p.started, p.running = false, false
	p.frequency = 0
	p.unbalanced = 0
}

// Running reports whether a session is in progress.
func (p *Profiler) Running() bool {
	return p.running
}

// Capacity returns the slot table size, root slot included.
func (p *Profiler) Capacity() int {
	return len(p.slots)
}

// Slot returns a copy of the record for r.
func (p *Profiler) Slot(r Region) (Slot, error) {
	if r == RootRegion || int(r) >= len(p.slots) {
		return Slot{}, fmt.Errorf("%w: id %d", ErrNoRegion, r)
	}

	return p.slots[r], nil
}

// Report freezes the slot table of a finished session into a Report.
//
// The counter frequency is estimated by busy-waiting the calibration
// window on the first call after End; later calls reuse it.
func (p *Profiler) Report() (*Report, error) {
	switch {
	case !p.started:
		return nil, ErrSessionNotStarted
	case p.running:
		return nil, ErrSessionRunning
	}

	total := p.end - p.start
	if total == 0 {
		return nil, ErrEmptySession
	}

	if p.frequency == 0 {
		delta := p.ts.EstimateFrequency(p.calibration)
		p.frequency = cpu.CyclesPerSecond(delta, p.calibration)

		p.logger.Debug("calibrated counter",
			zap.Duration("window", p.calibration),
			zap.Uint64("cycles", delta),
			zap.Uint64("hz", p.frequency))
	}

	rep := &Report{
		TotalCycles: total,
		Frequency:   p.frequency,
		Calibration: p.calibration,
		Counter:     counterName(p.ts),
		Unbalanced:  p.unbalanced,
	}

	if p.frequency > 0 {
		rep.Elapsed = time.Duration(float64(total) / float64(p.frequency) * float64(time.Second))
	}

	for id := 1; id < len(p.slots); id++ {
		s := p.slots[id]
		if s.Hits == 0 {
			continue
		}

		rep.Entries = append(rep.Entries, Entry{
			Region:           Region(id),
			Name:             s.Name,
			Exclusive:        s.Exclusive,
			Inclusive:        s.Inclusive,
			Hits:             s.Hits,
			ExclusivePercent: percent(s.Exclusive, total),
			InclusivePercent: percent(s.Inclusive, total),
		})
	}

	return rep, nil
}

// Output renders the report of a finished session as text.
func (p *Profiler) Output() (string, error) {
	rep, err := p.Report()
	if err != nil {
		return "", err
	}

	return rep.String(), nil
}

// WriteReport writes the text report of a finished session to w.
func (p *Profiler) WriteReport(w io.Writer) error {
	rep, err := p.Report()
	if err != nil {
		return err
	}

	_, err = rep.WriteTo(w)

	return err
}

func percent(part, total uint64) float64 {
	return float64(part) / float64(total) * 100
}
