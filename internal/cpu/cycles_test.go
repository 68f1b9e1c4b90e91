package cpu

import (
	"runtime"
	"strings"
	"testing"
	"time"
)

// isHighPrecisionPlatform returns true if the platform has a hardware cycle counter.
func isHighPrecisionPlatform() bool {
	return runtime.GOARCH == "amd64" || runtime.GOARCH == "arm64"
}

func TestReadCycleCounter(t *testing.T) {
	c1 := ReadCycleCounter()

	time.Sleep(time.Microsecond)

	c2 := ReadCycleCounter()

	if c2 <= c1 {
		t.Errorf("Cycle counter not monotonic: c1=%d, c2=%d", c1, c2)
	}
}

func TestCyclesSince(t *testing.T) {
	start := ReadCycleCounter()

	// Do some work to ensure cycles elapse
	sum := 0
	for i := 0; i < 1000; i++ {
		sum += i
	}

	time.Sleep(time.Microsecond)

	elapsed := CyclesSince(start)

	if elapsed == 0 {
		t.Errorf("CyclesSince returned zero")
	}

	if sum == 0 {
		t.Fatal("sum should not be zero")
	}
}

func TestEstimateFrequencyTracksSleep(t *testing.T) {
	const window = 20 * time.Millisecond

	hz := CyclesPerSecond(EstimateFrequency(window), window)
	if hz == 0 {
		t.Fatal("EstimateFrequency returned zero cycles")
	}

	start := ReadCycleCounter()
	timeStart := time.Now()

	time.Sleep(10 * time.Millisecond)

	cycles := CyclesSince(start)
	actualNanos := time.Since(timeStart).Nanoseconds()
	convertedNanos := CyclesToNanoseconds(cycles, hz)

	// Loose tolerance: calibration, sleep precision and scheduler noise.
	ratio := float64(convertedNanos) / float64(actualNanos)
	if ratio < 0.5 || ratio > 2.0 {
		t.Errorf("Cycle-to-nanosecond conversion appears incorrect: got %d ns from cycles, actual %d ns (ratio %.2f)",
			convertedNanos, actualNanos, ratio)
	}
}

func TestEstimateFrequencyNonPositiveWindow(t *testing.T) {
	if got := EstimateFrequency(0); got != 0 {
		t.Errorf("EstimateFrequency(0) = %d, want 0", got)
	}

	if got := EstimateFrequency(-time.Second); got != 0 {
		t.Errorf("EstimateFrequency(-1s) = %d, want 0", got)
	}
}

func TestCyclesPerSecond(t *testing.T) {
	tests := []struct {
		cycles uint64
		d      time.Duration
		want   uint64
	}{
		{300_000_000, 100 * time.Millisecond, 3_000_000_000},
		{1000, time.Second, 1000},
		{1000, 0, 0},
	}

	for _, tt := range tests {
		if got := CyclesPerSecond(tt.cycles, tt.d); got != tt.want {
			t.Errorf("CyclesPerSecond(%d, %v) = %d, want %d", tt.cycles, tt.d, got, tt.want)
		}
	}
}

func TestCyclesToNanoseconds(t *testing.T) {
	if got := CyclesToNanoseconds(3000, 3_000_000_000); got != 1000 {
		t.Errorf("CyclesToNanoseconds(3000, 3GHz) = %d, want 1000", got)
	}

	if got := CyclesToNanoseconds(3000, 0); got != 0 {
		t.Errorf("CyclesToNanoseconds with unknown frequency = %d, want 0", got)
	}
}

func TestCounterFrequencyHz(t *testing.T) {
	freq := CounterFrequencyHz()

	switch runtime.GOARCH {
	case "amd64":
		if freq != 0 {
			t.Errorf("CounterFrequencyHz() = %d on amd64, want 0 (calibrated)", freq)
		}
	case "arm64":
		if freq == 0 {
			t.Error("CounterFrequencyHz() = 0 on arm64, want CNTFRQ_EL0")
		}
	default:
		if freq != 1_000_000_000 {
			t.Errorf("CounterFrequencyHz() = %d, want 1e9", freq)
		}
	}
}

func TestReadOverhead(t *testing.T) {
	overhead := ReadOverhead(1000)

	// A back-to-back read never costs anywhere near a millisecond's worth
	// of cycles on a 100 MHz+ counter.
	if overhead > 100_000 {
		t.Errorf("ReadOverhead = %d cycles, implausibly large", overhead)
	}

	if ReadOverhead(0) == ^uint64(0) {
		t.Error("ReadOverhead(0) did not take a sample")
	}
}

func TestCycleCounterPrecision(t *testing.T) {
	if !isHighPrecisionPlatform() {
		t.Skip("Skipping precision test on platform without hardware cycle counter")
	}

	const samples = 1000

	values := make([]uint64, samples)

	for i := range values {
		values[i] = ReadCycleCounter()
	}

	unique := make(map[uint64]bool)
	for _, v := range values {
		unique[v] = true
	}

	// Require at least 10% uniqueness (very conservative)
	uniqueRatio := float64(len(unique)) / float64(samples)
	if uniqueRatio < 0.1 {
		t.Errorf("Cycle counter has low precision: only %.1f%% unique values in %d samples",
			uniqueRatio*100, samples)
	}

	t.Logf("Cycle counter uniqueness: %.1f%% (%d unique values in %d samples)",
		uniqueRatio*100, len(unique), samples)
}

func TestDetectFeatures(t *testing.T) {
	f := DetectFeatures()

	if f.Architecture != runtime.GOARCH {
		t.Errorf("Architecture = %q, want %q", f.Architecture, runtime.GOARCH)
	}

	if f.Counter != CounterName {
		t.Errorf("Counter = %q, want %q", f.Counter, CounterName)
	}

	if !strings.HasPrefix(f.String(), runtime.GOARCH+"/"+CounterName) {
		t.Errorf("String() = %q, want prefix %q", f.String(), runtime.GOARCH+"/"+CounterName)
	}
}

func TestFeaturesString(t *testing.T) {
	f := Features{Architecture: "amd64", Counter: "rdtsc", HasSSE2: true, HasAVX2: true}

	if got, want := f.String(), "amd64/rdtsc sse2 avx2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func BenchmarkReadCycleCounter(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = ReadCycleCounter()
	}
}

func BenchmarkCyclesSince(b *testing.B) {
	start := ReadCycleCounter()
	for i := 0; i < b.N; i++ {
		_ = CyclesSince(start)
	}
}
