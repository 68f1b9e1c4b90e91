package cycleprof

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	return &Report{
		TotalCycles: 3_000_000,
		Frequency:   3_000_000_000,
		Elapsed:     time.Millisecond,
		Calibration: DefaultCalibration,
		Counter:     "rdtsc",
		Entries: []Entry{
			{Region: 1, Name: "parse", Exclusive: 1_200_000, Inclusive: 3_000_000, Hits: 1,
				ExclusivePercent: 40, InclusivePercent: 100},
			{Region: 4, Name: "emit", Exclusive: 1_800_000, Inclusive: 1_800_000, Hits: 12,
				ExclusivePercent: 60, InclusivePercent: 60},
		},
	}
}

func TestReportString(t *testing.T) {
	out := sampleReport().String()

	assert.Contains(t, out, "Total time: 0.0010s, CPU freq: 3000000000 Hz (rdtsc, estimated over 100ms)")
	assert.Contains(t, out, "Total elapsed: 3000000 cycles")
	assert.NotContains(t, out, "WARNING")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)

	assert.Equal(t, reportRule, lines[0])
	assert.Equal(t, reportRule, lines[len(lines)-1])
	assert.Equal(t, "Regions:", lines[3])

	fields := strings.Fields(lines[5])
	assert.Equal(t, []string{"parse", "40.00%", "100.00%", "1", "1200000"}, fields)

	fields = strings.Fields(lines[6])
	assert.Equal(t, []string{"emit", "60.00%", "60.00%", "12", "1800000"}, fields)
}

func TestReportStringUnbalanced(t *testing.T) {
	rep := sampleReport()
	rep.Unbalanced = 2
	rep.Counter = ""

	out := rep.String()
	assert.Contains(t, out, "WARNING: 2 scope(s) closed with a nested scope still open")
	assert.Contains(t, out, "(estimated over 100ms)")
}

func TestReportWriteTo(t *testing.T) {
	rep := sampleReport()

	var buf bytes.Buffer
	n, err := rep.WriteTo(&buf)
	require.NoError(t, err)

	assert.EqualValues(t, buf.Len(), n)
	assert.Equal(t, rep.String(), buf.String())
}

func TestReportLookup(t *testing.T) {
	rep := sampleReport()

	e, ok := rep.Lookup(4)
	require.True(t, ok)
	assert.Equal(t, "emit", e.Name)

	_, ok = rep.Lookup(2)
	assert.False(t, ok)
}
