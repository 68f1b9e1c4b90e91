// Package promexport publishes cycleprof reports as Prometheus metrics.
//
// A Profiler's slot table is single-threaded, so the collector never reads
// it directly. Callers Publish finished Reports; scrapes read the most
// recent one.
package promexport

import (
	"strconv"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cwbudde/cycleprof"
)

// Collector implements prometheus.Collector over the latest published Report.
type Collector struct {
	report atomic.Pointer[cycleprof.Report]

	exclusive *prometheus.Desc
	inclusive *prometheus.Desc
	hits      *prometheus.Desc
	session   *prometheus.Desc
	frequency *prometheus.Desc
}

// NewCollector creates a collector whose metric names start with namespace.
// constLabels are attached to every metric, e.g. a worker id.
func NewCollector(namespace string, constLabels prometheus.Labels) *Collector {
	regionLabels := []string{"region", "id"}

	return &Collector{
		exclusive: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "region", "exclusive_cycles"),
			"Cycles spent inside the region, excluding nested regions.",
			regionLabels, constLabels),
		inclusive: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "region", "inclusive_cycles"),
			"Cycles spent inside the region, including nested regions.",
			regionLabels, constLabels),
		hits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "region", "hits_total"),
			"Number of times the region was entered.",
			regionLabels, constLabels),
		session: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "session", "cycles"),
			"Cycles between session start and end.",
			nil, constLabels),
		frequency: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cpu", "frequency_hz"),
			"Estimated cycle counter frequency.",
			nil, constLabels),
	}
}

// Publish makes rep the report served by subsequent scrapes.
func (c *Collector) Publish(rep *cycleprof.Report) {
	c.report.Store(rep)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.exclusive
	ch <- c.inclusive
	ch <- c.hits
	ch <- c.session
	ch <- c.frequency
}

// Collect implements prometheus.Collector. Nothing is emitted before the
// first Publish.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	rep := c.report.Load()
	if rep == nil {
		return
	}

	ch <- prometheus.MustNewConstMetric(c.session, prometheus.GaugeValue, float64(rep.TotalCycles))
	ch <- prometheus.MustNewConstMetric(c.frequency, prometheus.GaugeValue, float64(rep.Frequency))

	for _, e := range rep.Entries {
		id := strconv.Itoa(int(e.Region))

		ch <- prometheus.MustNewConstMetric(c.exclusive, prometheus.GaugeValue, float64(e.Exclusive), e.Name, id)
		ch <- prometheus.MustNewConstMetric(c.inclusive, prometheus.GaugeValue, float64(e.Inclusive), e.Name, id)
		ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(e.Hits), e.Name, id)
	}
}
