package metric

import "github.com/prometheus/client_golang/prometheus"

// Collector samples live application state at scrape time.
type Collector struct {
	keyCacheEntries *prometheus.Desc
	keyCacheSize    func() int
}

// NewCollector creates a collector reporting the size returned by
// keyCacheSize as tunevault_keycache_entries.
func NewCollector(keyCacheSize func() int) *Collector {
	return &Collector{
		keyCacheEntries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "keycache_entries"),
			"Derived cipher keys currently memoized.",
			nil, nil,
		),
		keyCacheSize: keyCacheSize,
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keyCacheEntries
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	size := 0
	if c.keyCacheSize != nil {
		size = c.keyCacheSize()
	}
	ch <- prometheus.MustNewConstMetric(c.keyCacheEntries, prometheus.GaugeValue, float64(size))
}
