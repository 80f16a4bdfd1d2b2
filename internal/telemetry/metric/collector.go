// Package metric provides Prometheus metrics for FreteHub.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StateFunc reports whether a session is currently authenticated.
type StateFunc func() bool

// Collector reports values that are read at scrape time rather than
// counted: the current authentication state and build information.
type Collector struct {
	state   StateFunc
	version string
	commit  string

	authenticatedDesc *prometheus.Desc
	buildInfoDesc     *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector. A nil state reports unauthenticated.
func NewCollector(state StateFunc, version, commit string) *Collector {
	return &Collector{
		state:   state,
		version: version,
		commit:  commit,
		authenticatedDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "session", "authenticated"),
			"1 if the session store holds a token, 0 otherwise",
			nil, nil,
		),
		buildInfoDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "build_info"),
			"Build information of the running client",
			[]string{"version", "commit"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.authenticatedDesc
	ch <- c.buildInfoDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	authenticated := 0.0
	if c.state != nil && c.state() {
		authenticated = 1
	}
	ch <- prometheus.MustNewConstMetric(c.authenticatedDesc, prometheus.GaugeValue, authenticated)
	ch <- prometheus.MustNewConstMetric(c.buildInfoDesc, prometheus.GaugeValue, 1, c.version, c.commit)
}

// RegisterCollector registers c on the registry.
func (r *Registry) RegisterCollector(c *Collector) error {
	return r.registry.Register(c)
}
