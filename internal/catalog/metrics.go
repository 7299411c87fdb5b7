package catalog

import "github.com/prometheus/client_golang/prometheus"

// Request kinds, used as cache table names and metric labels.
const (
	kindList        = "list"
	kindMovie       = "movie"
	kindSearch      = "search"
	kindRecommended = "recommended"
)

// Metrics counts cache lookups and backend failures.
type Metrics struct {
	lookups  *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewMetrics creates the catalog collectors and registers them with reg when
// it is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "filmcat",
			Name:      "cache_lookups_total",
			Help:      "Catalog cache lookups by request kind and result (hit or miss).",
		}, []string{"kind", "result"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "filmcat",
			Name:      "backend_errors_total",
			Help:      "Failed movies API requests by request kind.",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.lookups, m.failures)
	}
	return m
}

func (m *Metrics) hit(kind string)  { m.lookups.WithLabelValues(kind, "hit").Inc() }
func (m *Metrics) miss(kind string) { m.lookups.WithLabelValues(kind, "miss").Inc() }
func (m *Metrics) fail(kind string) { m.failures.WithLabelValues(kind).Inc() }
