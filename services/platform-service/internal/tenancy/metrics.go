package tenancy

import "github.com/prometheus/client_golang/prometheus"

const (
	targetAdmin    = "admin"
	targetTenant   = "tenant"
	targetFallback = "fallback"
	targetError    = "error"
)

// Metrics records how requests are routed.
type Metrics struct {
	resolutions  *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
}

// NewMetrics creates the resolver metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kinext",
			Subsystem: "tenancy",
			Name:      "resolutions_total",
			Help:      "Database resolutions by target (admin, tenant, fallback, error).",
		}, []string{"target"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kinext",
			Subsystem: "tenancy",
			Name:      "registry_cache_lookups_total",
			Help:      "Registry cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
	}

	reg.MustRegister(m.resolutions, m.cacheLookups)

	return m
}

func (m *Metrics) resolved(target string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(target).Inc()
}

func (m *Metrics) cacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
