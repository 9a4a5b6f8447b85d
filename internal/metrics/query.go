package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "meridian_explorer",
		Subsystem: "query",
		Name:      "resolve_total",
		Help:      "Count of query field resolutions.",
	}, []string{"network", "field", "status"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "meridian_explorer",
		Subsystem: "query",
		Name:      "resolve_duration_seconds",
		Help:      "Duration of query field resolutions.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "field", "status"})
)

// Query tracks metrics for query resolution.
type Query struct {
	network string
}

// NewQuery constructs a Query with defaults.
func NewQuery(network string) *Query {
	if network == "" {
		network = "unknown"
	}
	return &Query{network: network}
}

// ObserveQuery records a field resolution outcome and duration.
func (m Query) ObserveQuery(field string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	queryTotal.WithLabelValues(m.network, field, status).Inc()
	queryDuration.WithLabelValues(m.network, field, status).
		Observe(time.Since(started).Seconds())
}
