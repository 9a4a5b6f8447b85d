package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingesterFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "meridian_explorer",
		Subsystem: "ingester",
		Name:      "fetch_total",
		Help:      "Count of applied-block fetches from the ledger feed.",
	}, []string{"network", "status"})

	ingesterFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "meridian_explorer",
		Subsystem: "ingester",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of applied-block fetches from the ledger feed.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	ingesterApplyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "meridian_explorer",
		Subsystem: "ingester",
		Name:      "apply_total",
		Help:      "Count of block applications, including orphan deferrals.",
	}, []string{"network", "status"})

	ingesterApplyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "meridian_explorer",
		Subsystem: "ingester",
		Name:      "apply_duration_seconds",
		Help:      "Duration of applying one block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	ingesterOrphansBuffered = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "meridian_explorer",
		Subsystem: "ingester",
		Name:      "orphans_buffered",
		Help:      "Blocks currently buffered waiting for their parent.",
	}, []string{"network"})
)

// Ingester tracks metrics for the block ingestion pipeline.
type Ingester struct {
	network string
}

// NewIngester constructs an Ingester with defaults.
func NewIngester(network string) *Ingester {
	if network == "" {
		network = "unknown"
	}
	return &Ingester{network: network}
}

// ObserveFetch records a feed fetch outcome and duration.
func (m Ingester) ObserveFetch(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ingesterFetchTotal.WithLabelValues(m.network, status).Inc()
	ingesterFetchDuration.WithLabelValues(m.network, status).
		Observe(time.Since(started).Seconds())
}

// ObserveApply records a block application outcome and duration.
func (m Ingester) ObserveApply(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ingesterApplyTotal.WithLabelValues(m.network, status).Inc()
	ingesterApplyDuration.WithLabelValues(m.network, status).
		Observe(time.Since(started).Seconds())
}

// SetOrphans records how many blocks are parked waiting for a parent.
func (m Ingester) SetOrphans(buffered int) {
	ingesterOrphansBuffered.WithLabelValues(m.network).Set(float64(buffered))
}
