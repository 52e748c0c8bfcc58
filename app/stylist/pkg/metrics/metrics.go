package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// UpstreamRequestsTotal counts calls to the LLM and places providers by outcome.
	UpstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "outfit_radar",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Total number of upstream calls, labeled by upstream and result.",
	}, []string{"upstream", "result"})

	// UpstreamDurationSeconds is the latency of a single upstream call.
	UpstreamDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "outfit_radar",
		Subsystem: "upstream",
		Name:      "duration_seconds",
		Help:      "Latency of upstream calls, labeled by upstream.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 60},
	}, []string{"upstream"})

	// PlacesRejectedTotal counts places dropped by aggregation because they had no location.
	PlacesRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "outfit_radar",
		Subsystem: "places",
		Name:      "rejected_total",
		Help:      "Total number of places rejected during aggregation for missing location.",
	})
)

// Register registers metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			UpstreamRequestsTotal,
			UpstreamDurationSeconds,
			PlacesRejectedTotal,
		)
	})
}

// ObserveUpstream records one upstream call started at start.
func ObserveUpstream(upstream string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	UpstreamRequestsTotal.WithLabelValues(upstream, result).Inc()
	UpstreamDurationSeconds.WithLabelValues(upstream).Observe(time.Since(start).Seconds())
}
