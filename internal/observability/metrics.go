package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"go-bikeshare/internal/model"
)

var (
	queriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bikeshare",
		Subsystem: "query",
		Name:      "completed_total",
		Help:      "Queries completed, by city and outcome kind.",
	}, []string{"city", "outcome"})
	queryFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bikeshare",
		Subsystem: "query",
		Name:      "failures_total",
		Help:      "Queries that failed to load or report, by city.",
	}, []string{"city"})
	loadSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bikeshare",
		Subsystem: "loader",
		Name:      "load_duration_seconds",
		Help:      "Time spent reading and filtering a city dataset.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	}, []string{"city"})
)

func init() {
	prometheus.MustRegister(queriesTotal, queryFailures, loadSeconds)
}

// RecordQuery counts a completed query.
func RecordQuery(city model.City, outcome string) {
	queriesTotal.WithLabelValues(city.Slug(), outcome).Inc()
}

// RecordQueryFailure counts a failed query.
func RecordQueryFailure(city model.City) {
	queryFailures.WithLabelValues(city.Slug()).Inc()
}

// ObserveLoad records how long loading a dataset took.
func ObserveLoad(city model.City, d time.Duration) {
	loadSeconds.WithLabelValues(city.Slug()).Observe(d.Seconds())
}
