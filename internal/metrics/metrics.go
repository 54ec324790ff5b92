package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Atlas API Metrics
	PagesFetched      prometheus.Counter
	PageFetchDuration prometheus.Histogram
	HTTPErrorsTotal   *prometheus.CounterVec

	// Listing Metrics
	ProbesListed prometheus.Counter
	RowsWritten  prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Atlas API Metrics
		PagesFetched: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "atlas_pages_fetched_total",
				Help: "Total number of probe catalog pages fetched from the Atlas API",
			},
		),

		PageFetchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "atlas_page_fetch_duration_seconds",
				Help:    "Atlas API page request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		HTTPErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atlas_http_errors_total",
				Help: "Total number of non-success HTTP responses from the Atlas API",
			},
			[]string{"status"},
		),

		// Listing Metrics
		ProbesListed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "atlas_probes_listed_total",
				Help: "Total number of probe records normalized from the catalog",
			},
		),

		RowsWritten: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "atlas_rows_written_total",
				Help: "Total number of probe rows written to the output file",
			},
		),
	}
}
