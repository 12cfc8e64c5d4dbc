package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// advisory service.
type Metrics struct {
	// Read side: advisory assembly.
	AdvisoriesBuilt       prometheus.Counter
	AdvisoryBuildDuration prometheus.Histogram
	StoreErrors           prometheus.Counter

	// Ingest side: forecast envelope pipeline.
	MessagesConsumed prometheus.Counter
	RecordsLoaded    prometheus.Counter
	ValidationErrors prometheus.Counter
	PipelineRunning  prometheus.Gauge
	BatchSize        prometheus.Histogram

	// Site-flag cache refreshes, labeled by result={ok,error}.
	FlagRefreshes *prometheus.CounterVec
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AdvisoriesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "advisory",
			Name:      "builds_total",
			Help:      "Total zone advisories assembled.",
		}),
		AdvisoryBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "advisory",
			Name:      "build_duration_seconds",
			Help:      "Duration of a complete fetch-normalize-analyze cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "advisory",
			Name:      "store_errors_total",
			Help:      "Total record store query failures.",
		}),
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "advisory",
			Name:      "ingest_messages_consumed_total",
			Help:      "Total envelopes read from the source topic.",
		}),
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "advisory",
			Name:      "ingest_records_loaded_total",
			Help:      "Total forecast records upserted into the store.",
		}),
		ValidationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "advisory",
			Name:      "ingest_validation_errors_total",
			Help:      "Total envelopes rejected at the ingestion boundary.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "advisory",
			Name:      "ingest_pipeline_running",
			Help:      "1 when the ingest pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "advisory",
			Name:      "ingest_batch_size",
			Help:      "Number of envelopes per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		FlagRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "advisory",
			Name:      "flag_refreshes_total",
			Help:      "Site-flag cache refreshes by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.AdvisoriesBuilt,
		m.AdvisoryBuildDuration,
		m.StoreErrors,
		m.MessagesConsumed,
		m.RecordsLoaded,
		m.ValidationErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.FlagRefreshes,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AdvisoriesBuilt:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "advisory", Name: "builds_total"}),
		AdvisoryBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "advisory", Name: "build_duration_seconds"}),
		StoreErrors:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "advisory", Name: "store_errors_total"}),
		MessagesConsumed:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "advisory", Name: "ingest_messages_consumed_total"}),
		RecordsLoaded:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "advisory", Name: "ingest_records_loaded_total"}),
		ValidationErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "advisory", Name: "ingest_validation_errors_total"}),
		PipelineRunning:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "advisory", Name: "ingest_pipeline_running"}),
		BatchSize:             prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "advisory", Name: "ingest_batch_size"}),
		FlagRefreshes:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "advisory", Name: "flag_refreshes_total"}, []string{"result"}),
	}
}
