package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline counters and histograms, partitioned by project and source type.

var (
	// Scheduler
	SchedulerTicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cip",
		Subsystem: "scheduler",
		Name:      "ticks_total",
		Help:      "Total scheduler ticks",
	})

	SchedulerDuePairs = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "cip",
		Subsystem: "scheduler",
		Name:      "due_pairs",
		Help:      "Pairs found due on the most recent tick",
	})

	SchedulerTickLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cip",
		Subsystem: "scheduler",
		Name:      "tick_duration_seconds",
		Help:      "Scheduler tick processing duration",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})

	SchedulerPairRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cip",
		Subsystem: "scheduler",
		Name:      "pair_runs_total",
		Help:      "Total pair runs by outcome",
	}, []string{"project", "source_type", "outcome"})

	// Ingestion stage
	IngestEventsFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cip",
		Subsystem: "ingest",
		Name:      "events_fetched_total",
		Help:      "Total candidate events returned by adapters",
	}, []string{"project", "source_type"})

	IngestEventsInserted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cip",
		Subsystem: "ingest",
		Name:      "events_inserted_total",
		Help:      "Total raw events newly inserted",
	}, []string{"project", "source_type"})

	IngestDuplicatesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cip",
		Subsystem: "ingest",
		Name:      "duplicates_skipped_total",
		Help:      "Total raw events skipped on unique-constraint conflict",
	}, []string{"project", "source_type"})

	IngestSourceErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cip",
		Subsystem: "ingest",
		Name:      "source_errors_total",
		Help:      "Total per-source ingestion failures",
	}, []string{"project", "source_type"})

	// Normalization stage
	NormalizeEventsScanned = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cip",
		Subsystem: "normalize",
		Name:      "events_scanned_total",
		Help:      "Total raw events examined by the normalizer",
	}, []string{"project"})

	NormalizeEventsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cip",
		Subsystem: "normalize",
		Name:      "events_written_total",
		Help:      "Total normalized events newly written",
	}, []string{"project"})

	NormalizeFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cip",
		Subsystem: "normalize",
		Name:      "fallback_records_total",
		Help:      "Total normalized events produced by the unknown-type fallback",
	}, []string{"project", "event_type"})

	// Insight stage
	InsightsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cip",
		Subsystem: "insight",
		Name:      "generated_total",
		Help:      "Total AI insights persisted",
	}, []string{"project"})

	InsightsSkippedCooldown = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cip",
		Subsystem: "insight",
		Name:      "skipped_cooldown_total",
		Help:      "Total insight runs skipped because a recent insight exists",
	}, []string{"project"})

	InsightErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cip",
		Subsystem: "insight",
		Name:      "errors_total",
		Help:      "Total insight generation failures",
	}, []string{"project"})

	// Source adapters
	AdapterFetchLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cip",
		Subsystem: "adapter",
		Name:      "fetch_duration_seconds",
		Help:      "Adapter fetch duration per source reference",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"source_type"})

	AdapterFetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cip",
		Subsystem: "adapter",
		Name:      "fetch_errors_total",
		Help:      "Total adapter fetch errors by retry class",
	}, []string{"source_type", "class"})

	// Summarizer
	SummarizerCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cip",
		Subsystem: "summarizer",
		Name:      "calls_total",
		Help:      "Total summarizer calls by outcome",
	}, []string{"language", "outcome"})

	SummarizerLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cip",
		Subsystem: "summarizer",
		Name:      "call_duration_seconds",
		Help:      "Summarizer call duration",
		Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	// Alerting
	AlertsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cip",
		Subsystem: "alert",
		Name:      "sent_total",
		Help:      "Total alerts delivered per channel",
	}, []string{"channel", "type"})

	AlertsCooldownSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cip",
		Subsystem: "alert",
		Name:      "cooldown_skipped_total",
		Help:      "Total alerts suppressed by the cooldown window",
	}, []string{"channel", "type"})

	// Database pool
	DBPoolOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "cip",
		Subsystem: "postgres",
		Name:      "db_pool_open",
		Help:      "Current number of open PostgreSQL connections in the pool",
	})

	DBPoolInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "cip",
		Subsystem: "postgres",
		Name:      "db_pool_in_use",
		Help:      "Current number of in-use PostgreSQL connections in the pool",
	})

	DBPoolIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "cip",
		Subsystem: "postgres",
		Name:      "db_pool_idle",
		Help:      "Current number of idle PostgreSQL connections in the pool",
	})
)
