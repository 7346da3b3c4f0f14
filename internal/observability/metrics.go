// # internal/observability/metrics.go
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	FlattenDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bundlelens_flatten_seconds",
		Help:    "Time spent flattening the module tree of a stats document.",
		Buckets: prometheus.DefBuckets,
	})

	GroupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bundlelens_group_seconds",
		Help:    "Time spent joining modules to script assets.",
		Buckets: prometheus.DefBuckets,
	})

	ValidateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bundlelens_validate_seconds",
		Help:    "Time spent validating a stats document against the input schema.",
		Buckets: prometheus.DefBuckets,
	})

	RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bundlelens_render_seconds",
		Help:    "Time spent rendering a report.",
		Buckets: prometheus.DefBuckets,
	}, []string{"format"})

	ModulesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bundlelens_modules_total",
		Help: "Number of resolved modules in the most recent analysis.",
	})

	AssetsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bundlelens_assets_total",
		Help: "Number of script assets in the most recent analysis.",
	})

	ResolutionWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bundlelens_resolution_warnings_total",
		Help: "Total identifier/name pairs the path heuristics could not reconcile.",
	})

	AnalysesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bundlelens_analyses_total",
		Help: "Total completed analyses.",
	})

	AnalysisErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bundlelens_analysis_errors_total",
		Help: "Total analyses aborted by validation or shape errors.",
	})

	WatchEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bundlelens_watch_events_total",
		Help: "Total file system events received for the watched stats document.",
	})
)
