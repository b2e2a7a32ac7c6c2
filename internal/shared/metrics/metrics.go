package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	generationStartedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recipe_generation_started_total",
		Help: "Total recipe generations started",
	})
	generationCompletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recipe_generation_completed_total",
		Help: "Total recipe generations completed",
	})
	generationFailedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recipe_generation_failed_total",
		Help: "Total recipe generations failed, by reason",
	}, []string{"reason"})
	generationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recipe_generation_duration_ms",
		Help:    "Recipe generation duration in milliseconds",
		Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	})
)

func init() {
	registry.MustRegister(
		generationStartedTotal,
		generationCompletedTotal,
		generationFailedTotal,
		generationDuration,
		collectors.NewGoCollector(),
	)
}

// IncGenerationStarted increments the started counter.
func IncGenerationStarted() {
	generationStartedTotal.Inc()
}

// IncGenerationCompleted increments the completed counter.
func IncGenerationCompleted() {
	generationCompletedTotal.Inc()
}

// IncGenerationFailed increments the failed counter for reason.
func IncGenerationFailed(reason string) {
	generationFailedTotal.WithLabelValues(reason).Inc()
}

// ObserveGenerationDurationMs records a generation duration in milliseconds.
func ObserveGenerationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	generationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
