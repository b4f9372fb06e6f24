package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	TurnsProcessed    *prometheus.CounterVec
	MutationsApplied  prometheus.Counter
	LLMCalls          *prometheus.CounterVec
	MapsLookups       *prometheus.CounterVec
	TurnDuration      prometheus.Histogram
	ValidatorFindings *prometheus.CounterVec
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		TurnsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_processed_total",
			Help:      "The total number of conversation turns handled, by intent",
		}, []string{"intent"}),
		MutationsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_applied_total",
			Help:      "The total number of plan mutations applied",
		}),
		LLMCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_calls_total",
			Help:      "The total number of LLM completions, by caller",
		}, []string{"caller"}),
		MapsLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "maps_lookups_total",
			Help:      "The total number of maps collaborator lookups, by operation",
		}, []string{"operation"}),
		TurnDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "Time taken to handle one conversation turn",
			Buckets:   prometheus.DefBuckets,
		}),
		ValidatorFindings: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validator_findings_total",
			Help:      "The total number of validation findings, by agent and severity",
		}, []string{"agent", "severity"}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
