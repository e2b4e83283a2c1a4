package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

// ScoringMetrics observes the assessment pipeline and the circuit breakers
// guarding its upstream calls.
type ScoringMetrics struct {
	service string

	itemsScored    *prometheus.CounterVec
	rejected       *prometheus.CounterVec
	modelCalls     *prometheus.HistogramVec
	occupationRuns *prometheus.HistogramVec
	breakerState   *prometheus.GaugeVec
}

func NewScoringMetrics(service string, registerer prometheus.Registerer) *ScoringMetrics {
	itemsScored := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "items_scored_total",
			Help:      "Items scored by layer and O*NET category.",
		},
		[]string{"service", "layer", "category"},
	)
	rejected := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "records_rejected_total",
			Help:      "Assessment records rejected as malformed, by layer and category.",
		},
		[]string{"service", "layer", "category"},
	)
	modelCalls := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "call_duration_seconds",
			Help:      "Language model call duration by layer and status.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 160},
		},
		[]string{"service", "layer", "status"},
	)
	occupationRuns := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "occupation_run_duration_seconds",
			Help:      "Whole-occupation scoring runs by status.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"service", "status"},
	)
	breakerState := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "resilience",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state per operation (0 closed, 1 half-open, 2 open).",
		},
		[]string{"service", "operation"},
	)

	registerer.MustRegister(itemsScored, rejected, modelCalls, occupationRuns, breakerState)

	return &ScoringMetrics{
		service:        service,
		itemsScored:    itemsScored,
		rejected:       rejected,
		modelCalls:     modelCalls,
		occupationRuns: occupationRuns,
		breakerState:   breakerState,
	}
}

func (m *ScoringMetrics) ObserveItemsScored(layer string, category domain.OnetCategory, count int) {
	if count <= 0 {
		return
	}
	m.itemsScored.WithLabelValues(m.service, layer, string(category)).Add(float64(count))
}

func (m *ScoringMetrics) ObserveRejected(layer string, category domain.OnetCategory, count int) {
	if count <= 0 {
		return
	}
	m.rejected.WithLabelValues(m.service, layer, string(category)).Add(float64(count))
}

func (m *ScoringMetrics) ObserveModelCall(layer, status string, seconds float64) {
	m.modelCalls.WithLabelValues(m.service, layer, status).Observe(seconds)
}

func (m *ScoringMetrics) ObserveOccupationRun(status string, seconds float64) {
	m.occupationRuns.WithLabelValues(m.service, status).Observe(seconds)
}

// ObserveBreakerState matches resilience.StateObserver.
func (m *ScoringMetrics) ObserveBreakerState(operation string, _ gobreaker.State, to gobreaker.State) {
	m.breakerState.WithLabelValues(m.service, operation).Set(float64(to))
}
