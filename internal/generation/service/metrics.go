package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks generation outcomes and model latency
type Metrics struct {
	generations  *prometheus.CounterVec
	fallbacks    *prometheus.CounterVec
	modelLatency *prometheus.HistogramVec
	tokens       *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which tests rely on.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chart_studio",
			Name:      "generations_total",
			Help:      "Generation requests by source and outcome.",
		}, []string{"source", "outcome"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chart_studio",
			Name:      "fallbacks_total",
			Help:      "Heuristic fallbacks by reason.",
		}, []string{"reason"}),
		modelLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chart_studio",
			Name:      "model_request_seconds",
			Help:      "Latency of chat-completion requests.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"provider", "model"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chart_studio",
			Name:      "model_tokens_total",
			Help:      "Tokens reported by the model provider.",
		}, []string{"model", "kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.generations, m.fallbacks, m.modelLatency, m.tokens)
	}
	return m
}

func (m *Metrics) recordGeneration(source, outcome string) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(source, outcome).Inc()
}

func (m *Metrics) recordFallback(reason string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(reason).Inc()
}

// ObserveModel matches llm.Observer so it can be installed with llm.Observe.
func (m *Metrics) ObserveModel(provider, model string, elapsed time.Duration, _ error) {
	if m == nil {
		return
	}
	m.modelLatency.WithLabelValues(provider, model).Observe(elapsed.Seconds())
}

func (m *Metrics) recordTokens(model string, prompt, completion int) {
	if m == nil {
		return
	}
	m.tokens.WithLabelValues(model, "prompt").Add(float64(prompt))
	m.tokens.WithLabelValues(model, "completion").Add(float64(completion))
}
