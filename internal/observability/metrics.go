package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StageCompletion = "completion"
	StageChatTotal  = "chat_total"

	IndicatorUpstreamError = "upstream_error"
	IndicatorEmptyQuestion = "empty_question"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	ChatRequests         *prometheus.CounterVec
	ProviderErrors       *prometheus.CounterVec
	ConversationsCleared *prometheus.CounterVec
	StoredConversations  prometheus.Gauge
	CompletionLatency    prometheus.Histogram
	Indicators           *prometheus.CounterVec

	latency *latencyWindow
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ChatRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_requests_total",
			Help:      "Chat requests by persona and outcome.",
		}, []string{"mode", "outcome"}),
		ProviderErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Provider errors by provider and code.",
		}, []string{"provider", "code"}),
		ConversationsCleared: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversations_cleared_total",
			Help:      "Clear operations by scope.",
		}, []string{"scope"}),
		StoredConversations: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stored_conversations",
			Help:      "Number of (user, persona) conversations held in memory.",
		}),
		CompletionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_latency_ms",
			Help:      "Latency of upstream completion calls in milliseconds.",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 4000, 8000, 16000},
		}),
		Indicators: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "indicators_total",
			Help:      "Notable request conditions by name.",
		}, []string{"name"}),
		latency: newLatencyWindow(256),
	}
}

func (m *Metrics) ObserveCompletion(d time.Duration) {
	if m == nil {
		return
	}
	m.CompletionLatency.Observe(float64(d.Milliseconds()))
	m.latency.Observe(StageCompletion, d)
}

func (m *Metrics) ObserveChat(mode, outcome string, total time.Duration) {
	if m == nil {
		return
	}
	m.ChatRequests.WithLabelValues(mode, outcome).Inc()
	m.latency.Observe(StageChatTotal, total)
}

func (m *Metrics) ObserveProviderError(provider, code string) {
	if m == nil {
		return
	}
	m.ProviderErrors.WithLabelValues(provider, code).Inc()
	m.Indicators.WithLabelValues(IndicatorUpstreamError).Inc()
}

func (m *Metrics) ObserveIndicator(name string) {
	if m == nil {
		return
	}
	m.Indicators.WithLabelValues(name).Inc()
}

func (m *Metrics) ObserveCleared(scope string, stored int) {
	if m == nil {
		return
	}
	m.ConversationsCleared.WithLabelValues(scope).Inc()
	m.StoredConversations.Set(float64(stored))
}

func (m *Metrics) SetStoredConversations(n int) {
	if m == nil {
		return
	}
	m.StoredConversations.Set(float64(n))
}

// SnapshotLatency summarizes the most recent completion and chat latencies.
func (m *Metrics) SnapshotLatency() LatencySnapshot {
	if m == nil {
		return LatencySnapshot{Stages: []StageStats{}}
	}
	return m.latency.Snapshot()
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
