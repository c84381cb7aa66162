package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the assistant.
type Metrics struct {
	TurnsTotal      *prometheus.CounterVec
	BrainLatency    prometheus.Histogram
	BrainErrors     prometheus.Counter
	StoreErrors     *prometheus.CounterVec
	SpeechUtterance *prometheus.CounterVec
	QueueDepth      prometheus.Gauge
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		TurnsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Conversation turns by routed action.",
		}, []string{"action"}),
		BrainLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "brain_latency_ms",
			Help:      "Language model reply latency in milliseconds.",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 4000, 8000, 16000},
		}),
		BrainErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "brain_errors_total",
			Help:      "Language model calls that fell back to the canned reply.",
		}),
		StoreErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Schedule store failures by operation.",
		}, []string{"op"}),
		SpeechUtterance: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "speech_utterances_total",
			Help:      "Speech output results by outcome.",
		}, []string{"outcome"}),
		QueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "speech_queue_depth",
			Help:      "Utterances waiting in the speech output queue.",
		}),
	}
}

func (m *Metrics) ObserveBrainLatency(d time.Duration) {
	m.BrainLatency.Observe(float64(d.Milliseconds()))
}

// SpeechSpoken, SpeechError and SpeechQueueDepth satisfy the speech worker's
// metrics interface.
func (m *Metrics) SpeechSpoken() {
	m.SpeechUtterance.WithLabelValues("spoken").Inc()
}

func (m *Metrics) SpeechError() {
	m.SpeechUtterance.WithLabelValues("error").Inc()
}

func (m *Metrics) SpeechQueueDepth(n int) {
	m.QueueDepth.Set(float64(n))
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
