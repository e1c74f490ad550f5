package metrics

import "github.com/prometheus/client_golang/prometheus"

// EventMetrics records the fate of domain events moving through the
// in-process publish queue.
type EventMetrics struct {
	published *prometheus.CounterVec
	failed    *prometheus.CounterVec
	dropped   prometheus.Counter
	queueLen  prometheus.Gauge
}

// NewEventMetrics registers the event pipeline metrics on the provided registerer.
func NewEventMetrics(reg prometheus.Registerer) *EventMetrics {
	if reg == nil {
		return &EventMetrics{}
	}
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "user_events_published_total",
		Help: "User events successfully published, by event type.",
	}, []string{"event_type"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "user_events_failed_total",
		Help: "User events that failed to publish, by event type.",
	}, []string{"event_type"})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "user_events_dropped_total",
		Help: "User events dropped because the publish queue was full.",
	})
	queueLen := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "user_events_queue_length",
		Help: "User events waiting in the publish queue.",
	})
	reg.MustRegister(published, failed, dropped, queueLen)
	return &EventMetrics{
		published: published,
		failed:    failed,
		dropped:   dropped,
		queueLen:  queueLen,
	}
}

// IncPublished increments the published counter for the event type.
func (m *EventMetrics) IncPublished(eventType string) {
	if m == nil || m.published == nil {
		return
	}
	m.published.WithLabelValues(normalizeLabel(eventType)).Inc()
}

// IncFailed increments the failure counter for the event type.
func (m *EventMetrics) IncFailed(eventType string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(eventType)).Inc()
}

// IncDropped increments the dropped-event counter.
func (m *EventMetrics) IncDropped() {
	if m == nil || m.dropped == nil {
		return
	}
	m.dropped.Inc()
}

// SetQueueLength records the current publish queue depth.
func (m *EventMetrics) SetQueueLength(n int) {
	if m == nil || m.queueLen == nil {
		return
	}
	m.queueLen.Set(float64(n))
}
