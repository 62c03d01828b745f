package metrics

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	eventFetch = "dashboard.adapter.fetch"
	eventStale = "dashboard.adapter.stale"
)

// Telemetry turns dashboard events into Prometheus series.
type Telemetry struct {
	events  *prometheus.CounterVec
	fetches *prometheus.HistogramVec
	stale   *prometheus.CounterVec
}

// NewTelemetry registers the dashboard metrics on reg. A nil registerer
// yields a sink that drops everything.
func NewTelemetry(reg prometheus.Registerer) *Telemetry {
	if reg == nil {
		return &Telemetry{}
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_events_total",
		Help: "Dashboard events by name.",
	}, []string{"event"})
	fetches := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_fetch_duration_seconds",
		Help:    "Widget fetch duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"widget", "outcome"})
	stale := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_stale_responses_total",
		Help: "Widget responses discarded because a newer selection superseded them.",
	}, []string{"widget"})
	reg.MustRegister(events, fetches, stale)
	return &Telemetry{events: events, fetches: fetches, stale: stale}
}

// Record implements the dashboard telemetry sink.
func (t *Telemetry) Record(_ context.Context, event string, payload map[string]any) {
	if t == nil || t.events == nil {
		return
	}
	t.events.WithLabelValues(normalizeLabel(event)).Inc()
	switch event {
	case eventFetch:
		took, _ := payload["duration"].(time.Duration)
		t.fetches.WithLabelValues(label(payload, "widget"), label(payload, "outcome")).Observe(took.Seconds())
	case eventStale:
		t.stale.WithLabelValues(label(payload, "widget")).Inc()
	}
}

func label(payload map[string]any, key string) string {
	value, _ := payload[key].(string)
	return normalizeLabel(value)
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return value
}
