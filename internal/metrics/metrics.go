// Package metrics collects and exposes Prometheus metrics for the article
// lifecycle core.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics interface consumed by the engine, fanout and
// scheduler.
type Recorder interface {
	RecordTransitionApplied(from, to string)
	RecordTransitionDenied(to string)
	RecordTransitionConflict()
	RecordScheduledPromotion()
	RecordFanoutFailure(kind string)
	RecordBroadcastSize(n int)
}

// Collector is the Prometheus-backed Recorder implementation.
type Collector struct {
	registry *prometheus.Registry

	transitionsApplied *prometheus.CounterVec
	transitionsDenied  *prometheus.CounterVec
	conflicts          prometheus.Counter
	promotions         prometheus.Counter
	fanoutFailures     *prometheus.CounterVec
	broadcastSize      prometheus.Histogram
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		transitionsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pressroom_transitions_applied_total",
			Help: "Committed article status transitions by (from, to) pair",
		}, []string{"from", "to"}),
		transitionsDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pressroom_transitions_denied_total",
			Help: "Transition requests denied by the policy, by requested status",
		}, []string{"to"}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pressroom_transition_conflicts_total",
			Help: "Transitions lost to the optimistic-concurrency check",
		}),
		promotions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pressroom_scheduled_promotions_total",
			Help: "Scheduled articles promoted to published by the scheduler",
		}),
		fanoutFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pressroom_fanout_failures_total",
			Help: "Notification fanout failures by kind",
		}, []string{"kind"}),
		broadcastSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pressroom_broadcast_size",
			Help:    "Subscriber audience size per broadcast fanout",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}

	c.registry.MustRegister(
		c.transitionsApplied,
		c.transitionsDenied,
		c.conflicts,
		c.promotions,
		c.fanoutFailures,
		c.broadcastSize,
	)

	return c
}

func (c *Collector) RecordTransitionApplied(from, to string) {
	c.transitionsApplied.WithLabelValues(from, to).Inc()
}

func (c *Collector) RecordTransitionDenied(to string) {
	c.transitionsDenied.WithLabelValues(to).Inc()
}

func (c *Collector) RecordTransitionConflict() {
	c.conflicts.Inc()
}

func (c *Collector) RecordScheduledPromotion() {
	c.promotions.Inc()
}

func (c *Collector) RecordFanoutFailure(kind string) {
	c.fanoutFailures.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordBroadcastSize(n int) {
	c.broadcastSize.Observe(float64(n))
}

// Handler returns the scrape endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Nop is a Recorder that discards everything. Used in tests.
type Nop struct{}

func (Nop) RecordTransitionApplied(from, to string) {}
func (Nop) RecordTransitionDenied(to string)        {}
func (Nop) RecordTransitionConflict()               {}
func (Nop) RecordScheduledPromotion()               {}
func (Nop) RecordFanoutFailure(kind string)         {}
func (Nop) RecordBroadcastSize(n int)               {}
