package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the booking engine metrics. A nil *Metrics records nothing.
type Metrics struct {
	BookingAttempts   *prometheus.CounterVec
	BookingLatency    prometheus.Histogram
	SlotGeneration    prometheus.Histogram
	AvailabilityPush  *prometheus.CounterVec
	ScheduleCache     *prometheus.CounterVec
	HTTPRequests      *prometheus.CounterVec
	HTTPLatency       *prometheus.HistogramVec
	CompensatingWrite prometheus.Counter
}

func New(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		BookingAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_attempts_total",
			Help:      "Booking attempts by outcome",
		}, []string{"outcome"}),
		BookingLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "booking_duration_seconds",
			Help:      "Time spent validating and committing a booking",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		SlotGeneration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "slot_generation_duration_seconds",
			Help:      "Time spent computing a day of slots",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25},
		}),
		AvailabilityPush: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_updates_total",
			Help:      "Availability updates broadcast to subscribers",
		}, []string{"status"}),
		ScheduleCache: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_cache_lookups_total",
			Help:      "Schedule configuration cache lookups",
		}, []string{"result"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CompensatingWrite: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_compensations_total",
			Help:      "Appointment headers removed after a failed line item write",
		}),
	}
}

func (m *Metrics) Booking(outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.BookingAttempts.WithLabelValues(outcome).Inc()
	m.BookingLatency.Observe(time.Since(started).Seconds())
}

func (m *Metrics) SlotsGenerated(started time.Time) {
	if m == nil {
		return
	}
	m.SlotGeneration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) Pushed(status string) {
	if m == nil {
		return
	}
	m.AvailabilityPush.WithLabelValues(status).Inc()
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.ScheduleCache.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.ScheduleCache.WithLabelValues("miss").Inc()
}

func (m *Metrics) Compensated() {
	if m == nil {
		return
	}
	m.CompensatingWrite.Inc()
}

func (m *Metrics) Request(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPLatency.WithLabelValues(method, route).Observe(d.Seconds())
}
