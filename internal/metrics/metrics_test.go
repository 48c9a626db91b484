package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := New(prometheus.NewRegistry(), "test")

	m.Booking("committed", time.Now())
	m.Booking("rejected", time.Now())
	m.Booking("committed", time.Now())
	m.CacheHit()
	m.Compensated()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingAttempts.WithLabelValues("committed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScheduleCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CompensatingWrite))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Booking("committed", time.Now())
		m.Pushed("ok")
		m.CacheMiss()
		m.Request("GET", "/health", "200", time.Millisecond)
	})
}
