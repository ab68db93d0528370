package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_BusinessCounters(t *testing.T) {
	m := NewWithRegisterer("test_booking", prometheus.NewRegistry())

	m.IncReservationsCreated()
	m.IncReservationsCreated()
	m.IncSlotConflicts()
	m.ObserveNotification("reminder", "email", "sent")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReservationsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotConflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsTotal.WithLabelValues("reminder", "email", "sent")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncReservationsCreated()
		m.IncSlotConflicts()
		m.ObserveNotification("confirmation", "email", "failed")
		m.ObserveReminderResult("skipped")
	})
}
