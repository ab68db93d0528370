// Package metrics содержит prometheus-коллекторы сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	// Бизнес-метрики
	ReservationsCreated  prometheus.Counter
	SlotConflicts        prometheus.Counter
	NotificationsTotal   *prometheus.CounterVec
	ReminderBatchResults *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_open_connections",
			Help:      "Number of established connections",
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_in_use_connections",
			Help:      "Number of connections currently in use",
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_idle_connections",
			Help:      "Number of idle connections",
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for",
		}),

		ReservationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "reservations_created_total",
			Help:      "Number of reservations successfully booked",
		}),
		SlotConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "reservation_slot_conflicts_total",
			Help:      "Number of booking attempts rejected because the slot was taken",
		}),
		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "notifications_total",
			Help:      "Notifications by kind, channel and result",
		}, []string{"kind", "channel", "result"}),
		ReminderBatchResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "reminder_batch_results_total",
			Help:      "Reminder batch outcomes per reservation",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.ReservationsCreated,
		m.SlotConflicts,
		m.NotificationsTotal,
		m.ReminderBatchResults,
	)

	return m
}

// Методы ниже безопасно вызывать на nil *Metrics (метрики выключены в конфиге)

// IncReservationsCreated увеличивает счетчик созданных бронирований
func (m *Metrics) IncReservationsCreated() {
	if m == nil {
		return
	}
	m.ReservationsCreated.Inc()
}

// IncSlotConflicts увеличивает счетчик конфликтов слотов
func (m *Metrics) IncSlotConflicts() {
	if m == nil {
		return
	}
	m.SlotConflicts.Inc()
}

// ObserveNotification учитывает попытку отправки уведомления
func (m *Metrics) ObserveNotification(kind, channel, result string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(kind, channel, result).Inc()
}

// ObserveReminderResult учитывает результат обработки одного бронирования в рассылке напоминаний
func (m *Metrics) ObserveReminderResult(result string) {
	if m == nil {
		return
	}
	m.ReminderBatchResults.WithLabelValues(result).Inc()
}
