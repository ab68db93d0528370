package send_reminders

import (
	"context"
	"time"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// Notifier отправка напоминаний
type Notifier interface {
	SendReminder(ctx context.Context, res *domain.Reservation) bool
}

// Metrics метрики рассылки
type Metrics interface {
	ObserveReminderResult(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
