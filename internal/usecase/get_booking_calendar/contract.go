package get_booking_calendar

import (
	"context"
	"time"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetBookedSlots(ctx context.Context, from time.Time) ([]domain.Slot, error)
}

// CalendarRepository интерфейс репозитория календаря
type CalendarRepository interface {
	ListBusinessDays(ctx context.Context, from, to time.Time) ([]*domain.BusinessDay, error)
	ListHolidays(ctx context.Context) ([]*domain.Holiday, error)
}

// ServiceMenuRepository интерфейс репозитория меню
type ServiceMenuRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.ServiceMenu, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
