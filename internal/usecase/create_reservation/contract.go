package create_reservation

import (
	"context"
	"io"
	"time"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	ExistsConfirmed(ctx context.Context, slot domain.Slot, excludeID *int64) (bool, error)
}

// BikeInfoRepository интерфейс репозитория информации о велосипеде
type BikeInfoRepository interface {
	Create(ctx context.Context, info *domain.BikeInfo) (*domain.BikeInfo, error)
	AddImage(ctx context.Context, image *domain.BikeImage) (*domain.BikeImage, error)
}

// ServiceMenuRepository интерфейс репозитория меню
type ServiceMenuRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceMenu, error)
}

// PhotoStorage хранилище загруженных фотографий
type PhotoStorage interface {
	Save(ctx context.Context, category, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}

// Notifier отправка подтверждения бронирования
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, res *domain.Reservation) bool
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	IncReservationsCreated()
	IncSlotConflicts()
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

// RealTimeProvider реальный провайдер времени в часовом поясе мастерской
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
