package update_work_history

import (
	"context"
	"io"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

// WorkHistoryRepository интерфейс репозитория истории работ
type WorkHistoryRepository interface {
	GetByReservationID(ctx context.Context, reservationID int64) (*domain.WorkHistory, error)
	Create(ctx context.Context, wh *domain.WorkHistory) (*domain.WorkHistory, error)
	Update(ctx context.Context, wh *domain.WorkHistory) error
}

// PhotoStorage хранилище фотографий
type PhotoStorage interface {
	Save(ctx context.Context, category, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}

// Notifier уведомление о завершении работ
type Notifier interface {
	SendWorkCompletion(ctx context.Context, res *domain.Reservation, wh *domain.WorkHistory) bool
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
