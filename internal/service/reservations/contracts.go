package reservations

import (
	"context"
	"time"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	CountByStatus(ctx context.Context, from time.Time) ([]domain.StatusCount, error)
	ExistsConfirmed(ctx context.Context, slot domain.Slot, excludeID *int64) (bool, error)
	Update(ctx context.Context, res *domain.Reservation) error
	TransitionStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) error
	Delete(ctx context.Context, id int64) error
}

// BikeInfoRepository интерфейс репозитория информации о велосипеде
type BikeInfoRepository interface {
	GetByReservationID(ctx context.Context, reservationID int64) (*domain.BikeInfo, error)
	ListImagePaths(ctx context.Context, reservationID int64) ([]string, error)
	DeleteByReservationID(ctx context.Context, reservationID int64) error
}

// WorkHistoryRepository интерфейс репозитория истории работ
type WorkHistoryRepository interface {
	GetByReservationID(ctx context.Context, reservationID int64) (*domain.WorkHistory, error)
	DeleteByReservationID(ctx context.Context, reservationID int64) error
}

// ServiceMenuRepository интерфейс репозитория меню
type ServiceMenuRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceMenu, error)
}

// PhotoStorage хранилище фотографий
type PhotoStorage interface {
	Delete(ctx context.Context, path string) error
	URL(path string) string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
