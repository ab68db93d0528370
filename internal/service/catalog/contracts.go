package catalog

import (
	"context"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

// ServiceMenuRepository интерфейс репозитория меню
type ServiceMenuRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.ServiceMenu, error)
	GetByID(ctx context.Context, id int64) (*domain.ServiceMenu, error)
	Create(ctx context.Context, menu *domain.ServiceMenu) (*domain.ServiceMenu, error)
	Update(ctx context.Context, menu *domain.ServiceMenu) error
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository отвязка бронирований от удаляемого меню
type ReservationRepository interface {
	DetachServiceMenu(ctx context.Context, menuID int64) error
}

// CalendarRepository интерфейс репозитория календаря
type CalendarRepository interface {
	ListTimeSlots(ctx context.Context) ([]*domain.SlotDefinition, error)
	CreateTimeSlot(ctx context.Context, slot *domain.SlotDefinition) (*domain.SlotDefinition, error)
	UpsertBusinessDay(ctx context.Context, day *domain.BusinessDay) (*domain.BusinessDay, error)
	ListHolidays(ctx context.Context) ([]*domain.Holiday, error)
	GetHoliday(ctx context.Context, id int64) (*domain.Holiday, error)
	CreateHoliday(ctx context.Context, h *domain.Holiday) (*domain.Holiday, error)
	UpdateHoliday(ctx context.Context, h *domain.Holiday) error
	DeleteHoliday(ctx context.Context, id int64) error
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
