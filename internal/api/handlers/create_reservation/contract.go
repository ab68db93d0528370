package create_reservation

import (
	"context"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	createReservation "github.com/m04kA/BikeRepair-BookingService/internal/usecase/create_reservation"
)

type CreateReservationUseCase interface {
	Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error)
}

// BookedSlotsProvider источник занятых слотов для ответа 422
type BookedSlotsProvider interface {
	BookedSlots(ctx context.Context) (map[string][]domain.TimeSlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
