package update_reservation

import (
	"context"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	Update(ctx context.Context, id int64, req *models.UpdateReservationRequest) (*models.ReservationResponse, error)
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
