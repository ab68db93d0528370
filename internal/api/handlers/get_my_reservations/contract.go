package get_my_reservations

import (
	"context"

	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	MyReservations(ctx context.Context, userID int64) (*models.MyReservationsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
