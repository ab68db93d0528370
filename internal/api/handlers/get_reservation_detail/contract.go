package get_reservation_detail

import (
	"context"

	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	Detail(ctx context.Context, id int64) (*models.ReservationDetailResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
