package get_dashboard

import (
	"context"

	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	Dashboard(ctx context.Context) (*models.DashboardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
