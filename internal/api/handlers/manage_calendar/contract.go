package manage_calendar

import (
	"context"

	"github.com/m04kA/BikeRepair-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListTimeSlots(ctx context.Context) (*models.TimeSlotListResponse, error)
	CreateTimeSlot(ctx context.Context, req *models.TimeSlotRequest) (*models.TimeSlotResponse, error)
	SetBusinessDay(ctx context.Context, date string, req *models.BusinessDayRequest) (*models.BusinessDayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
