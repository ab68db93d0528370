package manage_holidays

import (
	"context"

	"github.com/m04kA/BikeRepair-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListHolidays(ctx context.Context) (*models.HolidayListResponse, error)
	CreateHoliday(ctx context.Context, req *models.HolidayRequest) (*models.HolidayResponse, error)
	UpdateHoliday(ctx context.Context, id int64, req *models.HolidayRequest) (*models.HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
