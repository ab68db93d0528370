package manage_service_menus

import (
	"context"

	"github.com/m04kA/BikeRepair-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListServiceMenus(ctx context.Context, activeOnly bool) (*models.ServiceMenuListResponse, error)
	CreateServiceMenu(ctx context.Context, req *models.ServiceMenuRequest) (*models.ServiceMenuResponse, error)
	UpdateServiceMenu(ctx context.Context, id int64, req *models.ServiceMenuRequest) (*models.ServiceMenuResponse, error)
	DeleteServiceMenu(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
