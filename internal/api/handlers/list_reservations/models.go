package list_reservations

import (
	"net/url"

	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations/models"
)

// Параметры фильтрации в query string
const (
	QueryStatus   = "status"
	QueryDateFrom = "date_from"
	QueryDateTo   = "date_to"
)

// ParseFilter читает фильтр списка бронирований из query параметров
func ParseFilter(query url.Values) *models.ListReservationsRequest {
	return &models.ListReservationsRequest{
		Status:   query.Get(QueryStatus),
		DateFrom: query.Get(QueryDateFrom),
		DateTo:   query.Get(QueryDateTo),
	}
}
