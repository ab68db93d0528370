package update_work_history

import (
	"io"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

// Request частичное обновление истории работ: nil поля не изменяются
type Request struct {
	ReservationID   int64
	EstimatedAmount *int64
	ActualAmount    *int64
	Status          *string
	AdminComment    *string
	CompletionPhoto *Upload
}

// Upload загружаемая фотография
type Upload struct {
	Filename string
	Content  io.Reader
}

// Response результат обновления
type Response struct {
	Reservation      *domain.Reservation
	WorkHistory      *domain.WorkHistory
	NotificationSent bool
}

const photoCategory = "completion_photos"
