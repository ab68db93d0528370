package create_reservation

import (
	"io"
	"time"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID        *int64 // nil для бронирования, созданного без аккаунта
	Name          string
	Date          time.Time
	TimeSlot      string
	VisitReason   string
	ServiceMenuID *int64
	Note          string

	Bike   BikeRequest
	Images []Upload
}

// BikeRequest данные о велосипеде
type BikeRequest struct {
	Manufacturer      string
	ModelName         string
	Details           string
	HasPartsBroughtIn bool
}

// Upload загружаемый файл фотографии
type Upload struct {
	Filename string
	Content  io.Reader
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation      *domain.Reservation
	BikeInfo         *domain.BikeInfo
	NotificationSent bool
}

const imageCategory = "bike_images"
