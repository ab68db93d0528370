package create_reservation

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations/models"
	createReservation "github.com/m04kA/BikeRepair-BookingService/internal/usecase/create_reservation"
)

// Имена полей multipart формы
const (
	formName              = "name"
	formDate              = "date"
	formTimeSlot          = "timeSlot"
	formVisitReason       = "visitReason"
	formServiceMenuID     = "serviceMenuId"
	formNote              = "note"
	formManufacturer      = "manufacturer"
	formModelName         = "modelName"
	formDetails           = "details"
	formHasPartsBroughtIn = "hasPartsBroughtIn"
	formImages            = "images"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Name          string      `json:"name"`
	Date          string      `json:"date"` // "2025-10-15"
	TimeSlot      string      `json:"timeSlot"`
	VisitReason   string      `json:"visitReason"`
	ServiceMenuID *int64      `json:"serviceMenuId,omitempty"`
	Note          string      `json:"note"`
	Bike          BikeRequest `json:"bike"`
}

// BikeRequest данные о велосипеде
type BikeRequest struct {
	Manufacturer      string `json:"manufacturer"`
	ModelName         string `json:"modelName"`
	Details           string `json:"details"`
	HasPartsBroughtIn bool   `json:"hasPartsBroughtIn"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	ID               int64                      `json:"id"`
	ConfirmationURL  string                     `json:"confirmationUrl"`
	Reservation      models.ReservationResponse `json:"reservation"`
	BikeInfo         *models.BikeInfoResponse   `json:"bikeInfo"`
	NotificationSent bool                       `json:"notificationSent"`
}

// fromMultipartForm собирает запрос из полей multipart формы
func fromMultipartForm(form *multipart.Form) (*CreateReservationRequest, error) {
	value := func(key string) string {
		if values := form.Value[key]; len(values) > 0 {
			return strings.TrimSpace(values[0])
		}
		return ""
	}

	req := &CreateReservationRequest{
		Name:        value(formName),
		Date:        value(formDate),
		TimeSlot:    value(formTimeSlot),
		VisitReason: value(formVisitReason),
		Note:        value(formNote),
		Bike: BikeRequest{
			Manufacturer: value(formManufacturer),
			ModelName:    value(formModelName),
			Details:      value(formDetails),
		},
	}

	if raw := value(formServiceMenuID); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", formServiceMenuID, err)
		}
		req.ServiceMenuID = &id
	}

	if raw := value(formHasPartsBroughtIn); raw != "" {
		flag, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", formHasPartsBroughtIn, err)
		}
		req.Bike.HasPartsBroughtIn = flag
	}

	return req, nil
}

// ToUseCaseRequest конвертирует HTTP request в модель use case.
// Некорректная дата возвращается как ошибка поля date.
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, domain.ValidationErrors) {
	req := &createReservation.Request{
		UserID:        &userID,
		Name:          r.Name,
		TimeSlot:      r.TimeSlot,
		VisitReason:   r.VisitReason,
		ServiceMenuID: r.ServiceMenuID,
		Note:          r.Note,
		Bike: createReservation.BikeRequest{
			Manufacturer:      r.Bike.Manufacturer,
			ModelName:         r.Bike.ModelName,
			Details:           r.Bike.Details,
			HasPartsBroughtIn: r.Bike.HasPartsBroughtIn,
		},
	}

	if r.Date != "" {
		date, err := domain.ParseDate(r.Date)
		if err != nil {
			return nil, domain.ValidationErrors{{Field: domain.FieldDate, Err: domain.ErrInvalidFormat}}
		}
		req.Date = date
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response, url models.URLFunc) *CreateReservationResponse {
	return &CreateReservationResponse{
		ID:               resp.Reservation.ID,
		ConfirmationURL:  confirmationURL(resp.Reservation.ID),
		Reservation:      *models.FromDomainReservation(resp.Reservation, false),
		BikeInfo:         models.FromDomainBikeInfo(resp.BikeInfo, url),
		NotificationSent: resp.NotificationSent,
	}
}

func confirmationURL(id int64) string {
	return fmt.Sprintf("/api/v1/reservations/%d", id)
}
