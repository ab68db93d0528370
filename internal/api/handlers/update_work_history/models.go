package update_work_history

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations/models"
	updateWorkHistory "github.com/m04kA/BikeRepair-BookingService/internal/usecase/update_work_history"
)

// Имена полей multipart формы
const (
	formEstimatedAmount = "estimatedAmount"
	formActualAmount    = "actualAmount"
	formStatus          = "status"
	formAdminComment    = "adminComment"
	formCompletionPhoto = "completion_photo"
)

// UpdateWorkHistoryRequest HTTP request model. Отсутствующие и пустые поля не изменяются.
type UpdateWorkHistoryRequest struct {
	EstimatedAmount *int64  `json:"estimatedAmount,omitempty"`
	ActualAmount    *int64  `json:"actualAmount,omitempty"`
	Status          *string `json:"status,omitempty"`
	AdminComment    *string `json:"adminComment,omitempty"`
}

// WorkHistoryResultResponse HTTP response model
type WorkHistoryResultResponse struct {
	Reservation      models.ReservationResponse  `json:"reservation"`
	WorkHistory      *models.WorkHistoryResponse `json:"workHistory"`
	NotificationSent bool                        `json:"notificationSent"`
}

// fromMultipartForm собирает запрос из формы: пустые поля считаются неизмененными
func fromMultipartForm(form *multipart.Form) (*UpdateWorkHistoryRequest, error) {
	value := func(key string) (string, bool) {
		values, ok := form.Value[key]
		if !ok || len(values) == 0 {
			return "", false
		}
		return strings.TrimSpace(values[0]), true
	}
	amount := func(key string) (*int64, error) {
		raw, ok := value(key)
		if !ok || raw == "" {
			return nil, nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		return &n, nil
	}

	req := &UpdateWorkHistoryRequest{}

	var err error
	if req.EstimatedAmount, err = amount(formEstimatedAmount); err != nil {
		return nil, err
	}
	if req.ActualAmount, err = amount(formActualAmount); err != nil {
		return nil, err
	}
	if status, ok := value(formStatus); ok && status != "" {
		req.Status = &status
	}
	if comment, ok := value(formAdminComment); ok && comment != "" {
		req.AdminComment = &comment
	}

	return req, nil
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *UpdateWorkHistoryRequest) ToUseCaseRequest(reservationID int64) *updateWorkHistory.Request {
	return &updateWorkHistory.Request{
		ReservationID:   reservationID,
		EstimatedAmount: r.EstimatedAmount,
		ActualAmount:    r.ActualAmount,
		Status:          r.Status,
		AdminComment:    r.AdminComment,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateWorkHistory.Response, url models.URLFunc) *WorkHistoryResultResponse {
	return &WorkHistoryResultResponse{
		Reservation:      *models.FromDomainReservation(resp.Reservation, true),
		WorkHistory:      models.FromDomainWorkHistory(resp.WorkHistory, url),
		NotificationSent: resp.NotificationSent,
	}
}
