package update_work_history

import (
	"fmt"
	"strings"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

// normalizeRequest пустые текстовые поля считаются непереданными
func normalizeRequest(req *Request) {
	req.Status = nonBlank(req.Status)
	req.AdminComment = nonBlank(req.AdminComment)
}

func nonBlank(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	return v
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.EstimatedAmount != nil && *req.EstimatedAmount < 0 {
		return fmt.Errorf("%w: estimated_amount must not be negative", ErrInvalidInput)
	}
	if req.ActualAmount != nil && *req.ActualAmount < 0 {
		return fmt.Errorf("%w: actual_amount must not be negative", ErrInvalidInput)
	}
	if req.Status != nil && !domain.WorkStatus(strings.TrimSpace(*req.Status)).IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}
	return nil
}

// applyChanges применяет только переданные поля
func applyChanges(wh *domain.WorkHistory, req *Request, photoPath string) {
	if req.EstimatedAmount != nil {
		wh.EstimatedAmount = req.EstimatedAmount
	}
	if req.ActualAmount != nil {
		wh.ActualAmount = req.ActualAmount
	}
	if req.AdminComment != nil {
		wh.AdminComment = *req.AdminComment
	}
	if req.Status != nil {
		wh.Status = domain.WorkStatus(strings.TrimSpace(*req.Status))
	}
	if photoPath != "" {
		wh.CompletionPhotoPath = photoPath
	}
}
