package create_reservation

import (
	"strings"
	"time"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

// buildReservation переводит запрос в доменную модель
func buildReservation(req *Request) *domain.Reservation {
	return &domain.Reservation{
		UserID:        req.UserID,
		Name:          strings.TrimSpace(req.Name),
		Date:          domain.DateOf(req.Date),
		TimeSlot:      domain.TimeSlot(strings.ToUpper(strings.TrimSpace(req.TimeSlot))),
		VisitReason:   domain.VisitReason(strings.TrimSpace(req.VisitReason)),
		ServiceMenuID: req.ServiceMenuID,
		Status:        domain.StatusConfirmed,
		Note:          req.Note,
	}
}

// validateRequest проверяет поля запроса и дату (без обращения к хранилищу)
func validateRequest(req *Request, res *domain.Reservation, now time.Time) domain.ValidationErrors {
	errs := domain.ValidateReservationFields(res)

	if !req.Date.IsZero() {
		if err := domain.ValidateDate(res.Date, domain.DateOf(now)); err != nil {
			errs.Add(domain.FieldDate, err)
		}
	}

	if len(req.Images) > domain.MaxBikeImages {
		errs.Add(domain.FieldImages, domain.ErrTooManyImages)
	}

	return errs
}
