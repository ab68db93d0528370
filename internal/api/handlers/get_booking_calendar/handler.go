package get_booking_calendar

import (
	"net/http"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers"
)

type Handler struct {
	useCase GetBookingCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetBookingCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/booking-calendar
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("GET /reservations/booking-calendar - Failed to build calendar: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations/booking-calendar - Calendar built: booked_dates=%d, closed_dates=%d",
		len(result.BookedSlots), len(result.ClosedDates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
