package list_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations"
)

const msgInvalidFilter = "invalid filter: status must be one of confirmed, in_progress, cancelled, completed and dates must be YYYY-MM-DD"

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dashboard/reservations
// Query параметры (все опциональны): status, date_from, date_to
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := ParseFilter(r.URL.Query())

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, reservations.ErrInvalidInput) {
			h.logger.Warn("GET /dashboard/reservations - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /dashboard/reservations - Failed to list reservations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /dashboard/reservations - Reservations retrieved: count=%d", len(resp.Reservations))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
