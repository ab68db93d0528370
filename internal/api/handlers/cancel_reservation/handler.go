package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers"
	"github.com/m04kA/BikeRepair-BookingService/internal/api/middleware"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgNotFound             = "reservation not found"
	msgMissingUserID        = "user is not authenticated"
	msgCannotCancel         = "only confirmed reservations can be cancelled"
)

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

// Handle POST /api/v1/reservations/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	resp, err := h.service.Cancel(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/cancel - Reservation not found: reservation_id=%d, user_id=%d", id, userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrCannotCancel):
			h.logger.Warn("POST /reservations/{id}/cancel - Cannot cancel: reservation_id=%d", id)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("POST /reservations/{id}/cancel - Failed to cancel reservation: reservation_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/cancel - Reservation cancelled successfully: reservation_id=%d, user_id=%d", id, userID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
