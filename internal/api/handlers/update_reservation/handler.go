package update_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers"
	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgInvalidRequestBody   = "invalid request body"
	msgNotFound             = "reservation not found"
)

type Handler struct {
	service  ReservationService
	calendar BookedSlotsProvider
	logger   Logger
}

func NewHandler(service ReservationService, calendar BookedSlotsProvider, logger Logger) *Handler {
	return &Handler{
		service:  service,
		calendar: calendar,
		logger:   logger,
	}
}

// Handle PUT /api/v1/dashboard/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /dashboard/reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req models.UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /dashboard/reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if verrs, ok := domain.AsValidationErrors(err); ok {
			h.logger.Warn("PUT /dashboard/reservations/{id} - Validation failed: reservation_id=%d, error=%v", id, err)
			booked, bErr := h.calendar.BookedSlots(r.Context())
			if bErr != nil {
				h.logger.Warn("PUT /dashboard/reservations/{id} - Failed to load booked slots: %v", bErr)
			}
			handlers.RespondValidation(w, verrs, booked)
			return
		}

		if errors.Is(err, reservations.ErrReservationNotFound) {
			h.logger.Warn("PUT /dashboard/reservations/{id} - Reservation not found: reservation_id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("PUT /dashboard/reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /dashboard/reservations/{id} - Reservation updated successfully: reservation_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
