package get_work_history

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations/models"
	updateWorkHistory "github.com/m04kA/BikeRepair-BookingService/internal/usecase/update_work_history"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgNotFound             = "reservation not found"
)

// WorkHistoryResponse HTTP response model
type WorkHistoryResponse struct {
	Reservation models.ReservationResponse  `json:"reservation"`
	WorkHistory *models.WorkHistoryResponse `json:"workHistory"`
}

type Handler struct {
	useCase  WorkHistoryUseCase
	photoURL models.URLFunc
	logger   Logger
}

func NewHandler(useCase WorkHistoryUseCase, photoURL models.URLFunc, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		photoURL: photoURL,
		logger:   logger,
	}
}

// Handle GET /api/v1/dashboard/reservations/{id}/work-history
// Если истории работ еще нет, создается запись со статусом pending.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /dashboard/reservations/{id}/work-history - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.useCase.GetOrCreate(r.Context(), id)
	if err != nil {
		if errors.Is(err, updateWorkHistory.ErrReservationNotFound) {
			h.logger.Warn("GET /dashboard/reservations/{id}/work-history - Reservation not found: reservation_id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /dashboard/reservations/{id}/work-history - Failed to get work history: reservation_id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /dashboard/reservations/{id}/work-history - Work history retrieved: reservation_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, &WorkHistoryResponse{
		Reservation: *models.FromDomainReservation(result.Reservation, true),
		WorkHistory: models.FromDomainWorkHistory(result.WorkHistory, h.photoURL),
	})
}
