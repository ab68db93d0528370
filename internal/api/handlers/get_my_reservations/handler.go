package get_my_reservations

import (
	"net/http"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers"
	"github.com/m04kA/BikeRepair-BookingService/internal/api/middleware"
)

const msgMissingUserID = "user is not authenticated"

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

// Handle GET /api/v1/me/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	resp, err := h.service.MyReservations(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /me/reservations - Failed to get reservations: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /me/reservations - Reservations retrieved: user_id=%d, upcoming=%d, past=%d",
		userID, len(resp.Upcoming), len(resp.Past))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
