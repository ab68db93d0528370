package get_dashboard

import (
	"net/http"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers"
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

// Handle GET /api/v1/dashboard
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("GET /dashboard - Failed to build dashboard: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /dashboard - Dashboard built: today=%d, upcoming=%d", len(resp.Today), len(resp.Upcoming))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
