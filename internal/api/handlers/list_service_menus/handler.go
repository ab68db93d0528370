package list_service_menus

import (
	"net/http"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/service-menus
// Клиентам показываются только активные меню.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListServiceMenus(r.Context(), true)
	if err != nil {
		h.logger.Error("GET /service-menus - Failed to list service menus: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /service-menus - Service menus retrieved: count=%d", len(resp.ServiceMenus))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
