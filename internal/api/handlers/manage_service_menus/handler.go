package manage_service_menus

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/catalog"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/catalog/models"
)

const (
	msgInvalidServiceMenuID = "invalid service menu id"
	msgInvalidRequestBody   = "invalid request body"
	msgNotFound             = "service menu not found"
	msgAlreadyExists        = "service menu with this name already exists"
)

// Handler CRUD меню услуг для сотрудников
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

// List GET /api/v1/dashboard/service-menus
// Сотрудникам видны и неактивные меню.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListServiceMenus(r.Context(), false)
	if err != nil {
		h.logger.Error("GET /dashboard/service-menus - Failed to list service menus: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Create POST /api/v1/dashboard/service-menus
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceMenuRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /dashboard/service-menus - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.CreateServiceMenu(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /dashboard/service-menus", err)
		return
	}

	h.logger.Info("POST /dashboard/service-menus - Service menu created: id=%d", resp.ID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Update PUT /api/v1/dashboard/service-menus/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /dashboard/service-menus/{id} - Invalid service menu ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceMenuID)
		return
	}

	var req models.ServiceMenuRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /dashboard/service-menus/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.UpdateServiceMenu(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /dashboard/service-menus/{id}", err)
		return
	}

	h.logger.Info("PUT /dashboard/service-menus/{id} - Service menu updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Delete DELETE /api/v1/dashboard/service-menus/{id}
// Бронирования, ссылающиеся на меню, сохраняются без него.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /dashboard/service-menus/{id} - Invalid service menu ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceMenuID)
		return
	}

	if err := h.service.DeleteServiceMenu(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /dashboard/service-menus/{id}", err)
		return
	}

	h.logger.Info("DELETE /dashboard/service-menus/{id} - Service menu deleted: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, catalog.ErrServiceMenuNotFound):
		h.logger.Warn("%s - Service menu not found: %v", op, err)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, catalog.ErrAlreadyExists):
		h.logger.Warn("%s - Duplicate service menu: %v", op, err)
		handlers.RespondConflict(w, msgAlreadyExists)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
