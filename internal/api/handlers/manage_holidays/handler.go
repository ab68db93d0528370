package manage_holidays

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
	msgInvalidHolidayID   = "invalid holiday id"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "holiday not found"
	msgAlreadyExists      = "holiday for this date already exists"
)

// Handler CRUD выходных для сотрудников
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

// List GET /api/v1/dashboard/holidays
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListHolidays(r.Context())
	if err != nil {
		h.logger.Error("GET /dashboard/holidays - Failed to list holidays: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Create POST /api/v1/dashboard/holidays
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.HolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /dashboard/holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.CreateHoliday(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /dashboard/holidays", err)
		return
	}

	h.logger.Info("POST /dashboard/holidays - Holiday created: id=%d, date=%s", resp.ID, resp.Date)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Update PUT /api/v1/dashboard/holidays/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /dashboard/holidays/{id} - Invalid holiday ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return
	}

	var req models.HolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /dashboard/holidays/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.UpdateHoliday(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /dashboard/holidays/{id}", err)
		return
	}

	h.logger.Info("PUT /dashboard/holidays/{id} - Holiday updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Delete DELETE /api/v1/dashboard/holidays/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /dashboard/holidays/{id} - Invalid holiday ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return
	}

	if err := h.service.DeleteHoliday(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /dashboard/holidays/{id}", err)
		return
	}

	h.logger.Info("DELETE /dashboard/holidays/{id} - Holiday deleted: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, catalog.ErrHolidayNotFound):
		h.logger.Warn("%s - Holiday not found: %v", op, err)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, catalog.ErrAlreadyExists):
		h.logger.Warn("%s - Duplicate holiday: %v", op, err)
		handlers.RespondConflict(w, msgAlreadyExists)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
