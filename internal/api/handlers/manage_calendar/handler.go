package manage_calendar

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/catalog"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgAlreadyExists      = "time slot with this interval already exists"
)

// Handler настройки календаря: временные слоты и рабочие дни
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

// ListTimeSlots GET /api/v1/dashboard/time-slots
func (h *Handler) ListTimeSlots(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListTimeSlots(r.Context())
	if err != nil {
		h.logger.Error("GET /dashboard/time-slots - Failed to list time slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// CreateTimeSlot POST /api/v1/dashboard/time-slots
func (h *Handler) CreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	var req models.TimeSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /dashboard/time-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.CreateTimeSlot(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrAlreadyExists):
			h.logger.Warn("POST /dashboard/time-slots - Duplicate time slot: %v", err)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /dashboard/time-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /dashboard/time-slots - Failed to create time slot: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /dashboard/time-slots - Time slot created: id=%d, %s-%s", resp.ID, resp.StartTime, resp.EndTime)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// SetBusinessDay PUT /api/v1/dashboard/business-days/{date}
func (h *Handler) SetBusinessDay(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	var req models.BusinessDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /dashboard/business-days/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.SetBusinessDay(r.Context(), date, &req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("PUT /dashboard/business-days/{date} - Invalid date %q: %v", date, err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("PUT /dashboard/business-days/{date} - Failed to set business day: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /dashboard/business-days/{date} - Business day set: date=%s, open=%t", date, req.IsOpen)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
