package export_reservations

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers"
	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/list_reservations"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/report"
)

const msgInvalidFilter = "invalid filter"

type Handler struct {
	service      ReportService
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(service ReportService, timeProvider TimeProvider, logger Logger) *Handler {
	return &Handler{
		service:      service,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Handle GET /api/v1/dashboard/reservations/export
// Принимает те же фильтры, что и список, отдает XLSX файл.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, err := list_reservations.ParseFilter(r.URL.Query()).ToDomainFilter()
	if err != nil {
		h.logger.Warn("GET /dashboard/reservations/export - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	// Пишем в буфер, чтобы при ошибке ответить JSON, а не обрезанным файлом
	var buf bytes.Buffer
	count, err := h.service.Export(r.Context(), filter, &buf)
	if err != nil {
		h.logger.Error("GET /dashboard/reservations/export - Failed to export: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	filename := fmt.Sprintf("reservations_%s.xlsx", h.timeProvider.Now().Format("20060102_150405"))

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("GET /dashboard/reservations/export - Failed to write response: %v", err)
		return
	}

	h.logger.Info("GET /dashboard/reservations/export - Exported %d reservations to %s", count, filename)
}
