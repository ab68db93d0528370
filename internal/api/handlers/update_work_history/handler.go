package update_work_history

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations/models"
	updateWorkHistory "github.com/m04kA/BikeRepair-BookingService/internal/usecase/update_work_history"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidInput         = "invalid work history data: amounts must be non-negative, status one of pending, in_progress, completed, photo must be an image"
	msgNotFound             = "reservation not found"
	msgCannotReadPhoto      = "cannot read uploaded photo"
)

type Handler struct {
	useCase        UpdateWorkHistoryUseCase
	photoURL       models.URLFunc
	maxUploadBytes int64
	logger         Logger
}

func NewHandler(useCase UpdateWorkHistoryUseCase, photoURL models.URLFunc, maxUploadBytes int64, logger Logger) *Handler {
	return &Handler{
		useCase:        useCase,
		photoURL:       photoURL,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Handle POST /api/v1/dashboard/reservations/{id}/work-history
// Принимает JSON или multipart/form-data с файлом completion_photo.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /dashboard/reservations/{id}/work-history - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var useCaseReq *updateWorkHistory.Request

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			h.logger.Warn("POST /dashboard/reservations/{id}/work-history - Invalid multipart form: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		req, err := fromMultipartForm(r.MultipartForm)
		if err != nil {
			h.logger.Warn("POST /dashboard/reservations/{id}/work-history - Invalid form value: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		useCaseReq = req.ToUseCaseRequest(id)

		if files := r.MultipartForm.File[formCompletionPhoto]; len(files) > 0 {
			f, err := files[0].Open()
			if err != nil {
				h.logger.Warn("POST /dashboard/reservations/{id}/work-history - Cannot open photo: %v", err)
				handlers.RespondBadRequest(w, msgCannotReadPhoto)
				return
			}
			defer f.Close()
			useCaseReq.CompletionPhoto = &updateWorkHistory.Upload{Filename: files[0].Filename, Content: f}
		}
	} else {
		var req UpdateWorkHistoryRequest
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /dashboard/reservations/{id}/work-history - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		useCaseReq = req.ToUseCaseRequest(id)
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateWorkHistory.ErrReservationNotFound):
			h.logger.Warn("POST /dashboard/reservations/{id}/work-history - Reservation not found: reservation_id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateWorkHistory.ErrInvalidInput):
			h.logger.Warn("POST /dashboard/reservations/{id}/work-history - Invalid input: reservation_id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /dashboard/reservations/{id}/work-history - Failed to update work history: reservation_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /dashboard/reservations/{id}/work-history - Work history updated: reservation_id=%d, status=%s, notified=%t",
		id, result.WorkHistory.Status, result.NotificationSent)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.photoURL))
}
