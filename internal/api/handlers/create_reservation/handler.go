package create_reservation

import (
	"io"
	"mime"
	"net/http"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers"
	"github.com/m04kA/BikeRepair-BookingService/internal/api/middleware"
	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations/models"
	createReservation "github.com/m04kA/BikeRepair-BookingService/internal/usecase/create_reservation"
)

const (
	msgUnauthorized       = "user is not authenticated"
	msgInvalidRequestBody = "invalid request body"
	msgCannotReadImage    = "cannot read uploaded image"
)

type Handler struct {
	useCase        CreateReservationUseCase
	calendar       BookedSlotsProvider
	photoURL       models.URLFunc
	maxUploadBytes int64
	logger         Logger
}

func NewHandler(
	useCase CreateReservationUseCase,
	calendar BookedSlotsProvider,
	photoURL models.URLFunc,
	maxUploadBytes int64,
	logger Logger,
) *Handler {
	return &Handler{
		useCase:        useCase,
		calendar:       calendar,
		photoURL:       photoURL,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Handle POST /api/v1/reservations
// Принимает JSON или multipart/form-data с файлами в поле images.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var (
		req     *CreateReservationRequest
		uploads []createReservation.Upload
	)

	if isMultipart(r) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			h.logger.Warn("POST /reservations - Invalid multipart form: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		var err error
		req, err = fromMultipartForm(r.MultipartForm)
		if err != nil {
			h.logger.Warn("POST /reservations - Invalid form value: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}

		files := r.MultipartForm.File[formImages]
		if len(files) > domain.MaxBikeImages {
			h.logger.Warn("POST /reservations - Too many images: user_id=%d, count=%d", userID, len(files))
			h.respondValidation(w, r, domain.ValidationErrors{{Field: domain.FieldImages, Err: domain.ErrTooManyImages}})
			return
		}

		var closers []io.Closer
		defer func() {
			for _, c := range closers {
				_ = c.Close()
			}
		}()

		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				h.logger.Warn("POST /reservations - Cannot open image %q: %v", fh.Filename, err)
				handlers.RespondBadRequest(w, msgCannotReadImage)
				return
			}
			closers = append(closers, f)
			uploads = append(uploads, createReservation.Upload{Filename: fh.Filename, Content: f})
		}
	} else {
		req = &CreateReservationRequest{}
		if err := handlers.DecodeJSON(r, req); err != nil {
			h.logger.Warn("POST /reservations - Invalid request body: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	useCaseReq, verrs := req.ToUseCaseRequest(userID)
	if verrs != nil {
		h.logger.Warn("POST /reservations - Invalid date %q: user_id=%d", req.Date, userID)
		h.respondValidation(w, r, verrs)
		return
	}
	useCaseReq.Images = uploads

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if verrs, ok := domain.AsValidationErrors(err); ok {
			h.logger.Warn("POST /reservations - Validation failed: user_id=%d, error=%v", userID, err)
			h.respondValidation(w, r, verrs)
			return
		}

		h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, notified=%t",
		result.Reservation.ID, userID, result.NotificationSent)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.photoURL))
}

// respondValidation отвечает 422 вместе с занятыми слотами, чтобы клиент мог выбрать другой
func (h *Handler) respondValidation(w http.ResponseWriter, r *http.Request, verrs domain.ValidationErrors) {
	booked, err := h.calendar.BookedSlots(r.Context())
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to load booked slots: %v", err)
		booked = nil
	}
	handlers.RespondValidation(w, verrs, booked)
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}
