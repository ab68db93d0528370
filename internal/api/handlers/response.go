// Package handlers содержит общие функции HTTP слоя: разбор JSON и формирование ответов
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

const (
	msgInternalError    = "internal server error"
	msgValidationFailed = "validation failed"

	maxJSONBodyBytes = 1 << 20
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse тело ответа 422: ошибки по полям и занятые слоты для повторного выбора
type ValidationErrorResponse struct {
	Code        int                 `json:"code"`
	Message     string              `json:"message"`
	Errors      map[string][]string `json:"errors"`
	BookedSlots map[string][]string `json:"bookedSlots,omitempty"`
}

// DecodeJSON читает JSON тело запроса
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxJSONBodyBytes)).Decode(v)
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict 409
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError 500 без деталей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondValidation 422 с сообщениями по полям.
// booked передается, когда клиенту нужно выбрать другой слот.
func RespondValidation(w http.ResponseWriter, errs domain.ValidationErrors, booked map[string][]domain.TimeSlot) {
	resp := ValidationErrorResponse{
		Code:    http.StatusUnprocessableEntity,
		Message: msgValidationFailed,
		Errors:  errs.Fields(),
	}

	if booked != nil {
		resp.BookedSlots = make(map[string][]string, len(booked))
		for date, slots := range booked {
			list := make([]string, len(slots))
			for i, s := range slots {
				list[i] = string(s)
			}
			resp.BookedSlots[date] = list
		}
	}

	RespondJSON(w, http.StatusUnprocessableEntity, resp)
}
