package cancel_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/middleware"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
}

func (f *fakeService) Cancel(_ context.Context, id, userID int64) (*models.ReservationResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationResponse{ID: id, UserID: &userID, Status: "cancelled"}, nil
}

func newRequest(id string, userID int64) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/"+id+"/cancel", nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	return req
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		userID     int64
		err        error
		wantStatus int
	}{
		{name: "cancelled", id: "5", userID: 7, wantStatus: http.StatusOK},
		{name: "not owner or missing", id: "5", userID: 7, err: reservations.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{name: "not confirmed", id: "5", userID: 7, err: reservations.ErrCannotCancel, wantStatus: http.StatusConflict},
		{name: "internal", id: "5", userID: 7, err: fmt.Errorf("%w: db down", reservations.ErrInternal), wantStatus: http.StatusInternalServerError},
		{name: "bad id", id: "abc", userID: 7, wantStatus: http.StatusBadRequest},
		{name: "no user", id: "5", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeService{err: tt.err}, nopLogger{}).Handle(rec, newRequest(tt.id, tt.userID))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_ReturnsCancelledReservation(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{}, nopLogger{}).Handle(rec, newRequest("5", 7))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "cancelled", resp.Status)
}
