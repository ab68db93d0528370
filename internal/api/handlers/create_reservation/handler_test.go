package create_reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers"
	"github.com/m04kA/BikeRepair-BookingService/internal/api/middleware"
	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	createReservation "github.com/m04kA/BikeRepair-BookingService/internal/usecase/create_reservation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got      *createReservation.Request
	contents map[string]string
	err      error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.got = req
	f.contents = make(map[string]string)
	for _, u := range req.Images {
		data, _ := io.ReadAll(u.Content)
		f.contents[u.Filename] = string(data)
	}
	if f.err != nil {
		return nil, f.err
	}

	res := &domain.Reservation{
		ID:          15,
		UserID:      req.UserID,
		Name:        req.Name,
		Date:        req.Date,
		TimeSlot:    domain.TimeSlot(req.TimeSlot),
		VisitReason: domain.VisitReason(req.VisitReason),
		Status:      domain.StatusConfirmed,
	}
	return &createReservation.Response{
		Reservation:      res,
		BikeInfo:         &domain.BikeInfo{ID: 3, ReservationID: 15, Manufacturer: req.Bike.Manufacturer},
		NotificationSent: true,
	}, nil
}

type fakeCalendar struct{}

func (fakeCalendar) BookedSlots(context.Context) (map[string][]domain.TimeSlot, error) {
	return map[string][]domain.TimeSlot{"2026-03-12": {domain.TimeSlotAM}}, nil
}

func photoURL(path string) string { return "/media/" + path }

func newHandler(uc *fakeUseCase) *Handler {
	return NewHandler(uc, fakeCalendar{}, photoURL, 1<<20, nopLogger{})
}

func withUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestHandle_JSON_Created(t *testing.T) {
	uc := &fakeUseCase{}
	body := `{"name":"Taro","date":"2026-03-12","timeSlot":"AM","visitReason":"repair",
		"bike":{"manufacturer":"Bridgestone","modelName":"Anchor","hasPartsBroughtIn":true}}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body)), 7)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHandler(uc).Handle(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(7), *uc.got.UserID)
	assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), uc.got.Date)
	assert.True(t, uc.got.Bike.HasPartsBroughtIn)

	var resp CreateReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(15), resp.ID)
	assert.Equal(t, "/api/v1/reservations/15", resp.ConfirmationURL)
	assert.Equal(t, "AM", resp.Reservation.TimeSlot)
	assert.Equal(t, "Bridgestone", resp.BikeInfo.Manufacturer)
	assert.True(t, resp.NotificationSent)
}

func TestHandle_Multipart_PassesImages(t *testing.T) {
	uc := &fakeUseCase{}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField(formName, "Hanako"))
	require.NoError(t, mw.WriteField(formDate, "2026-03-12"))
	require.NoError(t, mw.WriteField(formTimeSlot, "PM"))
	require.NoError(t, mw.WriteField(formVisitReason, "maintenance"))
	require.NoError(t, mw.WriteField(formServiceMenuID, "4"))
	require.NoError(t, mw.WriteField(formHasPartsBroughtIn, "true"))
	part, err := mw.CreateFormFile(formImages, "front.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/reservations", &buf), 7)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	newHandler(uc).Handle(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "Hanako", uc.got.Name)
	require.NotNil(t, uc.got.ServiceMenuID)
	assert.Equal(t, int64(4), *uc.got.ServiceMenuID)
	assert.True(t, uc.got.Bike.HasPartsBroughtIn)
	assert.Equal(t, map[string]string{"front.jpg": "jpeg-bytes"}, uc.contents)
}

func TestHandle_ValidationError_IncludesBookedSlots(t *testing.T) {
	uc := &fakeUseCase{err: domain.SlotUnavailable()}
	body := `{"name":"Taro","date":"2026-03-12","timeSlot":"AM","visitReason":"repair"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body)), 7)
	rec := httptest.NewRecorder()

	newHandler(uc).Handle(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp handlers.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{domain.ErrSlotNotAvailable.Error()}, resp.Errors[domain.FieldTimeSlot])
	assert.Equal(t, []string{"AM"}, resp.BookedSlots["2026-03-12"])
}

func TestHandle_InvalidDate(t *testing.T) {
	uc := &fakeUseCase{}
	body := `{"name":"Taro","date":"12/03/2026","timeSlot":"AM","visitReason":"repair"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body)), 7)
	rec := httptest.NewRecorder()

	newHandler(uc).Handle(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Nil(t, uc.got)

	var resp handlers.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, domain.FieldDate)
	assert.Equal(t, []string{"AM"}, resp.BookedSlots["2026-03-12"])
}

func TestHandle_Multipart_TooManyImages(t *testing.T) {
	uc := &fakeUseCase{}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField(formName, "Hanako"))
	require.NoError(t, mw.WriteField(formDate, "2026-03-13"))
	require.NoError(t, mw.WriteField(formTimeSlot, "PM"))
	require.NoError(t, mw.WriteField(formVisitReason, "repair"))
	for i := 0; i <= domain.MaxBikeImages; i++ {
		part, err := mw.CreateFormFile(formImages, fmt.Sprintf("bike-%d.jpg", i))
		require.NoError(t, err)
		_, err = part.Write([]byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/reservations", &buf), 7)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	newHandler(uc).Handle(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Nil(t, uc.got)

	var resp handlers.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{domain.ErrTooManyImages.Error()}, resp.Errors[domain.FieldImages])
	assert.Equal(t, []string{"AM"}, resp.BookedSlots["2026-03-12"])
}

func TestHandle_Errors(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newHandler(&fakeUseCase{}).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader("{}")))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader("{")), 7)
		rec := httptest.NewRecorder()
		newHandler(&fakeUseCase{}).Handle(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("internal error", func(t *testing.T) {
		uc := &fakeUseCase{err: errors.Join(createReservation.ErrInternal, errors.New("db down"))}
		body := `{"name":"Taro","date":"2026-03-12","timeSlot":"AM","visitReason":"repair"}`
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body)), 7)
		rec := httptest.NewRecorder()
		newHandler(uc).Handle(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
