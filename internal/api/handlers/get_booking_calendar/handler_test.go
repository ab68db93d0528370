package get_booking_calendar

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	getBookingCalendar "github.com/m04kA/BikeRepair-BookingService/internal/usecase/get_booking_calendar"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp *getBookingCalendar.Response
	err  error
}

func (f *fakeUseCase) Execute(context.Context) (*getBookingCalendar.Response, error) {
	return f.resp, f.err
}

func TestHandle(t *testing.T) {
	uc := &fakeUseCase{resp: &getBookingCalendar.Response{
		BookedSlots: map[string][]domain.TimeSlot{
			"2026-03-14": {domain.TimeSlotPM},
			"2026-03-12": {domain.TimeSlotAM, domain.TimeSlotPM},
		},
		ServiceMenus: []*domain.ServiceMenu{{ID: 1, Name: "Tune-up", IsActive: true}},
	}}
	rec := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reservations/booking-calendar", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp BookingCalendarResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2026-03-12", "2026-03-14"}, resp.BookedDates)
	assert.Equal(t, []string{"AM", "PM"}, resp.BookedSlots["2026-03-12"])
	assert.Empty(t, resp.ClosedDates)
	require.Len(t, resp.ServiceMenus, 1)
	assert.Equal(t, "Tune-up", resp.ServiceMenus[0].Name)
}

func TestHandle_Error(t *testing.T) {
	rec := httptest.NewRecorder()

	NewHandler(&fakeUseCase{err: errors.New("db down")}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
