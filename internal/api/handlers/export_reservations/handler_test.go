package export_reservations

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/report"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeReport struct {
	filter domain.ReservationFilter
	err    error
}

func (f *fakeReport) Export(_ context.Context, filter domain.ReservationFilter, w io.Writer) (int, error) {
	f.filter = filter
	if f.err != nil {
		return 0, f.err
	}
	_, _ = w.Write([]byte("xlsx"))
	return 2, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestHandle_WritesAttachment(t *testing.T) {
	svc := &fakeReport{}
	clock := fixedClock{now: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/reservations/export?status=confirmed&date_from=2026-03-01", nil)
	rec := httptest.NewRecorder()

	NewHandler(svc, clock, nopLogger{}).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="reservations_20260310_093000.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "xlsx", rec.Body.String())

	require.NotNil(t, svc.filter.Status)
	assert.Equal(t, domain.StatusConfirmed, *svc.filter.Status)
	require.NotNil(t, svc.filter.DateFrom)
	assert.Nil(t, svc.filter.DateTo)
}

func TestHandle_Errors(t *testing.T) {
	clock := fixedClock{now: time.Now()}

	t.Run("invalid filter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(&fakeReport{}, clock, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/?status=unknown", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("render failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(&fakeReport{err: errors.New("boom")}, clock, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})
}
