package send_reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	"github.com/m04kA/BikeRepair-BookingService/pkg/logger"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeReservations struct {
	items  []*domain.Reservation
	err    error
	filter domain.ReservationFilter
}

func (f *fakeReservations) List(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Reservation
	for _, r := range f.items {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.DateFrom != nil && r.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && r.Date.After(*filter.DateTo) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeNotifier struct {
	failFor map[int64]bool
	sent    []int64
}

func (f *fakeNotifier) SendReminder(_ context.Context, res *domain.Reservation) bool {
	if f.failFor[res.ID] {
		return false
	}
	f.sent = append(f.sent, res.ID)
	return true
}

type fakeMetrics struct {
	results map[string]int
}

func (f *fakeMetrics) ObserveReminderResult(result string) {
	f.results[result]++
}

func date(s string) time.Time {
	t, _ := time.Parse(domain.DateFormat, s)
	return t
}

func TestExecute_SendsOnlyTomorrowConfirmed(t *testing.T) {
	repo := &fakeReservations{items: []*domain.Reservation{
		{ID: 1, Date: date("2026-03-11"), Status: domain.StatusConfirmed},
		{ID: 2, Date: date("2026-03-11"), Status: domain.StatusCancelled},
		{ID: 3, Date: date("2026-03-10"), Status: domain.StatusConfirmed},
		{ID: 4, Date: date("2026-03-12"), Status: domain.StatusConfirmed},
		{ID: 5, Date: date("2026-03-11"), Status: domain.StatusConfirmed},
	}}
	notifier := &fakeNotifier{failFor: map[int64]bool{5: true}}
	m := &fakeMetrics{results: map[string]int{}}

	uc := NewUseCase(repo, notifier, m, fixedTime{time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)}, logger.Nop())

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2026-03-11", result.Date)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []int64{1}, notifier.sent)
	assert.Equal(t, map[string]int{"sent": 1, "failed": 1}, m.results)
	assert.True(t, repo.filter.OrderAsc)
}

func TestExecute_NoReservations(t *testing.T) {
	uc := NewUseCase(&fakeReservations{}, &fakeNotifier{}, &fakeMetrics{results: map[string]int{}},
		fixedTime{time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}, logger.Nop())

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Result{Date: "2026-03-11"}, result)
}

func TestExecute_RepositoryError(t *testing.T) {
	uc := NewUseCase(&fakeReservations{err: errors.New("db down")}, &fakeNotifier{}, &fakeMetrics{results: map[string]int{}},
		fixedTime{time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}, logger.Nop())

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
