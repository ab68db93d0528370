package get_booking_calendar

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

type fakeReservations struct {
	slots []domain.Slot
	from  time.Time
	err   error
}

func (f *fakeReservations) GetBookedSlots(_ context.Context, from time.Time) ([]domain.Slot, error) {
	f.from = from
	return f.slots, f.err
}

type fakeCalendar struct {
	businessDays []*domain.BusinessDay
	holidays     []*domain.Holiday
}

func (f *fakeCalendar) ListBusinessDays(_ context.Context, _, _ time.Time) ([]*domain.BusinessDay, error) {
	return f.businessDays, nil
}

func (f *fakeCalendar) ListHolidays(_ context.Context) ([]*domain.Holiday, error) {
	return f.holidays, nil
}

type fakeMenus struct {
	menus      []*domain.ServiceMenu
	activeOnly bool
}

func (f *fakeMenus) List(_ context.Context, activeOnly bool) ([]*domain.ServiceMenu, error) {
	f.activeOnly = activeOnly
	return f.menus, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExecute(t *testing.T) {
	// Пятница
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	monday := 0

	reservations := &fakeReservations{slots: []domain.Slot{
		{Date: day(2026, 10, 17), TimeSlot: domain.TimeSlotPM},
		{Date: day(2026, 10, 17), TimeSlot: domain.TimeSlotAM},
		{Date: day(2026, 10, 20), TimeSlot: domain.TimeSlotAM},
	}}
	calendar := &fakeCalendar{
		holidays: []*domain.Holiday{
			{Date: day(2025, 1, 6), IsPermanent: true, DayOfWeek: &monday},
			{Date: day(2026, 10, 22), Name: "Inventory"},
		},
		businessDays: []*domain.BusinessDay{
			{Date: day(2026, 10, 26), IsOpen: true}, // понедельник, но открыто
		},
	}
	menus := &fakeMenus{menus: []*domain.ServiceMenu{{ID: 1, Name: "Wheel Build", IsActive: true}}}

	uc := NewUseCase(reservations, calendar, menus, 14, fixedTime{now}, logger.Nop())

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, day(2026, 10, 16), reservations.from)
	assert.Equal(t, map[string][]domain.TimeSlot{
		"2026-10-17": {domain.TimeSlotAM, domain.TimeSlotPM},
		"2026-10-20": {domain.TimeSlotAM},
	}, resp.BookedSlots)
	assert.Equal(t, []string{"2026-10-19", "2026-10-22"}, resp.ClosedDates)
	assert.True(t, menus.activeOnly)
	assert.Len(t, resp.ServiceMenus, 1)
}

func TestExecute_RepositoryError(t *testing.T) {
	uc := NewUseCase(&fakeReservations{err: errors.New("db down")}, &fakeCalendar{}, &fakeMenus{}, 0, fixedTime{time.Now()}, logger.Nop())

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
