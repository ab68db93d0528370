package reservations

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	bikeInfoRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/bikeinfo"
	reservationRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/reservation"
	menuRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/servicemenu"
	workHistoryRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/workhistory"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations/models"
	"github.com/m04kA/BikeRepair-BookingService/pkg/logger"
	"github.com/m04kA/BikeRepair-BookingService/pkg/pgerrors"
	"github.com/m04kA/BikeRepair-BookingService/pkg/ptr"
	"github.com/m04kA/BikeRepair-BookingService/pkg/txmanager"
)

// Фейковые реализации

type fakeReservations struct {
	items map[int64]*domain.Reservation
	// beforeTransition выполняется между чтением и сменой статуса
	beforeTransition func()
}

func (f *fakeReservations) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReservations) List(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.items {
		if filter.UserID != nil && !r.IsOwnedBy(*filter.UserID) {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, r.Status) {
			continue
		}
		if filter.DateFrom != nil && r.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && r.Date.After(*filter.DateTo) {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			if filter.OrderAsc {
				return out[i].Date.Before(out[j].Date)
			}
			return out[i].Date.After(out[j].Date)
		}
		return out[i].TimeSlot < out[j].TimeSlot
	})
	if filter.Limit > 0 && uint64(len(out)) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeReservations) CountByStatus(_ context.Context, from time.Time) ([]domain.StatusCount, error) {
	counts := map[domain.ReservationStatus]int{}
	for _, r := range f.items {
		if !r.Date.Before(from) {
			counts[r.Status]++
		}
	}
	var out []domain.StatusCount
	for st, c := range counts {
		out = append(out, domain.StatusCount{Status: st, Count: c})
	}
	return out, nil
}

func (f *fakeReservations) ExistsConfirmed(_ context.Context, slot domain.Slot, excludeID *int64) (bool, error) {
	for _, r := range f.items {
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if r.OccupiesSlot() && r.Slot() == slot {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReservations) Update(_ context.Context, res *domain.Reservation) error {
	if _, ok := f.items[res.ID]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	cp := *res
	f.items[res.ID] = &cp
	return nil
}

func (f *fakeReservations) TransitionStatus(_ context.Context, id int64, from, to domain.ReservationStatus) error {
	if f.beforeTransition != nil {
		f.beforeTransition()
	}
	r, ok := f.items[id]
	if !ok || r.Status != from {
		return reservationRepo.ErrStatusChanged
	}
	r.Status = to
	return nil
}

func (f *fakeReservations) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(f.items, id)
	return nil
}

func containsStatus(list []domain.ReservationStatus, s domain.ReservationStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type fakeBikes struct {
	items map[int64]*domain.BikeInfo
}

func (f *fakeBikes) GetByReservationID(_ context.Context, reservationID int64) (*domain.BikeInfo, error) {
	b, ok := f.items[reservationID]
	if !ok {
		return nil, bikeInfoRepo.ErrBikeInfoNotFound
	}
	return b, nil
}

func (f *fakeBikes) ListImagePaths(_ context.Context, reservationID int64) ([]string, error) {
	b, ok := f.items[reservationID]
	if !ok {
		return nil, nil
	}
	var paths []string
	for _, img := range b.Images {
		paths = append(paths, img.ImagePath)
	}
	return paths, nil
}

func (f *fakeBikes) DeleteByReservationID(_ context.Context, reservationID int64) error {
	delete(f.items, reservationID)
	return nil
}

type fakeWorkHistories struct {
	items map[int64]*domain.WorkHistory
}

func (f *fakeWorkHistories) GetByReservationID(_ context.Context, reservationID int64) (*domain.WorkHistory, error) {
	wh, ok := f.items[reservationID]
	if !ok {
		return nil, workHistoryRepo.ErrWorkHistoryNotFound
	}
	return wh, nil
}

func (f *fakeWorkHistories) DeleteByReservationID(_ context.Context, reservationID int64) error {
	delete(f.items, reservationID)
	return nil
}

type fakeMenus struct {
	items map[int64]*domain.ServiceMenu
}

func (f *fakeMenus) GetByID(_ context.Context, id int64) (*domain.ServiceMenu, error) {
	m, ok := f.items[id]
	if !ok {
		return nil, menuRepo.ErrServiceMenuNotFound
	}
	return m, nil
}

type fakePhotos struct {
	deleted []string
}

func (f *fakePhotos) Delete(_ context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakePhotos) URL(path string) string {
	if path == "" {
		return ""
	}
	return "/media/" + path
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// conflictingTx откатывает первые failures попыток ошибкой сериализации при коммите
type conflictingTx struct {
	res      *fakeReservations
	failures int
	attempts int
}

func (t *conflictingTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (t *conflictingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.attempts++
	snapshot := make(map[int64]*domain.Reservation, len(t.res.items))
	for id, r := range t.res.items {
		cp := *r
		snapshot[id] = &cp
	}
	if err := fn(ctx); err != nil {
		return err
	}
	if t.attempts <= t.failures {
		t.res.items = snapshot
		return fmt.Errorf("%w: commit: %w", txmanager.ErrTransaction, &pq.Error{Code: pgerrors.CodeSerializationFailure})
	}
	return nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

// Окружение теста: "сегодня" = 2026-03-10

type env struct {
	svc    *Service
	res    *fakeReservations
	bikes  *fakeBikes
	wh     *fakeWorkHistories
	photos *fakePhotos
}

func day(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func newEnv() *env {
	owner := ptr.Ptr(int64(7))
	e := &env{
		res: &fakeReservations{items: map[int64]*domain.Reservation{
			1: {ID: 1, UserID: owner, Name: "Taro", Date: day("2026-03-12"), TimeSlot: domain.TimeSlotAM,
				VisitReason: domain.VisitReasonRepair, Status: domain.StatusConfirmed, AdminMemo: "regular"},
			2: {ID: 2, UserID: owner, Name: "Taro", Date: day("2026-03-01"), TimeSlot: domain.TimeSlotPM,
				VisitReason: domain.VisitReasonMaintenance, Status: domain.StatusCompleted},
			3: {ID: 3, UserID: ptr.Ptr(int64(8)), Name: "Hanako", Date: day("2026-03-12"), TimeSlot: domain.TimeSlotPM,
				VisitReason: domain.VisitReasonFitting, Status: domain.StatusConfirmed},
			4: {ID: 4, Name: "Walk-in", Date: day("2026-03-10"), TimeSlot: domain.TimeSlotAM,
				VisitReason: domain.VisitReasonRepair, Status: domain.StatusInProgress},
		}},
		bikes: &fakeBikes{items: map[int64]*domain.BikeInfo{
			1: {ID: 10, ReservationID: 1, Manufacturer: "Bianchi", ModelName: "Via Nirone",
				Images: []domain.BikeImage{{ID: 100, ImagePath: "bike_images/2026/03/a.jpg"}}},
		}},
		wh: &fakeWorkHistories{items: map[int64]*domain.WorkHistory{
			1: {ID: 20, ReservationID: 1, Status: domain.WorkStatusPending, CompletionPhotoPath: "completion_photos/2026/03/b.jpg"},
		}},
		photos: &fakePhotos{},
	}
	menus := &fakeMenus{items: map[int64]*domain.ServiceMenu{
		1: {ID: 1, Name: "Wheel Build", IsActive: true, EstimatedDuration: 120, PriceEstimate: 8000},
		2: {ID: 2, Name: "Retired", IsActive: false},
	}}
	e.svc = NewService(e.res, e.bikes, e.wh, menus, e.photos, passthroughTx{},
		fixedTime{time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)}, logger.Nop())
	return e
}

func TestGetForCustomer(t *testing.T) {
	e := newEnv()

	detail, err := e.svc.GetForCustomer(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Nil(t, detail.Reservation.AdminMemo)
	assert.Nil(t, detail.WorkHistory)
	require.NotNil(t, detail.BikeInfo)
	assert.Equal(t, "Bianchi", detail.BikeInfo.Manufacturer)
	assert.Equal(t, "/media/bike_images/2026/03/a.jpg", detail.BikeInfo.Images[0].URL)

	_, err = e.svc.GetForCustomer(context.Background(), 3, 7)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	_, err = e.svc.GetForCustomer(context.Background(), 999, 7)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel(t *testing.T) {
	e := newEnv()

	resp, err := e.svc.Cancel(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, domain.StatusCancelled, e.res.items[1].Status)

	_, err = e.svc.Cancel(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrCannotCancel)

	_, err = e.svc.Cancel(context.Background(), 3, 7)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel_StatusChangedAfterRead(t *testing.T) {
	e := newEnv()
	// Сотрудник начал работу между чтением и отменой
	e.res.beforeTransition = func() {
		e.res.items[1].Status = domain.StatusInProgress
	}

	_, err := e.svc.Cancel(context.Background(), 1, 7)

	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, domain.StatusInProgress, e.res.items[1].Status)
}

func TestMyReservations(t *testing.T) {
	e := newEnv()

	resp, err := e.svc.MyReservations(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, resp.Upcoming, 1)
	assert.Equal(t, int64(1), resp.Upcoming[0].ID)
	require.Len(t, resp.Past, 1)
	assert.Equal(t, int64(2), resp.Past[0].ID)
}

func TestDashboard(t *testing.T) {
	e := newEnv()

	resp, err := e.svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", resp.Date)
	require.Len(t, resp.Today, 1)
	assert.Equal(t, int64(4), resp.Today[0].ID)
	assert.Len(t, resp.Upcoming, 2)
	assert.Equal(t, 2, resp.StatusCounts["confirmed"])
	assert.Equal(t, 1, resp.StatusCounts["in_progress"])
	assert.Equal(t, 0, resp.StatusCounts["completed"])
	require.NotNil(t, resp.Today[0].AdminMemo)
}

func TestDashboard_UpcomingLimited(t *testing.T) {
	e := newEnv()
	for i := int64(0); i < 15; i++ {
		id := 100 + i
		e.res.items[id] = &domain.Reservation{ID: id, Name: "Bulk", Date: day("2026-04-01").AddDate(0, 0, int(i)),
			TimeSlot: domain.TimeSlotAM, VisitReason: domain.VisitReasonRepair, Status: domain.StatusConfirmed}
	}

	resp, err := e.svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Upcoming, domain.UpcomingDashboardLimit)
	assert.Equal(t, "2026-03-12", resp.Upcoming[0].Date)
}

func TestList_Filters(t *testing.T) {
	e := newEnv()

	resp, err := e.svc.List(context.Background(), &models.ListReservationsRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 2)

	resp, err = e.svc.List(context.Background(), &models.ListReservationsRequest{DateFrom: "2026-03-10", DateTo: "2026-03-10"})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, int64(4), resp.Reservations[0].ID)

	_, err = e.svc.List(context.Background(), &models.ListReservationsRequest{Status: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.svc.List(context.Background(), &models.ListReservationsRequest{DateFrom: "10/03/2026"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDetail_IncludesWorkHistoryAndMemo(t *testing.T) {
	e := newEnv()

	detail, err := e.svc.Detail(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, detail.Reservation.AdminMemo)
	assert.Equal(t, "regular", *detail.Reservation.AdminMemo)
	require.NotNil(t, detail.WorkHistory)
	assert.Equal(t, "/media/completion_photos/2026/03/b.jpg", detail.WorkHistory.CompletionPhotoURL)

	detail, err = e.svc.Detail(context.Background(), 4)
	require.NoError(t, err)
	assert.Nil(t, detail.BikeInfo)
	assert.Nil(t, detail.WorkHistory)
}

func updateRequest(res *domain.Reservation) *models.UpdateReservationRequest {
	return &models.UpdateReservationRequest{
		Name:          res.Name,
		Date:          res.Date.Format(domain.DateFormat),
		TimeSlot:      string(res.TimeSlot),
		VisitReason:   string(res.VisitReason),
		ServiceMenuID: res.ServiceMenuID,
		Status:        string(res.Status),
		Note:          res.Note,
		AdminMemo:     res.AdminMemo,
	}
}

func TestUpdate(t *testing.T) {
	t.Run("keeps own slot", func(t *testing.T) {
		e := newEnv()
		req := updateRequest(e.res.items[1])
		req.AdminMemo = "bring spare tube"
		req.ServiceMenuID = ptr.Ptr(int64(1))

		resp, err := e.svc.Update(context.Background(), 1, req)
		require.NoError(t, err)
		assert.Equal(t, "bring spare tube", *resp.AdminMemo)
		require.NotNil(t, resp.ServiceMenu)
		assert.Equal(t, "Wheel Build", resp.ServiceMenu.Name)
	})

	t.Run("moving onto a confirmed slot is rejected", func(t *testing.T) {
		e := newEnv()
		req := updateRequest(e.res.items[1])
		req.TimeSlot = "PM"

		_, err := e.svc.Update(context.Background(), 1, req)
		assert.ErrorIs(t, err, domain.ErrSlotNotAvailable)
		assert.Equal(t, domain.TimeSlotAM, e.res.items[1].TimeSlot)
	})

	t.Run("cancelled reservation may share a slot", func(t *testing.T) {
		e := newEnv()
		req := updateRequest(e.res.items[1])
		req.TimeSlot = "PM"
		req.Status = "cancelled"

		_, err := e.svc.Update(context.Background(), 1, req)
		require.NoError(t, err)
	})

	t.Run("past reservation can be edited without changing the date", func(t *testing.T) {
		e := newEnv()
		req := updateRequest(e.res.items[2])
		req.AdminMemo = "paid"

		_, err := e.svc.Update(context.Background(), 2, req)
		require.NoError(t, err)
	})

	t.Run("moving to a past date is rejected", func(t *testing.T) {
		e := newEnv()
		req := updateRequest(e.res.items[1])
		req.Date = "2026-03-09"

		_, err := e.svc.Update(context.Background(), 1, req)
		assert.ErrorIs(t, err, domain.ErrPastDate)
	})

	t.Run("field errors are collected", func(t *testing.T) {
		e := newEnv()
		req := updateRequest(e.res.items[1])
		req.Name = ""
		req.VisitReason = "other"
		req.Note = ""
		req.Status = "lost"
		req.ServiceMenuID = ptr.Ptr(int64(2))

		_, err := e.svc.Update(context.Background(), 1, req)
		verrs, ok := domain.AsValidationErrors(err)
		require.True(t, ok)
		fields := verrs.Fields()
		assert.Contains(t, fields, domain.FieldName)
		assert.Contains(t, fields, domain.FieldNote)
		assert.Contains(t, fields, domain.FieldStatus)
		assert.Contains(t, fields, domain.FieldServiceMenu)
	})

	t.Run("not found", func(t *testing.T) {
		e := newEnv()
		_, err := e.svc.Update(context.Background(), 999, updateRequest(e.res.items[1]))
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestUpdate_SerializationFailure(t *testing.T) {
	t.Run("retried and applied", func(t *testing.T) {
		e := newEnv()
		tx := &conflictingTx{res: e.res, failures: 1}
		e.svc.txManager = tx
		req := updateRequest(e.res.items[1])
		req.AdminMemo = "retried"

		resp, err := e.svc.Update(context.Background(), 1, req)
		require.NoError(t, err)

		assert.Equal(t, 2, tx.attempts)
		assert.Equal(t, "retried", *resp.AdminMemo)
		assert.Equal(t, "retried", e.res.items[1].AdminMemo)
	})

	t.Run("slot unavailable after the last attempt", func(t *testing.T) {
		e := newEnv()
		tx := &conflictingTx{res: e.res, failures: 100}
		e.svc.txManager = tx
		req := updateRequest(e.res.items[1])
		req.AdminMemo = "never saved"

		_, err := e.svc.Update(context.Background(), 1, req)

		assert.ErrorIs(t, err, domain.ErrSlotNotAvailable)
		assert.Equal(t, txmanager.DefaultSerializableAttempts, tx.attempts)
		assert.Equal(t, "regular", e.res.items[1].AdminMemo)
	})
}

func TestDelete_RemovesChildrenAndFiles(t *testing.T) {
	e := newEnv()

	require.NoError(t, e.svc.Delete(context.Background(), 1))

	assert.NotContains(t, e.res.items, int64(1))
	assert.NotContains(t, e.bikes.items, int64(1))
	assert.NotContains(t, e.wh.items, int64(1))
	assert.ElementsMatch(t, []string{
		"bike_images/2026/03/a.jpg",
		"completion_photos/2026/03/b.jpg",
	}, e.photos.deleted)

	assert.ErrorIs(t, e.svc.Delete(context.Background(), 1), ErrReservationNotFound)
}
