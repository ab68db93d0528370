package update_work_history

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/reservation"
	workHistoryRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/workhistory"
	"github.com/m04kA/BikeRepair-BookingService/pkg/logger"
	"github.com/m04kA/BikeRepair-BookingService/pkg/ptr"
)

type fakeReservations struct {
	items map[int64]*domain.Reservation
}

func (f *fakeReservations) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

type fakeWorkHistories struct {
	items   map[int64]*domain.WorkHistory
	creates int
}

func (f *fakeWorkHistories) GetByReservationID(_ context.Context, reservationID int64) (*domain.WorkHistory, error) {
	wh, ok := f.items[reservationID]
	if !ok {
		return nil, workHistoryRepo.ErrWorkHistoryNotFound
	}
	cp := *wh
	return &cp, nil
}

func (f *fakeWorkHistories) Create(_ context.Context, wh *domain.WorkHistory) (*domain.WorkHistory, error) {
	f.creates++
	wh.ID = int64(len(f.items) + 1)
	cp := *wh
	f.items[wh.ReservationID] = &cp
	return wh, nil
}

func (f *fakeWorkHistories) Update(_ context.Context, wh *domain.WorkHistory) error {
	cp := *wh
	f.items[wh.ReservationID] = &cp
	return nil
}

type fakePhotos struct {
	saved   []string
	deleted []string
}

func (f *fakePhotos) Save(_ context.Context, category, filename string, _ io.Reader) (string, error) {
	path := category + "/" + filename
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakePhotos) Delete(_ context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

type fakeNotifier struct {
	calls int
}

func (f *fakeNotifier) SendWorkCompletion(_ context.Context, _ *domain.Reservation, _ *domain.WorkHistory) bool {
	f.calls++
	return true
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type env struct {
	uc       *UseCase
	wh       *fakeWorkHistories
	photos   *fakePhotos
	notifier *fakeNotifier
}

func newEnv() *env {
	e := &env{
		wh:       &fakeWorkHistories{items: map[int64]*domain.WorkHistory{}},
		photos:   &fakePhotos{},
		notifier: &fakeNotifier{},
	}
	reservations := &fakeReservations{items: map[int64]*domain.Reservation{
		1: {ID: 1, Name: "Taro", Status: domain.StatusInProgress},
	}}
	e.uc = NewUseCase(reservations, e.wh, e.photos, e.notifier, passthroughTx{}, logger.Nop())
	return e
}

func TestGetOrCreate_DefaultConstruction(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkStatusPending, resp.WorkHistory.Status)
	assert.Nil(t, resp.WorkHistory.EstimatedAmount)
	assert.Nil(t, resp.WorkHistory.ActualAmount)

	// Повторный вызов не создает вторую запись
	_, err = e.uc.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, e.wh.creates)
}

func TestGetOrCreate_ReservationNotFound(t *testing.T) {
	e := newEnv()
	_, err := e.uc.GetOrCreate(context.Background(), 404)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_PartialUpdateKeepsOtherFields(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Execute(context.Background(), &Request{
		ReservationID:   1,
		EstimatedAmount: ptr.Ptr(int64(8000)),
		ActualAmount:    ptr.Ptr(int64(9500)),
		AdminComment:    ptr.Ptr("Replaced spokes"),
		Status:          ptr.Ptr("in_progress"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, e.notifier.calls)

	resp, err := e.uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		Status:        ptr.Ptr("completed"),
	})
	require.NoError(t, err)

	wh := e.wh.items[1]
	assert.Equal(t, domain.WorkStatusCompleted, wh.Status)
	assert.Equal(t, int64(8000), *wh.EstimatedAmount)
	assert.Equal(t, int64(9500), *wh.ActualAmount)
	assert.Equal(t, "Replaced spokes", wh.AdminComment)

	assert.True(t, resp.NotificationSent)
	assert.Equal(t, 1, e.notifier.calls)
}

func TestExecute_EmptyTextFieldsKeepStoredValues(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		AdminComment:  ptr.Ptr("Replaced spokes"),
		Status:        ptr.Ptr("in_progress"),
	})
	require.NoError(t, err)

	resp, err := e.uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		Status:        ptr.Ptr("completed"),
		AdminComment:  ptr.Ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Replaced spokes", resp.WorkHistory.AdminComment)
	assert.Equal(t, "Replaced spokes", e.wh.items[1].AdminComment)

	_, err = e.uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		Status:        ptr.Ptr("  "),
		AdminComment:  ptr.Ptr("   "),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.WorkStatusCompleted, e.wh.items[1].Status)
	assert.Equal(t, "Replaced spokes", e.wh.items[1].AdminComment)
}

func TestExecute_CompletionNoticeOnlyOnTransition(t *testing.T) {
	e := newEnv()

	for i := 0; i < 3; i++ {
		_, err := e.uc.Execute(context.Background(), &Request{ReservationID: 1, Status: ptr.Ptr("completed")})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, e.notifier.calls)

	// Повторное завершение после возврата в работу снова уведомляет
	_, err := e.uc.Execute(context.Background(), &Request{ReservationID: 1, Status: ptr.Ptr("in_progress")})
	require.NoError(t, err)
	_, err = e.uc.Execute(context.Background(), &Request{ReservationID: 1, Status: ptr.Ptr("completed")})
	require.NoError(t, err)
	assert.Equal(t, 2, e.notifier.calls)
}

func TestExecute_CompletionPhotoReplacesPrevious(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Execute(context.Background(), &Request{
		ReservationID:   1,
		CompletionPhoto: &Upload{Filename: "a.jpg", Content: strings.NewReader("a")},
	})
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), &Request{
		ReservationID:   1,
		CompletionPhoto: &Upload{Filename: "b.jpg", Content: strings.NewReader("b")},
	})
	require.NoError(t, err)

	assert.Equal(t, "completion_photos/b.jpg", e.wh.items[1].CompletionPhotoPath)
	assert.Equal(t, []string{"completion_photos/a.jpg"}, e.photos.deleted)
}

func TestExecute_Validation(t *testing.T) {
	e := newEnv()

	tests := []struct {
		name string
		req  *Request
	}{
		{"negative estimate", &Request{ReservationID: 1, EstimatedAmount: ptr.Ptr(int64(-1))}},
		{"negative actual", &Request{ReservationID: 1, ActualAmount: ptr.Ptr(int64(-5))}},
		{"unknown status", &Request{ReservationID: 1, Status: ptr.Ptr("done")}},
		{"missing reservation id", &Request{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ReservationNotFoundRemovesUploadedPhoto(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Execute(context.Background(), &Request{
		ReservationID:   404,
		CompletionPhoto: &Upload{Filename: "a.jpg", Content: strings.NewReader("a")},
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.Equal(t, []string{"completion_photos/a.jpg"}, e.photos.deleted)
}
