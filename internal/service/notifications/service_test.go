package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	"github.com/m04kA/BikeRepair-BookingService/internal/integrations/userservice"
	"github.com/m04kA/BikeRepair-BookingService/pkg/logger"
	"github.com/m04kA/BikeRepair-BookingService/pkg/ptr"
)

type fakeUsers struct {
	users map[int64]*userservice.User
	err   error
}

func (f *fakeUsers) GetUser(_ context.Context, id int64) (*userservice.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return u, nil
}

type mockEmail struct {
	mock.Mock
}

func (m *mockEmail) SendEmail(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

type fakeSMS struct {
	sent []string
	err  error
}

func (f *fakeSMS) SendSMS(_ context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to+"|"+body)
	return nil
}

type countingMetrics struct {
	observed map[string]int
}

func (c *countingMetrics) ObserveNotification(kind, channel, result string) {
	if c.observed == nil {
		c.observed = map[string]int{}
	}
	c.observed[kind+"/"+channel+"/"+result]++
}

var shop = ShopInfo{Name: "Bike Repair Studio", ContactPhone: "03-0000-0000", PublicURL: "https://bike.example.com/"}

func reservationFor(userID *int64) *domain.Reservation {
	return &domain.Reservation{
		ID:       15,
		UserID:   userID,
		Name:     "Taro Yamada",
		Date:     time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		TimeSlot: domain.TimeSlotAM,
		Status:   domain.StatusConfirmed,
		ServiceMenu: &domain.ServiceMenuRef{
			ID:            3,
			Name:          "Wheel Build",
			PriceEstimate: 8000,
		},
	}
}

func TestSendBookingConfirmation_Email(t *testing.T) {
	users := &fakeUsers{users: map[int64]*userservice.User{1: {ID: 1, Email: "taro@example.com"}}}
	email := &mockEmail{}
	email.On("SendEmail", mock.Anything, "taro@example.com",
		"[Bike Repair Studio] Reservation confirmed - 2026-10-17",
		mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "Dear Taro Yamada") &&
				strings.Contains(body, "#15") &&
				strings.Contains(body, "Morning (AM)") &&
				strings.Contains(body, "Wheel Build") &&
				strings.Contains(body, "https://bike.example.com/api/v1/reservations/15")
		}),
	).Return(nil).Once()

	m := &countingMetrics{}
	d := NewDispatcher(users, email, nil, shop, m, logger.Nop())

	assert.True(t, d.SendBookingConfirmation(context.Background(), reservationFor(ptr.Ptr(int64(1)))))
	email.AssertExpectations(t)
	assert.Equal(t, 1, m.observed["booking_confirmation/email/sent"])
}

func TestDispatch_SkipsWithoutContact(t *testing.T) {
	users := &fakeUsers{users: map[int64]*userservice.User{
		1: {ID: 1},
		2: {ID: 2, Phone: "+819000000000"},
	}}
	email := &mockEmail{}
	d := NewDispatcher(users, email, nil, shop, nil, logger.Nop())

	// Бронирование без аккаунта
	assert.False(t, d.SendReminder(context.Background(), reservationFor(nil)))
	// Нет ни email, ни телефона
	assert.False(t, d.SendReminder(context.Background(), reservationFor(ptr.Ptr(int64(1)))))
	// Есть только телефон, а SMS канал выключен
	assert.False(t, d.SendReminder(context.Background(), reservationFor(ptr.Ptr(int64(2)))))

	email.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatch_DeliveryErrorsAreContained(t *testing.T) {
	users := &fakeUsers{users: map[int64]*userservice.User{1: {ID: 1, Email: "a@example.com", Phone: "+819000000000"}}}
	email := &mockEmail{}
	email.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	sms := &fakeSMS{err: errors.New("twilio down")}

	d := NewDispatcher(users, email, sms, shop, nil, logger.Nop())

	assert.NotPanics(t, func() {
		assert.False(t, d.SendReminder(context.Background(), reservationFor(ptr.Ptr(int64(1)))))
	})
}

func TestDispatch_AnyChannelIsEnough(t *testing.T) {
	users := &fakeUsers{users: map[int64]*userservice.User{1: {ID: 1, Email: "a@example.com", Phone: "+819000000000"}}}
	email := &mockEmail{}
	email.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	sms := &fakeSMS{}

	d := NewDispatcher(users, email, sms, shop, nil, logger.Nop())

	assert.True(t, d.SendReminder(context.Background(), reservationFor(ptr.Ptr(int64(1)))))
	require.Len(t, sms.sent, 1)
	assert.Contains(t, sms.sent[0], "+819000000000|Bike Repair Studio: reminder of your reservation #15 tomorrow")
}

func TestDispatch_UserServiceFailure(t *testing.T) {
	d := NewDispatcher(&fakeUsers{err: errors.New("timeout")}, &mockEmail{}, nil, shop, nil, logger.Nop())
	assert.False(t, d.SendBookingConfirmation(context.Background(), reservationFor(ptr.Ptr(int64(1)))))
}

func TestSendWorkCompletion(t *testing.T) {
	users := &fakeUsers{users: map[int64]*userservice.User{1: {ID: 1, Phone: "+819000000000"}}}
	sms := &fakeSMS{}
	d := NewDispatcher(users, nil, sms, shop, nil, logger.Nop())

	wh := &domain.WorkHistory{
		EstimatedAmount: ptr.Ptr(int64(8000)),
		ActualAmount:    ptr.Ptr(int64(12500)),
		Status:          domain.WorkStatusCompleted,
	}

	assert.True(t, d.SendWorkCompletion(context.Background(), reservationFor(ptr.Ptr(int64(1))), wh))
	require.Len(t, sms.sent, 1)
	assert.Contains(t, sms.sent[0], "Final amount: ¥12,500.")
}

func TestRender_MenuFallbackAndAmounts(t *testing.T) {
	d := NewDispatcher(nil, nil, nil, shop, nil, logger.Nop())
	res := reservationFor(nil)
	res.ServiceMenu = nil

	data := d.reservationData(res)
	data.EstimatedAmount = formatYen(nil)
	data.ActualAmount = formatYen(ptr.Ptr(int64(1234567)))

	msg, err := render(KindWorkCompletion, data)
	require.NoError(t, err)
	assert.Contains(t, msg.Body, "Menu: Not selected")
	assert.Contains(t, msg.Body, "Estimated amount: -")
	assert.Contains(t, msg.Body, "Final amount: ¥1,234,567")
}

func TestFormatYen(t *testing.T) {
	tests := []struct {
		in   *int64
		want string
	}{
		{nil, "-"},
		{ptr.Ptr(int64(0)), "¥0"},
		{ptr.Ptr(int64(999)), "¥999"},
		{ptr.Ptr(int64(1000)), "¥1,000"},
		{ptr.Ptr(int64(-45000)), "-¥45,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatYen(tt.in))
	}
}
