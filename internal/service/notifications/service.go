package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	"github.com/m04kA/BikeRepair-BookingService/internal/integrations/userservice"
)

const (
	channelEmail = "email"
	channelSMS   = "sms"
	channelNone  = "none"

	resultSent    = "sent"
	resultFailed  = "failed"
	resultSkipped = "skipped"

	menuNotSelected = "Not selected"
	amountUnknown   = "-"
)

// ShopInfo данные мастерской, подставляемые в сообщения
type ShopInfo struct {
	Name         string
	ContactPhone string
	PublicURL    string // базовый адрес для ссылки на бронирование
}

// Dispatcher отправляет уведомления клиентам.
// Все методы возвращают true, если сообщение доставлено хотя бы по одному каналу,
// и никогда не возвращают ошибку: сбои доставки только логируются.
type Dispatcher struct {
	users   UserServiceClient
	email   EmailSender
	sms     SMSSender
	shop    ShopInfo
	metrics Metrics
	logger  Logger
}

// NewDispatcher создает диспетчер уведомлений. email и sms могут быть nil (канал выключен).
func NewDispatcher(
	users UserServiceClient,
	email EmailSender,
	sms SMSSender,
	shop ShopInfo,
	metrics Metrics,
	logger Logger,
) *Dispatcher {
	return &Dispatcher{
		users:   users,
		email:   email,
		sms:     sms,
		shop:    shop,
		metrics: metrics,
		logger:  logger,
	}
}

// SendBookingConfirmation уведомляет о созданном бронировании
func (d *Dispatcher) SendBookingConfirmation(ctx context.Context, res *domain.Reservation) bool {
	data := d.reservationData(res)
	data.ConfirmationURL = d.confirmationURL(res.ID)
	return d.dispatch(ctx, KindBookingConfirmation, res, data)
}

// SendReminder напоминает о бронировании накануне
func (d *Dispatcher) SendReminder(ctx context.Context, res *domain.Reservation) bool {
	return d.dispatch(ctx, KindReminder, res, d.reservationData(res))
}

// SendWorkCompletion сообщает о завершении работ
func (d *Dispatcher) SendWorkCompletion(ctx context.Context, res *domain.Reservation, wh *domain.WorkHistory) bool {
	data := d.reservationData(res)
	data.EstimatedAmount = formatYen(wh.EstimatedAmount)
	data.ActualAmount = formatYen(wh.ActualAmount)
	data.AdminComment = wh.AdminComment
	return d.dispatch(ctx, KindWorkCompletion, res, data)
}

func (d *Dispatcher) dispatch(ctx context.Context, kind Kind, res *domain.Reservation, data messageData) bool {
	if res.UserID == nil {
		d.logger.Info("%s: reservation id=%d has no customer account, skipping", kind, res.ID)
		d.observe(kind, channelNone, resultSkipped)
		return false
	}

	user, err := d.users.GetUser(ctx, *res.UserID)
	if err != nil {
		d.logger.Error("%s: failed to fetch contacts of user=%d for reservation id=%d: %v", kind, *res.UserID, res.ID, err)
		d.observe(kind, channelNone, resultFailed)
		return false
	}
	if !d.reachable(user) {
		d.logger.Info("%s: user=%d has no contact address, skipping reservation id=%d", kind, user.ID, res.ID)
		d.observe(kind, channelNone, resultSkipped)
		return false
	}

	if data.CustomerName == "" {
		data.CustomerName = user.Name
	}

	msg, err := render(kind, data)
	if err != nil {
		d.logger.Error("%s: failed to render message for reservation id=%d: %v", kind, res.ID, err)
		d.observe(kind, channelNone, resultFailed)
		return false
	}

	delivered := false

	if d.email != nil && user.Email != "" {
		if err := d.email.SendEmail(ctx, user.Email, msg.Subject, msg.Body); err != nil {
			d.logger.Error("%s: email delivery failed for reservation id=%d: %v", kind, res.ID, err)
			d.observe(kind, channelEmail, resultFailed)
		} else {
			d.logger.Info("%s: email sent for reservation id=%d", kind, res.ID)
			d.observe(kind, channelEmail, resultSent)
			delivered = true
		}
	}

	if d.sms != nil && user.Phone != "" {
		if err := d.sms.SendSMS(ctx, user.Phone, msg.SMS); err != nil {
			d.logger.Error("%s: sms delivery failed for reservation id=%d: %v", kind, res.ID, err)
			d.observe(kind, channelSMS, resultFailed)
		} else {
			d.logger.Info("%s: sms sent for reservation id=%d", kind, res.ID)
			d.observe(kind, channelSMS, resultSent)
			delivered = true
		}
	}

	return delivered
}

// reachable есть ли у пользователя адрес хотя бы для одного включенного канала
func (d *Dispatcher) reachable(user *userservice.User) bool {
	return (d.email != nil && user.Email != "") || (d.sms != nil && user.Phone != "")
}

func (d *Dispatcher) reservationData(res *domain.Reservation) messageData {
	menu := res.MenuName()
	if menu == "" {
		menu = menuNotSelected
	}
	return messageData{
		ShopName:      d.shop.Name,
		ContactPhone:  d.shop.ContactPhone,
		CustomerName:  res.Name,
		ReservationID: res.ID,
		Date:          res.Date.Format(domain.DateFormat),
		TimeSlot:      TimeSlotLabel(res.TimeSlot),
		MenuName:      menu,
	}
}

func (d *Dispatcher) confirmationURL(id int64) string {
	if d.shop.PublicURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/api/v1/reservations/%d", strings.TrimSuffix(d.shop.PublicURL, "/"), id)
}

func (d *Dispatcher) observe(kind Kind, channel, result string) {
	if d.metrics != nil {
		d.metrics.ObserveNotification(string(kind), channel, result)
	}
}

// TimeSlotLabel человекочитаемое название временного интервала
func TimeSlotLabel(slot domain.TimeSlot) string {
	switch slot {
	case domain.TimeSlotAM:
		return "Morning (AM)"
	case domain.TimeSlotPM:
		return "Afternoon (PM)"
	default:
		return string(slot)
	}
}

// formatYen форматирует сумму как ¥12,345
func formatYen(amount *int64) string {
	if amount == nil {
		return amountUnknown
	}

	digits := fmt.Sprintf("%d", *amount)
	negative := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	if negative {
		return "-¥" + b.String()
	}
	return "¥" + b.String()
}
