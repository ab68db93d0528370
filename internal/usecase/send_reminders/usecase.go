package send_reminders

import (
	"context"
	"fmt"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	"github.com/m04kA/BikeRepair-BookingService/pkg/ptr"
)

// UseCase рассылка напоминаний о визите на следующий день
type UseCase struct {
	reservationRepo ReservationRepository
	notifier        Notifier
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	notifier Notifier,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		notifier:        notifier,
		metrics:         metrics,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute отправляет напоминания по всем подтвержденным бронированиям на завтра.
// Ошибка доставки одного напоминания не прерывает рассылку.
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	tomorrow := domain.DateOf(uc.timeProvider.Now()).AddDate(0, 0, 1)
	result := &Result{Date: tomorrow.Format(domain.DateFormat)}

	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		Status:   ptr.Ptr(domain.StatusConfirmed),
		DateFrom: &tomorrow,
		DateTo:   &tomorrow,
		OrderAsc: true,
	})
	if err != nil {
		uc.logger.Error("SendReminders: failed to list reservations for %s: %v", result.Date, err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	result.Total = len(reservations)
	uc.logger.Info("SendReminders: %d reservations on %s", result.Total, result.Date)

	for _, res := range reservations {
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("SendReminders: interrupted after %d of %d: %v", result.Sent+result.Failed, result.Total, err)
			result.Failed += result.Total - result.Sent - result.Failed
			break
		}

		if uc.notifier.SendReminder(ctx, res) {
			result.Sent++
			uc.metrics.ObserveReminderResult(resultSent)
			continue
		}

		result.Failed++
		uc.metrics.ObserveReminderResult(resultFailed)
		uc.logger.Warn("SendReminders: reminder not delivered for reservation=%d", res.ID)
	}

	uc.logger.Info("SendReminders: %s done, sent=%d failed=%d", result.Date, result.Sent, result.Failed)
	return result, nil
}
