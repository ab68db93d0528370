package get_booking_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

// UseCase use case получения календаря бронирований
type UseCase struct {
	reservationRepo ReservationRepository
	calendarRepo    CalendarRepository
	menuRepo        ServiceMenuRepository
	horizonDays     int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	calendarRepo CalendarRepository,
	menuRepo ServiceMenuRepository,
	horizonDays int,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultBookingHorizonDays
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		calendarRepo:    calendarRepo,
		menuRepo:        menuRepo,
		horizonDays:     horizonDays,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute возвращает занятые слоты начиная с сегодняшнего дня, нерабочие дни и активные меню
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	booked, err := uc.BookedSlots(ctx)
	if err != nil {
		return nil, err
	}

	today := domain.DateOf(uc.timeProvider.Now())
	closed, err := uc.closedDates(ctx, today, today.AddDate(0, 0, uc.horizonDays))
	if err != nil {
		return nil, err
	}

	menus, err := uc.menuRepo.List(ctx, true)
	if err != nil {
		uc.logger.Error("GetBookingCalendar: failed to list service menus: %v", err)
		return nil, fmt.Errorf("%w: failed to list service menus: %v", ErrInternal, err)
	}

	uc.logger.Info("GetBookingCalendar: %d booked dates, %d closed dates, %d menus", len(booked), len(closed), len(menus))

	return &Response{
		BookedSlots:  booked,
		ClosedDates:  closed,
		ServiceMenus: menus,
	}, nil
}

// BookedSlots занятые подтвержденными бронированиями слоты начиная с сегодняшнего дня
func (uc *UseCase) BookedSlots(ctx context.Context) (map[string][]domain.TimeSlot, error) {
	today := domain.DateOf(uc.timeProvider.Now())

	slots, err := uc.reservationRepo.GetBookedSlots(ctx, today)
	if err != nil {
		uc.logger.Error("GetBookingCalendar: failed to get booked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
	}

	return groupSlots(slots), nil
}

func (uc *UseCase) closedDates(ctx context.Context, from, to time.Time) ([]string, error) {
	businessDays, err := uc.calendarRepo.ListBusinessDays(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetBookingCalendar: failed to list business days: %v", err)
		return nil, fmt.Errorf("%w: failed to list business days: %v", ErrInternal, err)
	}

	holidays, err := uc.calendarRepo.ListHolidays(ctx)
	if err != nil {
		uc.logger.Error("GetBookingCalendar: failed to list holidays: %v", err)
		return nil, fmt.Errorf("%w: failed to list holidays: %v", ErrInternal, err)
	}

	closed := make([]string, 0)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if domain.IsClosed(day, businessDays, holidays) {
			closed = append(closed, day.Format(domain.DateFormat))
		}
	}

	return closed, nil
}

// groupSlots группирует слоты по дате, сохраняя порядок AM, PM
func groupSlots(slots []domain.Slot) map[string][]domain.TimeSlot {
	grouped := make(map[string][]domain.TimeSlot)
	for _, s := range slots {
		key := s.Date.Format(domain.DateFormat)
		grouped[key] = append(grouped[key], s.TimeSlot)
	}
	for key, list := range grouped {
		grouped[key] = orderSlots(list)
	}
	return grouped
}

func orderSlots(list []domain.TimeSlot) []domain.TimeSlot {
	ordered := make([]domain.TimeSlot, 0, len(list))
	for _, known := range domain.TimeSlots {
		for _, s := range list {
			if s == known {
				ordered = append(ordered, s)
				break
			}
		}
	}
	return ordered
}
