package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	calendarRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/calendar"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/catalog/models"
)

// ListHolidays список выходных
func (s *Service) ListHolidays(ctx context.Context) (*models.HolidayListResponse, error) {
	holidays, err := s.calendarRepo.ListHolidays(ctx)
	if err != nil {
		s.logger.Error("ListHolidays: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListHolidays - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainHolidayList(holidays), nil
}

// CreateHoliday добавляет выходной
func (s *Service) CreateHoliday(ctx context.Context, req *models.HolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("CreateHoliday: date=%s permanent=%t", req.Date, req.IsPermanent)

	holiday, err := buildHoliday(req)
	if err != nil {
		s.logger.Warn("CreateHoliday: validation failed: %v", err)
		return nil, err
	}

	created, err := s.calendarRepo.CreateHoliday(ctx, holiday)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrDuplicate) {
			return nil, fmt.Errorf("%w: holiday on %s", ErrAlreadyExists, req.Date)
		}
		s.logger.Error("CreateHoliday: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateHoliday - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateHoliday: successfully created holiday id=%d", created.ID)
	return models.FromDomainHoliday(created), nil
}

// UpdateHoliday редактирует выходной
func (s *Service) UpdateHoliday(ctx context.Context, id int64, req *models.HolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("UpdateHoliday: id=%d date=%s permanent=%t", id, req.Date, req.IsPermanent)

	holiday, err := buildHoliday(req)
	if err != nil {
		s.logger.Warn("UpdateHoliday: validation failed: %v", err)
		return nil, err
	}
	holiday.ID = id

	if err := s.calendarRepo.UpdateHoliday(ctx, holiday); err != nil {
		switch {
		case errors.Is(err, calendarRepo.ErrHolidayNotFound):
			s.logger.Warn("UpdateHoliday: holiday id=%d not found", id)
			return nil, ErrHolidayNotFound
		case errors.Is(err, calendarRepo.ErrDuplicate):
			return nil, fmt.Errorf("%w: holiday on %s", ErrAlreadyExists, req.Date)
		}
		s.logger.Error("UpdateHoliday: repository error for holiday id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateHoliday - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHoliday(holiday), nil
}

// DeleteHoliday удаляет выходной
func (s *Service) DeleteHoliday(ctx context.Context, id int64) error {
	if err := s.calendarRepo.DeleteHoliday(ctx, id); err != nil {
		if errors.Is(err, calendarRepo.ErrHolidayNotFound) {
			s.logger.Warn("DeleteHoliday: holiday id=%d not found", id)
			return ErrHolidayNotFound
		}
		s.logger.Error("DeleteHoliday: repository error for holiday id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteHoliday - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteHoliday: successfully deleted holiday id=%d", id)
	return nil
}

// ListTimeSlots список временных слотов (справочные данные, вместимость не учитывается при бронировании)
func (s *Service) ListTimeSlots(ctx context.Context) (*models.TimeSlotListResponse, error) {
	slots, err := s.calendarRepo.ListTimeSlots(ctx)
	if err != nil {
		s.logger.Error("ListTimeSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListTimeSlots - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainTimeSlotList(slots), nil
}

// CreateTimeSlot добавляет временной слот
func (s *Service) CreateTimeSlot(ctx context.Context, req *models.TimeSlotRequest) (*models.TimeSlotResponse, error) {
	s.logger.Info("CreateTimeSlot: %s-%s capacity=%d", req.StartTime, req.EndTime, req.Capacity)

	slot, err := buildTimeSlot(req)
	if err != nil {
		s.logger.Warn("CreateTimeSlot: validation failed: %v", err)
		return nil, err
	}

	created, err := s.calendarRepo.CreateTimeSlot(ctx, slot)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrDuplicate) {
			return nil, fmt.Errorf("%w: time slot %s-%s", ErrAlreadyExists, slot.StartTime, slot.EndTime)
		}
		s.logger.Error("CreateTimeSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateTimeSlot - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTimeSlot(created), nil
}

// SetBusinessDay открывает или закрывает мастерскую на конкретную дату
func (s *Service) SetBusinessDay(ctx context.Context, date string, req *models.BusinessDayRequest) (*models.BusinessDayResponse, error) {
	s.logger.Info("SetBusinessDay: date=%s open=%t", date, req.IsOpen)

	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	saved, err := s.calendarRepo.UpsertBusinessDay(ctx, &domain.BusinessDay{Date: day, IsOpen: req.IsOpen})
	if err != nil {
		s.logger.Error("SetBusinessDay: repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: SetBusinessDay - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBusinessDay(saved), nil
}
