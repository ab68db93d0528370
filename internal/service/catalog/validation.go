package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/catalog/models"
)

// validateServiceMenu проверяет пункт меню
func validateServiceMenu(m *domain.ServiceMenu) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len([]rune(m.Name)) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if m.EstimatedDuration < domain.MinServiceDurationMinutes {
		return fmt.Errorf("%w: estimatedDuration must be at least %d minutes", ErrInvalidInput, domain.MinServiceDurationMinutes)
	}
	if m.PriceEstimate < 0 {
		return fmt.Errorf("%w: priceEstimate must not be negative", ErrInvalidInput)
	}
	return nil
}

// buildHoliday проверяет запрос и строит выходной.
// Постоянный выходной повторяется еженедельно и требует день недели.
func buildHoliday(req *models.HolidayRequest) (*domain.Holiday, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	if req.DayOfWeek != nil && (*req.DayOfWeek < 0 || *req.DayOfWeek > 6) {
		return nil, fmt.Errorf("%w: dayOfWeek must be between 0 (Monday) and 6 (Sunday)", ErrInvalidInput)
	}
	if req.IsPermanent && req.DayOfWeek == nil {
		return nil, fmt.Errorf("%w: dayOfWeek is required for a permanent holiday", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	if len([]rune(name)) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	return &domain.Holiday{
		Date:        date,
		Name:        name,
		IsPermanent: req.IsPermanent,
		DayOfWeek:   req.DayOfWeek,
	}, nil
}

// buildTimeSlot проверяет запрос и строит временной слот
func buildTimeSlot(req *models.TimeSlotRequest) (*domain.SlotDefinition, error) {
	start, err := time.Parse(domain.TimeFormat, strings.TrimSpace(req.StartTime))
	if err != nil {
		return nil, fmt.Errorf("%w: startTime must be in HH:MM format", ErrInvalidInput)
	}
	end, err := time.Parse(domain.TimeFormat, strings.TrimSpace(req.EndTime))
	if err != nil {
		return nil, fmt.Errorf("%w: endTime must be in HH:MM format", ErrInvalidInput)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	if req.Capacity < domain.MinSlotCapacity {
		return nil, fmt.Errorf("%w: capacity must be at least %d", ErrInvalidInput, domain.MinSlotCapacity)
	}

	return &domain.SlotDefinition{
		StartTime: start.Format(domain.TimeFormat),
		EndTime:   end.Format(domain.TimeFormat),
		Capacity:  req.Capacity,
	}, nil
}
