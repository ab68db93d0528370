package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/reservation"
	menuRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/servicemenu"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations/models"
	"github.com/m04kA/BikeRepair-BookingService/pkg/pgerrors"
	"github.com/m04kA/BikeRepair-BookingService/pkg/ptr"
	"github.com/m04kA/BikeRepair-BookingService/pkg/txmanager"
)

// Dashboard сводка на сегодня: визиты дня, ближайшие подтвержденные и количество по статусам
func (s *Service) Dashboard(ctx context.Context) (*models.DashboardResponse, error) {
	today := domain.DateOf(s.timeProvider.Now())
	tomorrow := today.AddDate(0, 0, 1)

	todayList, err := s.reservationRepo.List(ctx, domain.ReservationFilter{
		Statuses: []domain.ReservationStatus{domain.StatusConfirmed, domain.StatusInProgress},
		DateFrom: &today,
		DateTo:   &today,
		OrderAsc: true,
	})
	if err != nil {
		s.logger.Error("Dashboard: failed to list today reservations: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - today: %v", ErrInternal, err)
	}

	upcoming, err := s.reservationRepo.List(ctx, domain.ReservationFilter{
		Status:   ptr.Ptr(domain.StatusConfirmed),
		DateFrom: &tomorrow,
		Limit:    domain.UpcomingDashboardLimit,
		OrderAsc: true,
	})
	if err != nil {
		s.logger.Error("Dashboard: failed to list upcoming reservations: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - upcoming: %v", ErrInternal, err)
	}

	counts, err := s.reservationRepo.CountByStatus(ctx, today)
	if err != nil {
		s.logger.Error("Dashboard: failed to count reservations: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - counts: %v", ErrInternal, err)
	}

	statusCounts := make(map[string]int, len(domain.ReservationStatuses))
	for _, st := range domain.ReservationStatuses {
		statusCounts[string(st)] = 0
	}
	for _, c := range counts {
		statusCounts[string(c.Status)] = c.Count
	}

	return &models.DashboardResponse{
		Date:         today.Format(domain.DateFormat),
		Today:        models.FromDomainReservationList(todayList, true),
		Upcoming:     models.FromDomainReservationList(upcoming, true),
		StatusCounts: statusCounts,
	}, nil
}

// List список бронирований с фильтрами по статусу и периоду (без ограничения количества)
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: status=%q dateFrom=%q dateTo=%q", req.Status, req.DateFrom, req.DateTo)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d reservations", len(list))
	return &models.ReservationListResponse{
		Reservations: models.FromDomainReservationList(list, true),
	}, nil
}

// Detail бронирование со служебной заметкой, велосипедом и историей работ
func (s *Service) Detail(ctx context.Context, id int64) (*models.ReservationDetailResponse, error) {
	res, err := s.getReservation(ctx, "Detail", id)
	if err != nil {
		return nil, err
	}

	bike, err := s.getBikeInfo(ctx, "Detail", id)
	if err != nil {
		return nil, err
	}

	wh, err := s.getWorkHistory(ctx, "Detail", id)
	if err != nil {
		return nil, err
	}

	return &models.ReservationDetailResponse{
		Reservation: *models.FromDomainReservation(res, true),
		BikeInfo:    models.FromDomainBikeInfo(bike, s.photos.URL),
		WorkHistory: models.FromDomainWorkHistory(wh, s.photos.URL),
	}, nil
}

// Update редактирование бронирования сотрудником.
//
// Поля проверяются теми же правилами, что и при создании. Прошедшая дата
// отклоняется только если дата изменилась. Подтвержденное бронирование
// не может занять слот другого подтвержденного бронирования.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Update: reservation id=%d date=%s slot=%s status=%s", id, req.Date, req.TimeSlot, req.Status)

	var updated *domain.Reservation

	err := txmanager.RetryOnSerializationFailure(ctx, s.txAttempts, func(attempt int) error {
		if attempt > 1 {
			s.logger.Warn("Update: serialization failure for reservation id=%d, retrying (attempt %d of %d)", id, attempt, s.txAttempts)
		}
		return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			current, err := s.getReservation(txCtx, "Update", id)
			if err != nil {
				return err
			}

			candidate, errs := s.applyUpdate(current, req)
			if err := s.checkServiceMenu(txCtx, current, candidate, &errs); err != nil {
				return err
			}
			if err := errs.Err(); err != nil {
				return err
			}

			if candidate.OccupiesSlot() {
				occupied, err := s.reservationRepo.ExistsConfirmed(txCtx, candidate.Slot(), &id)
				if err != nil {
					return fmt.Errorf("%w: Update - check slot: %w", ErrInternal, err)
				}
				if occupied {
					return domain.SlotUnavailable()
				}
			}

			if err := s.reservationRepo.Update(txCtx, candidate); err != nil {
				switch {
				case errors.Is(err, reservationRepo.ErrSlotTaken):
					return domain.SlotUnavailable()
				case errors.Is(err, reservationRepo.ErrReservationNotFound):
					return ErrReservationNotFound
				case errors.Is(err, reservationRepo.ErrServiceMenuNotFound):
					return domain.ValidationErrors{{Field: domain.FieldServiceMenu, Err: domain.ErrServiceMenuUnavailable}}
				}
				return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
			}

			updated = candidate
			return nil
		})
	})
	if err != nil {
		if pgerrors.IsSerializationFailure(err) {
			s.logger.Warn("Update: reservation id=%d still contended after %d attempts", id, s.txAttempts)
			return nil, domain.SlotUnavailable()
		}
		if _, ok := domain.AsValidationErrors(err); ok {
			s.logger.Warn("Update: validation failed for reservation id=%d: %v", id, err)
			return nil, err
		}
		if !errors.Is(err, ErrReservationNotFound) {
			s.logger.Error("Update: reservation id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Update: successfully updated reservation id=%d", id)
	return models.FromDomainReservation(updated, true), nil
}

// Delete удаляет бронирование вместе с велосипедом, фотографиями и историей работ
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: reservation id=%d", id)

	var files []string

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.getReservation(txCtx, "Delete", id); err != nil {
			return err
		}

		paths, err := s.bikeRepo.ListImagePaths(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: Delete - list images: %v", ErrInternal, err)
		}

		wh, err := s.getWorkHistory(txCtx, "Delete", id)
		if err != nil {
			return err
		}
		if wh != nil && wh.CompletionPhotoPath != "" {
			paths = append(paths, wh.CompletionPhotoPath)
		}

		if err := s.bikeRepo.DeleteByReservationID(txCtx, id); err != nil {
			return fmt.Errorf("%w: Delete - bike info: %v", ErrInternal, err)
		}
		if err := s.workHistoryRepo.DeleteByReservationID(txCtx, id); err != nil {
			return fmt.Errorf("%w: Delete - work history: %v", ErrInternal, err)
		}
		if err := s.reservationRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Delete - reservation: %v", ErrInternal, err)
		}

		files = paths
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrReservationNotFound) {
			s.logger.Error("Delete: reservation id=%d: %v", id, err)
		}
		return err
	}

	for _, path := range files {
		if err := s.photos.Delete(ctx, path); err != nil {
			s.logger.Warn("Delete: failed to remove file %s: %v", path, err)
		}
	}

	s.logger.Info("Delete: successfully deleted reservation id=%d (%d files)", id, len(files))
	return nil
}

// applyUpdate строит новую версию бронирования и собирает ошибки полей
func (s *Service) applyUpdate(current *domain.Reservation, req *models.UpdateReservationRequest) (*domain.Reservation, domain.ValidationErrors) {
	var errs domain.ValidationErrors

	candidate := *current
	candidate.Name = strings.TrimSpace(req.Name)
	candidate.TimeSlot = domain.TimeSlot(strings.ToUpper(strings.TrimSpace(req.TimeSlot)))
	candidate.VisitReason = domain.VisitReason(strings.TrimSpace(req.VisitReason))
	candidate.ServiceMenuID = req.ServiceMenuID
	candidate.Note = req.Note
	candidate.AdminMemo = req.AdminMemo

	candidate.Date = current.Date
	if strings.TrimSpace(req.Date) != "" {
		date, err := domain.ParseDate(req.Date)
		if err != nil {
			errs.Add(domain.FieldDate, domain.ErrInvalidFormat)
		} else {
			candidate.Date = date
		}
	}

	if strings.TrimSpace(req.Status) != "" {
		status, err := models.ToDomainReservationStatus(req.Status)
		if err != nil {
			errs.Add(domain.FieldStatus, domain.ErrInvalidChoice)
		} else {
			candidate.Status = status
		}
	}

	errs = append(errs, domain.ValidateReservationFields(&candidate)...)

	if !domain.SameDay(candidate.Date, current.Date) {
		if err := domain.ValidateDate(candidate.Date, domain.DateOf(s.timeProvider.Now())); err != nil {
			errs.Add(domain.FieldDate, err)
		}
	}

	return &candidate, errs
}

// checkServiceMenu проверяет выбранное меню. Уже привязанное меню остается
// допустимым, даже если его сняли с публикации.
func (s *Service) checkServiceMenu(ctx context.Context, current, candidate *domain.Reservation, errs *domain.ValidationErrors) error {
	if candidate.ServiceMenuID == nil {
		candidate.ServiceMenu = nil
		return nil
	}
	if current.ServiceMenuID != nil && *current.ServiceMenuID == *candidate.ServiceMenuID {
		return nil
	}

	menu, err := s.menuRepo.GetByID(ctx, *candidate.ServiceMenuID)
	switch {
	case errors.Is(err, menuRepo.ErrServiceMenuNotFound):
		errs.Add(domain.FieldServiceMenu, domain.ErrServiceMenuUnavailable)
	case err != nil:
		return fmt.Errorf("%w: Update - service menu: %v", ErrInternal, err)
	case !menu.IsActive:
		errs.Add(domain.FieldServiceMenu, domain.ErrServiceMenuUnavailable)
	default:
		candidate.ServiceMenu = menu.Ref()
	}

	return nil
}
