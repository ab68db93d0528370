package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	bikeInfoRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/bikeinfo"
	reservationRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/reservation"
	workHistoryRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/workhistory"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/reservations/models"
	"github.com/m04kA/BikeRepair-BookingService/pkg/ptr"
	"github.com/m04kA/BikeRepair-BookingService/pkg/txmanager"
)

// Service сервис для работы с бронированиями (клиентские и служебные операции)
type Service struct {
	reservationRepo ReservationRepository
	bikeRepo        BikeInfoRepository
	workHistoryRepo WorkHistoryRepository
	menuRepo        ServiceMenuRepository
	photos          PhotoStorage
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
	txAttempts      int
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	bikeRepo BikeInfoRepository,
	workHistoryRepo WorkHistoryRepository,
	menuRepo ServiceMenuRepository,
	photos PhotoStorage,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		bikeRepo:        bikeRepo,
		workHistoryRepo: workHistoryRepo,
		menuRepo:        menuRepo,
		photos:          photos,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
		txAttempts:      txmanager.DefaultSerializableAttempts,
	}
}

// GetForCustomer получает бронирование клиента вместе с данными о велосипеде.
// Чужое бронирование неотличимо от несуществующего.
func (s *Service) GetForCustomer(ctx context.Context, id, userID int64) (*models.ReservationDetailResponse, error) {
	s.logger.Info("GetForCustomer: fetching reservation id=%d for user=%d", id, userID)

	res, err := s.getOwned(ctx, "GetForCustomer", id, userID)
	if err != nil {
		return nil, err
	}

	bike, err := s.getBikeInfo(ctx, "GetForCustomer", id)
	if err != nil {
		return nil, err
	}

	return &models.ReservationDetailResponse{
		Reservation: *models.FromDomainReservation(res, false),
		BikeInfo:    models.FromDomainBikeInfo(bike, s.photos.URL),
	}, nil
}

// Cancel отменяет подтвержденное бронирование клиента
func (s *Service) Cancel(ctx context.Context, id, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, userID)

	res, err := s.getOwned(ctx, "Cancel", id, userID)
	if err != nil {
		return nil, err
	}

	if !res.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, res.Status)
		return nil, ErrCannotCancel
	}

	// Статус мог измениться после чтения: отменяем только если он все еще confirmed
	if err := s.reservationRepo.TransitionStatus(ctx, id, domain.StatusConfirmed, domain.StatusCancelled); err != nil {
		if errors.Is(err, reservationRepo.ErrStatusChanged) {
			s.logger.Warn("Cancel: reservation id=%d changed status before cancellation", id)
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}
	res.Status = domain.StatusCancelled

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	return models.FromDomainReservation(res, false), nil
}

// MyReservations бронирования клиента: предстоящие подтвержденные и прошедшие
func (s *Service) MyReservations(ctx context.Context, userID int64) (*models.MyReservationsResponse, error) {
	today := domain.DateOf(s.timeProvider.Now())
	yesterday := today.AddDate(0, 0, -1)

	upcoming, err := s.reservationRepo.List(ctx, domain.ReservationFilter{
		UserID:   &userID,
		Status:   ptr.Ptr(domain.StatusConfirmed),
		DateFrom: &today,
		OrderAsc: true,
	})
	if err != nil {
		s.logger.Error("MyReservations: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: MyReservations - upcoming: %v", ErrInternal, err)
	}

	past, err := s.reservationRepo.List(ctx, domain.ReservationFilter{
		UserID: &userID,
		DateTo: &yesterday,
	})
	if err != nil {
		s.logger.Error("MyReservations: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: MyReservations - past: %v", ErrInternal, err)
	}

	s.logger.Info("MyReservations: user=%d upcoming=%d past=%d", userID, len(upcoming), len(past))
	return &models.MyReservationsResponse{
		Upcoming: models.FromDomainReservationList(upcoming, false),
		Past:     models.FromDomainReservationList(past, false),
	}, nil
}

// Вспомогательные методы

// getOwned получает бронирование и проверяет, что оно принадлежит пользователю
func (s *Service) getOwned(ctx context.Context, op string, id, userID int64) (*domain.Reservation, error) {
	res, err := s.getReservation(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if !res.IsOwnedBy(userID) {
		s.logger.Warn("%s: reservation id=%d does not belong to user=%d", op, id, userID)
		return nil, ErrReservationNotFound
	}

	return res, nil
}

func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return res, nil
}

// getBikeInfo возвращает nil, если данные о велосипеде не сохранялись
func (s *Service) getBikeInfo(ctx context.Context, op string, reservationID int64) (*domain.BikeInfo, error) {
	bike, err := s.bikeRepo.GetByReservationID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, bikeInfoRepo.ErrBikeInfoNotFound) {
			return nil, nil
		}
		s.logger.Error("%s: failed to get bike info for reservation id=%d: %v", op, reservationID, err)
		return nil, fmt.Errorf("%w: %s - bike info: %v", ErrInternal, op, err)
	}
	return bike, nil
}

// getWorkHistory возвращает nil, если история работ еще не создана
func (s *Service) getWorkHistory(ctx context.Context, op string, reservationID int64) (*domain.WorkHistory, error) {
	wh, err := s.workHistoryRepo.GetByReservationID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, workHistoryRepo.ErrWorkHistoryNotFound) {
			return nil, nil
		}
		s.logger.Error("%s: failed to get work history for reservation id=%d: %v", op, reservationID, err)
		return nil, fmt.Errorf("%w: %s - work history: %v", ErrInternal, op, err)
	}
	return wh, nil
}
