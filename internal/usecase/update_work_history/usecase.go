package update_work_history

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	"github.com/m04kA/BikeRepair-BookingService/internal/infra/filestorage"
	reservationRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/reservation"
	workHistoryRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/workhistory"
)

// UseCase use case работы с историей работ (get-or-create и частичное обновление)
type UseCase struct {
	reservationRepo ReservationRepository
	workHistoryRepo WorkHistoryRepository
	photos          PhotoStorage
	notifier        Notifier
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	workHistoryRepo WorkHistoryRepository,
	photos PhotoStorage,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		workHistoryRepo: workHistoryRepo,
		photos:          photos,
		notifier:        notifier,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetOrCreate возвращает историю работ бронирования, создавая запись по умолчанию
// (status=pending, суммы не заданы), если её еще нет
func (uc *UseCase) GetOrCreate(ctx context.Context, reservationID int64) (*Response, error) {
	var (
		res *domain.Reservation
		wh  *domain.WorkHistory
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		res, wh, err = uc.load(txCtx, reservationID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Response{Reservation: res, WorkHistory: wh}, nil
}

// Execute частично обновляет историю работ.
// Уведомление о завершении отправляется только при переходе в статус completed.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateWorkHistory: reservation=%d", req.ReservationID)

	normalizeRequest(req)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateWorkHistory: validation failed: %v", err)
		return nil, err
	}

	var photoPath string
	if req.CompletionPhoto != nil {
		path, err := uc.photos.Save(ctx, photoCategory, req.CompletionPhoto.Filename, req.CompletionPhoto.Content)
		if err != nil {
			if errors.Is(err, filestorage.ErrUnsupportedType) {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			uc.logger.Error("UpdateWorkHistory: failed to store completion photo: %v", err)
			return nil, fmt.Errorf("%w: failed to store photo: %v", ErrInternal, err)
		}
		photoPath = path
	}

	var (
		res            *domain.Reservation
		wh             *domain.WorkHistory
		previousStatus domain.WorkStatus
		previousPhoto  string
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		res, wh, err = uc.load(txCtx, req.ReservationID)
		if err != nil {
			return err
		}

		previousStatus = wh.Status
		previousPhoto = wh.CompletionPhotoPath
		applyChanges(wh, req, photoPath)

		if err := uc.workHistoryRepo.Update(txCtx, wh); err != nil {
			return fmt.Errorf("%w: failed to update work history: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if photoPath != "" {
			_ = uc.photos.Delete(ctx, photoPath)
		}
		if !errors.Is(err, ErrReservationNotFound) {
			uc.logger.Error("UpdateWorkHistory: reservation=%d: %v", req.ReservationID, err)
		}
		return nil, err
	}

	if photoPath != "" && previousPhoto != "" {
		if err := uc.photos.Delete(ctx, previousPhoto); err != nil {
			uc.logger.Warn("UpdateWorkHistory: failed to remove replaced photo %s: %v", previousPhoto, err)
		}
	}

	resp := &Response{Reservation: res, WorkHistory: wh}

	if previousStatus != domain.WorkStatusCompleted && wh.IsCompleted() {
		resp.NotificationSent = uc.notifier.SendWorkCompletion(ctx, res, wh)
	}

	uc.logger.Info("UpdateWorkHistory: reservation=%d updated, status %s -> %s", req.ReservationID, previousStatus, wh.Status)
	return resp, nil
}

// load получает бронирование и его историю работ (создавая ее при отсутствии)
func (uc *UseCase) load(ctx context.Context, reservationID int64) (*domain.Reservation, *domain.WorkHistory, error) {
	res, err := uc.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, nil, ErrReservationNotFound
		}
		return nil, nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	wh, err := uc.workHistoryRepo.GetByReservationID(ctx, reservationID)
	if err == nil {
		return res, wh, nil
	}
	if !errors.Is(err, workHistoryRepo.ErrWorkHistoryNotFound) {
		return nil, nil, fmt.Errorf("%w: failed to get work history: %v", ErrInternal, err)
	}

	wh, err = uc.workHistoryRepo.Create(ctx, domain.NewWorkHistory(reservationID))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to create work history: %v", ErrInternal, err)
	}
	uc.logger.Info("UpdateWorkHistory: created default work history for reservation=%d", reservationID)

	return res, wh, nil
}
