package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
	"github.com/m04kA/BikeRepair-BookingService/internal/infra/filestorage"
	reservationRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/reservation"
	menuRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/servicemenu"
	"github.com/m04kA/BikeRepair-BookingService/pkg/pgerrors"
	"github.com/m04kA/BikeRepair-BookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	bikeRepo        BikeInfoRepository
	menuRepo        ServiceMenuRepository
	photos          PhotoStorage
	notifier        Notifier
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
	txAttempts      int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	bikeRepo BikeInfoRepository,
	menuRepo ServiceMenuRepository,
	photos PhotoStorage,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		bikeRepo:        bikeRepo,
		menuRepo:        menuRepo,
		photos:          photos,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    timeProvider,
		logger:          logger,
		txAttempts:      txmanager.DefaultSerializableAttempts,
	}
}

// Execute выполняет use case создания бронирования.
//
// Порядок: валидация -> сохранение фотографий -> в сериализуемой транзакции
// проверка слота, Reservation, BikeInfo, BikeImage -> подтверждение клиенту.
// При ошибке валидации ничего не сохраняется, возвращается domain.ValidationErrors.
// Проигравшая гонку за слот запись получает ту же ошибку "слот недоступен".
// Конфликт сериализации повторяется до txmanager.DefaultSerializableAttempts раз.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	res := buildReservation(req)

	uc.logger.Info("CreateReservation: user=%v, date=%s, slot=%s, reason=%s",
		userLabel(req.UserID), res.Date.Format(domain.DateFormat), res.TimeSlot, res.VisitReason)

	// 1. Валидация полей и даты
	errs := validateRequest(req, res, uc.timeProvider.Now())

	// 2. Проверяем меню (если выбрано)
	if res.ServiceMenuID != nil {
		menu, err := uc.menuRepo.GetByID(ctx, *res.ServiceMenuID)
		switch {
		case errors.Is(err, menuRepo.ErrServiceMenuNotFound):
			errs.Add(domain.FieldServiceMenu, domain.ErrServiceMenuUnavailable)
		case err != nil:
			uc.logger.Error("CreateReservation: failed to get service menu id=%d: %v", *res.ServiceMenuID, err)
			return nil, fmt.Errorf("%w: failed to get service menu: %v", ErrInternal, err)
		case !menu.IsActive:
			errs.Add(domain.FieldServiceMenu, domain.ErrServiceMenuUnavailable)
		default:
			res.ServiceMenu = menu.Ref()
		}
	}

	if len(errs) > 0 {
		uc.logger.Warn("CreateReservation: validation failed: %v", errs)
		return nil, errs
	}

	// 3. Сохраняем фотографии до транзакции, при неудаче удаляем
	paths, err := uc.saveImages(ctx, req.Images)
	if err != nil {
		return nil, err
	}

	var bike *domain.BikeInfo

	// 4. Операции с БД в сериализуемой транзакции. Конфликт сериализации
	// повторяется: следующая попытка заново проверяет занятость слота.
	err = txmanager.RetryOnSerializationFailure(ctx, uc.txAttempts, func(attempt int) error {
		if attempt > 1 {
			uc.logger.Warn("CreateReservation: serialization failure, retrying (attempt %d of %d)", attempt, uc.txAttempts)
		}
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			occupied, err := uc.reservationRepo.ExistsConfirmed(txCtx, res.Slot(), nil)
			if err != nil {
				return fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
			}
			if err := domain.ValidateSlotFree(occupied); err != nil {
				return domain.SlotUnavailable()
			}

			if _, err := uc.reservationRepo.Create(txCtx, res); err != nil {
				if errors.Is(err, reservationRepo.ErrSlotTaken) {
					return domain.SlotUnavailable()
				}
				return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
			}

			bike, err = uc.bikeRepo.Create(txCtx, &domain.BikeInfo{
				ReservationID:     res.ID,
				Manufacturer:      req.Bike.Manufacturer,
				ModelName:         req.Bike.ModelName,
				Details:           req.Bike.Details,
				HasPartsBroughtIn: req.Bike.HasPartsBroughtIn,
			})
			if err != nil {
				return fmt.Errorf("%w: failed to create bike info: %w", ErrInternal, err)
			}

			for _, path := range paths {
				image, err := uc.bikeRepo.AddImage(txCtx, &domain.BikeImage{BikeInfoID: bike.ID, ImagePath: path})
				if err != nil {
					return fmt.Errorf("%w: failed to add bike image: %w", ErrInternal, err)
				}
				bike.Images = append(bike.Images, *image)
			}

			return nil
		})
	})

	if err != nil {
		uc.removeImages(ctx, paths)

		switch {
		case errors.Is(err, domain.ErrSlotNotAvailable):
			uc.metrics.IncSlotConflicts()
			uc.logger.Warn("CreateReservation: slot %s %s is not available",
				res.Date.Format(domain.DateFormat), res.TimeSlot)
			return nil, domain.SlotUnavailable()
		case pgerrors.IsSerializationFailure(err):
			// Все попытки проиграли конкурентным транзакциям
			uc.metrics.IncSlotConflicts()
			uc.logger.Warn("CreateReservation: slot %s %s still contended after %d attempts",
				res.Date.Format(domain.DateFormat), res.TimeSlot, uc.txAttempts)
			return nil, domain.SlotUnavailable()
		}

		uc.logger.Error("CreateReservation: transaction failed: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.IncReservationsCreated()
	uc.logger.Info("CreateReservation: successfully created reservation id=%d", res.ID)

	// 5. Подтверждение (ошибки доставки не влияют на результат)
	sent := uc.notifier.SendBookingConfirmation(ctx, res)

	return &Response{
		Reservation:      res,
		BikeInfo:         bike,
		NotificationSent: sent,
	}, nil
}

func (uc *UseCase) saveImages(ctx context.Context, uploads []Upload) ([]string, error) {
	paths := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		path, err := uc.photos.Save(ctx, imageCategory, upload.Filename, upload.Content)
		if err != nil {
			uc.removeImages(ctx, paths)
			if errors.Is(err, filestorage.ErrUnsupportedType) {
				uc.logger.Warn("CreateReservation: rejected image %q: %v", upload.Filename, err)
				return nil, domain.ValidationErrors{{Field: domain.FieldImages, Err: err}}
			}
			uc.logger.Error("CreateReservation: failed to store image %q: %v", upload.Filename, err)
			return nil, fmt.Errorf("%w: failed to store image: %v", ErrInternal, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (uc *UseCase) removeImages(ctx context.Context, paths []string) {
	for _, path := range paths {
		if err := uc.photos.Delete(ctx, path); err != nil {
			uc.logger.Warn("CreateReservation: failed to remove image %s: %v", path, err)
		}
	}
}

func userLabel(userID *int64) string {
	if userID == nil {
		return "guest"
	}
	return fmt.Sprintf("%d", *userID)
}
