package catalog

import (
	"context"
	"errors"
	"fmt"

	menuRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/servicemenu"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/catalog/models"
)

// Service справочники мастерской: меню услуг, выходные, временные слоты, рабочие дни
type Service struct {
	menuRepo        ServiceMenuRepository
	reservationRepo ReservationRepository
	calendarRepo    CalendarRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса справочников
func NewService(
	menuRepo ServiceMenuRepository,
	reservationRepo ReservationRepository,
	calendarRepo CalendarRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		menuRepo:        menuRepo,
		reservationRepo: reservationRepo,
		calendarRepo:    calendarRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// ListServiceMenus список меню. activeOnly=true для клиентов.
func (s *Service) ListServiceMenus(ctx context.Context, activeOnly bool) (*models.ServiceMenuListResponse, error) {
	menus, err := s.menuRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("ListServiceMenus: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServiceMenus - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceMenuList(menus), nil
}

// CreateServiceMenu создает пункт меню
func (s *Service) CreateServiceMenu(ctx context.Context, req *models.ServiceMenuRequest) (*models.ServiceMenuResponse, error) {
	s.logger.Info("CreateServiceMenu: name=%q duration=%d price=%d", req.Name, req.EstimatedDuration, req.PriceEstimate)

	menu := req.ToDomain()
	if err := validateServiceMenu(menu); err != nil {
		s.logger.Warn("CreateServiceMenu: validation failed: %v", err)
		return nil, err
	}

	created, err := s.menuRepo.Create(ctx, menu)
	if err != nil {
		if errors.Is(err, menuRepo.ErrDuplicateName) {
			s.logger.Warn("CreateServiceMenu: name %q already exists", menu.Name)
			return nil, fmt.Errorf("%w: service menu %q", ErrAlreadyExists, menu.Name)
		}
		s.logger.Error("CreateServiceMenu: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateServiceMenu - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateServiceMenu: successfully created menu id=%d", created.ID)
	return models.FromDomainServiceMenu(created), nil
}

// UpdateServiceMenu редактирует пункт меню
func (s *Service) UpdateServiceMenu(ctx context.Context, id int64, req *models.ServiceMenuRequest) (*models.ServiceMenuResponse, error) {
	s.logger.Info("UpdateServiceMenu: id=%d name=%q", id, req.Name)

	menu := req.ToDomain()
	menu.ID = id
	if err := validateServiceMenu(menu); err != nil {
		s.logger.Warn("UpdateServiceMenu: validation failed: %v", err)
		return nil, err
	}

	if err := s.menuRepo.Update(ctx, menu); err != nil {
		switch {
		case errors.Is(err, menuRepo.ErrServiceMenuNotFound):
			s.logger.Warn("UpdateServiceMenu: menu id=%d not found", id)
			return nil, ErrServiceMenuNotFound
		case errors.Is(err, menuRepo.ErrDuplicateName):
			return nil, fmt.Errorf("%w: service menu %q", ErrAlreadyExists, menu.Name)
		}
		s.logger.Error("UpdateServiceMenu: repository error for menu id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateServiceMenu - repository error: %v", ErrInternal, err)
	}

	updated, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("UpdateServiceMenu: failed to reload menu id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateServiceMenu - reload: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateServiceMenu: successfully updated menu id=%d", id)
	return models.FromDomainServiceMenu(updated), nil
}

// DeleteServiceMenu удаляет пункт меню. Бронирования с этим меню сохраняются без ссылки на него.
func (s *Service) DeleteServiceMenu(ctx context.Context, id int64) error {
	s.logger.Info("DeleteServiceMenu: id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.reservationRepo.DetachServiceMenu(txCtx, id); err != nil {
			return fmt.Errorf("%w: DeleteServiceMenu - detach reservations: %v", ErrInternal, err)
		}
		if err := s.menuRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, menuRepo.ErrServiceMenuNotFound) {
				return ErrServiceMenuNotFound
			}
			return fmt.Errorf("%w: DeleteServiceMenu - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrServiceMenuNotFound) {
			s.logger.Warn("DeleteServiceMenu: menu id=%d not found", id)
		} else {
			s.logger.Error("DeleteServiceMenu: menu id=%d: %v", id, err)
		}
		return err
	}

	s.logger.Info("DeleteServiceMenu: successfully deleted menu id=%d", id)
	return nil
}
