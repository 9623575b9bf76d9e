package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/apptbook/appointment-service/internal/domain"
	catalogRepo "github.com/apptbook/appointment-service/internal/infra/storage/catalog"
	"github.com/apptbook/appointment-service/internal/service/catalog/models"
)

// Service сервис для работы с каталогом услуг
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога услуг
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Create создает новую услугу
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service %q for user=%d", req.Name, req.UserID)

	service := req.ToDomainService()
	if err := validateService(service); err != nil {
		s.logger.Warn("Create: invalid service for user=%d: %v", req.UserID, err)
		return nil, err
	}

	created, err := s.catalogRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("Create: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d for user=%d", created.ID, req.UserID)
	return models.FromDomainService(created), nil
}

// GetByID получает услугу по ID
// Услуга доступна только владельцу аккаунта
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d for user=%d", id, userID)

	service, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainService(service), nil
}

// List получает услуги аккаунта
// При onlyActive=true возвращаются только услуги, доступные для записи
func (s *Service) List(ctx context.Context, userID int64, onlyActive bool) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services for user=%d, onlyActive=%v", userID, onlyActive)

	services, err := s.catalogRepo.ListByUserID(ctx, userID, onlyActive)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d services for user=%d", len(services), userID)
	return models.FromDomainServiceList(services), nil
}

// Update обновляет услугу
// Nil-поля запроса остаются без изменений
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d by user=%d", id, req.UserID)

	service, err := s.getOwned(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}

	applyUpdate(service, req)

	if err := validateService(service); err != nil {
		s.logger.Warn("Update: invalid service id=%d: %v", id, err)
		return nil, err
	}

	if err := s.catalogRepo.Update(ctx, service); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%d", id)
	return models.FromDomainService(service), nil
}

// Delete удаляет услугу
// Прошедшие записи сохраняют денормализованные данные услуги
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: deleting service id=%d by user=%d", id, userID)

	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}

	if err := s.catalogRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted service id=%d", id)
	return nil
}

// Вспомогательные методы

// getOwned получает услугу и проверяет, что она принадлежит аккаунту
func (s *Service) getOwned(ctx context.Context, id int64, userID int64) (*domain.Service, error) {
	service, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if service.UserID != userID {
		s.logger.Warn("access denied for user=%d to service id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return service, nil
}

func applyUpdate(service *domain.Service, req *models.UpdateServiceRequest) {
	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = req.Description
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Color != nil {
		service.Color = req.Color
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	if req.Category != nil {
		service.Category = req.Category
	}
}

func validateService(service *domain.Service) error {
	if strings.TrimSpace(service.Name) == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if len(service.Name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: service name too long", ErrInvalidInput)
	}
	if service.DurationMinutes < domain.MinAppointmentDurationMinutes {
		return fmt.Errorf("%w: duration must be at least %d minutes", ErrInvalidInput, domain.MinAppointmentDurationMinutes)
	}
	if service.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
