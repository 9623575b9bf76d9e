package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/apptbook/appointment-service/internal/domain"
	staffRepo "github.com/apptbook/appointment-service/internal/infra/storage/staff"
	"github.com/apptbook/appointment-service/internal/service/staff/models"
)

// Service сервис для работы с сотрудниками аккаунта
type Service struct {
	staffRepo StaffRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(staffRepo StaffRepository, logger Logger) *Service {
	return &Service{
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// Create создает нового сотрудника
func (s *Service) Create(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("Create: creating staff member %q for user=%d", req.Name, req.UserID)

	if strings.TrimSpace(req.Name) == "" {
		s.logger.Warn("Create: empty staff name for user=%d", req.UserID)
		return nil, fmt.Errorf("%w: staff name is required", ErrInvalidInput)
	}

	created, err := s.staffRepo.Create(ctx, req.ToDomainStaff())
	if err != nil {
		s.logger.Error("Create: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created staff member id=%d for user=%d", created.ID, req.UserID)
	return models.FromDomainStaff(created), nil
}

// GetByID получает сотрудника по ID
// Сотрудник доступен только владельцу аккаунта
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.StaffResponse, error) {
	s.logger.Info("GetByID: fetching staff member id=%d for user=%d", id, userID)

	member, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainStaff(member), nil
}

// List получает сотрудников аккаунта
func (s *Service) List(ctx context.Context, userID int64, onlyActive bool) (*models.StaffListResponse, error) {
	s.logger.Info("List: fetching staff for user=%d, onlyActive=%v", userID, onlyActive)

	members, err := s.staffRepo.ListByUserID(ctx, userID, onlyActive)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d staff members for user=%d", len(members), userID)
	return models.FromDomainStaffList(members), nil
}

// Update обновляет данные сотрудника
// Nil-поля запроса остаются без изменений
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("Update: updating staff member id=%d by user=%d", id, req.UserID)

	member, err := s.getOwned(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}

	applyUpdate(member, req)

	if strings.TrimSpace(member.Name) == "" {
		s.logger.Warn("Update: empty staff name for member id=%d", id)
		return nil, fmt.Errorf("%w: staff name is required", ErrInvalidInput)
	}

	if err := s.staffRepo.Update(ctx, member); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("Update: repository error for staff member id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated staff member id=%d", id)
	return models.FromDomainStaff(member), nil
}

// Delete удаляет сотрудника
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: deleting staff member id=%d by user=%d", id, userID)

	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}

	if err := s.staffRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return ErrStaffNotFound
		}
		s.logger.Error("Delete: repository error for staff member id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted staff member id=%d", id)
	return nil
}

// getOwned получает сотрудника и проверяет, что он принадлежит аккаунту
func (s *Service) getOwned(ctx context.Context, id int64, userID int64) (*domain.Staff, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("staff member id=%d not found", id)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("repository error for staff member id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if member.UserID != userID {
		s.logger.Warn("access denied for user=%d to staff member id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return member, nil
}

func applyUpdate(member *domain.Staff, req *models.UpdateStaffRequest) {
	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Email != nil {
		member.Email = req.Email
	}
	if req.Phone != nil {
		member.Phone = req.Phone
	}
	if req.Title != nil {
		member.Title = *req.Title
	}
	if req.Specialties != nil {
		member.Specialties = *req.Specialties
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}
	if req.ImageURL != nil {
		member.ImageURL = req.ImageURL
	}
	if req.Bio != nil {
		member.Bio = req.Bio
	}
}
