package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/apptbook/appointment-service/internal/domain"
	settingsRepo "github.com/apptbook/appointment-service/internal/infra/storage/notificationsettings"
	"github.com/apptbook/appointment-service/internal/service/notifications/models"
)

// Service сервис для работы с настройками уведомлений
// Сама отправка напоминаний выполняется вне этого сервиса
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек уведомлений
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get возвращает настройки уведомлений аккаунта
// Для аккаунта без настроек возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context, userID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching notification settings for user=%d", userID)

	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		return models.FromDomainSettings(domain.DefaultNotificationSettings(userID)), nil
	}
	if err != nil {
		s.logger.Error("Get: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// Update обновляет настройки уведомлений аккаунта
// Незаполненные поля запроса сохраняют текущие значения
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating notification settings for user=%d", req.UserID)

	settings, err := s.settingsRepo.GetByUserID(ctx, req.UserID)
	if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		settings = domain.DefaultNotificationSettings(req.UserID)
	} else if err != nil {
		s.logger.Error("Update: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.RemindersEnabled != nil {
		settings.RemindersEnabled = *req.RemindersEnabled
	}
	if req.ReminderLeadMinutes != nil {
		if *req.ReminderLeadMinutes <= 0 {
			s.logger.Warn("Update: invalid reminder lead %d for user=%d", *req.ReminderLeadMinutes, req.UserID)
			return nil, fmt.Errorf("%w: reminder lead must be positive", ErrInvalidInput)
		}
		settings.ReminderLeadMinutes = *req.ReminderLeadMinutes
	}
	if req.EmailEnabled != nil {
		settings.EmailEnabled = *req.EmailEnabled
	}
	if req.SMSEnabled != nil {
		settings.SMSEnabled = *req.SMSEnabled
	}

	saved, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("Update: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated notification settings for user=%d", req.UserID)
	return models.FromDomainSettings(saved), nil
}
