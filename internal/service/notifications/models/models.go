package models

import (
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек уведомлений
// Nil-поля остаются без изменений
type UpdateSettingsRequest struct {
	UserID              int64 `json:"userId"`
	RemindersEnabled    *bool `json:"remindersEnabled,omitempty"`
	ReminderLeadMinutes *int  `json:"reminderLeadMinutes,omitempty"`
	EmailEnabled        *bool `json:"emailEnabled,omitempty"`
	SMSEnabled          *bool `json:"smsEnabled,omitempty"`
}

// SettingsResponse ответ с настройками уведомлений
type SettingsResponse struct {
	RemindersEnabled    bool      `json:"remindersEnabled"`
	ReminderLeadMinutes int       `json:"reminderLeadMinutes"`
	EmailEnabled        bool      `json:"emailEnabled"`
	SMSEnabled          bool      `json:"smsEnabled"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.NotificationSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	return &SettingsResponse{
		RemindersEnabled:    s.RemindersEnabled,
		ReminderLeadMinutes: s.ReminderLeadMinutes,
		EmailEnabled:        s.EmailEnabled,
		SMSEnabled:          s.SMSEnabled,
		UpdatedAt:           s.UpdatedAt,
	}
}
