package domain

import "time"

// NotificationSettings настройки напоминаний аккаунта
// Сама отправка уведомлений выполняется вне этого сервиса
type NotificationSettings struct {
	ID                  int64
	UserID              int64
	RemindersEnabled    bool
	ReminderLeadMinutes int
	EmailEnabled        bool
	SMSEnabled          bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DefaultNotificationSettings настройки уведомлений по умолчанию
func DefaultNotificationSettings(userID int64) *NotificationSettings {
	return &NotificationSettings{
		UserID:              userID,
		RemindersEnabled:    true,
		ReminderLeadMinutes: 60,
		EmailEnabled:        true,
		SMSEnabled:          false,
	}
}
