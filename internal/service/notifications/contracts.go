package notifications

import (
	"context"

	"github.com/apptbook/appointment-service/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек уведомлений
type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.NotificationSettings, error)
	Upsert(ctx context.Context, settings *domain.NotificationSettings) (*domain.NotificationSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
