package notifications

import (
	"context"

	"github.com/apptbook/appointment-service/internal/service/notifications/models"
)

type NotificationSettingsService interface {
	Get(ctx context.Context, userID int64) (*models.SettingsResponse, error)
	Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
