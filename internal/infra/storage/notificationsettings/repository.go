package notificationsettings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/apptbook/appointment-service/internal/domain"
	"github.com/apptbook/appointment-service/pkg/dbmetrics"
	"github.com/apptbook/appointment-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с настройками уведомлений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек уведомлений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUserID получает настройки уведомлений аккаунта
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.NotificationSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"reminders_enabled",
		"reminder_lead_minutes",
		"email_enabled",
		"sms_enabled",
		"created_at",
		"updated_at",
	).
		From("notification_settings").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.NotificationSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&settings.UserID,
		&settings.RemindersEnabled,
		&settings.ReminderLeadMinutes,
		&settings.EmailEnabled,
		&settings.SMSEnabled,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan settings: %v", ErrScanRow, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Upsert создает или обновляет настройки уведомлений аккаунта
// На один аккаунт существует не более одной строки настроек
func (r *Repository) Upsert(ctx context.Context, settings *domain.NotificationSettings) (*domain.NotificationSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notification_settings").
		Columns(
			"user_id",
			"reminders_enabled",
			"reminder_lead_minutes",
			"email_enabled",
			"sms_enabled",
		).
		Values(
			settings.UserID,
			settings.RemindersEnabled,
			settings.ReminderLeadMinutes,
			settings.EmailEnabled,
			settings.SMSEnabled,
		).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			reminders_enabled = EXCLUDED.reminders_enabled,
			reminder_lead_minutes = EXCLUDED.reminder_lead_minutes,
			email_enabled = EXCLUDED.email_enabled,
			sms_enabled = EXCLUDED.sms_enabled,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}
