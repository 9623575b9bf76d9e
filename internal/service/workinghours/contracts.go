package workinghours

import (
	"context"

	"github.com/apptbook/appointment-service/internal/domain"
)

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]domain.WorkingHoursRule, error)
	ReplaceAll(ctx context.Context, userID int64, rules []domain.WorkingHoursRule) ([]domain.WorkingHoursRule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
