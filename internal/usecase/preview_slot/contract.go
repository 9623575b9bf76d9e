package preview_slot

import (
	"context"

	"github.com/apptbook/appointment-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// WorkingHoursProvider интерфейс получения правил рабочих часов аккаунта
type WorkingHoursProvider interface {
	GetRules(ctx context.Context, userID int64) ([]domain.WorkingHoursRule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
