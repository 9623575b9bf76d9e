package reschedule_appointment

import (
	"context"
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, appointment *domain.Appointment) error
}

// WorkingHoursProvider интерфейс получения правил рабочих часов аккаунта
type WorkingHoursProvider interface {
	GetRules(ctx context.Context, userID int64) ([]domain.WorkingHoursRule, error)
}

// ScheduleCache интерфейс кеша дневных расписаний
type ScheduleCache interface {
	InvalidateDays(ctx context.Context, userID int64, dates ...time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
