package appointments

import (
	"context"
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Delete(ctx context.Context, id int64) error
	GetServiceLink(ctx context.Context, linkID int64) (*domain.AppointmentService, error)
	DeleteServiceLink(ctx context.Context, linkID int64) (int64, error)
	RecentCustomers(ctx context.Context, userID int64, limit uint64) ([]domain.RecentCustomer, error)
	AppointmentDates(ctx context.Context, userID int64, from, to time.Time) ([]time.Time, error)
}

// ScheduleCache интерфейс кеша дневных расписаний
type ScheduleCache interface {
	GetDay(ctx context.Context, userID int64, date time.Time) ([]*domain.Appointment, error)
	SetDay(ctx context.Context, userID int64, date time.Time, appointments []*domain.Appointment) error
	InvalidateDay(ctx context.Context, userID int64, date time.Time) error
	InvalidateDays(ctx context.Context, userID int64, dates ...time.Time) error
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
