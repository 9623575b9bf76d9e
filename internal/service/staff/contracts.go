package staff

import (
	"context"

	"github.com/apptbook/appointment-service/internal/domain"
)

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	Create(ctx context.Context, member *domain.Staff) (*domain.Staff, error)
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	ListByUserID(ctx context.Context, userID int64, onlyActive bool) ([]*domain.Staff, error)
	Update(ctx context.Context, member *domain.Staff) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
