package staff

import (
	"context"

	"github.com/apptbook/appointment-service/internal/service/staff/models"
)

type StaffService interface {
	Create(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error)
	List(ctx context.Context, userID int64, onlyActive bool) (*models.StaffListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateStaffRequest) (*models.StaffResponse, error)
	Delete(ctx context.Context, id int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
