package working_hours

import (
	"context"

	"github.com/apptbook/appointment-service/internal/service/workinghours/models"
)

type WorkingHoursService interface {
	Get(ctx context.Context, userID int64) (*models.WorkingHoursResponse, error)
	Put(ctx context.Context, req *models.PutWorkingHoursRequest) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
