package get_recent_customers

import (
	"context"

	"github.com/apptbook/appointment-service/internal/service/appointments/models"
)

type AppointmentService interface {
	RecentCustomers(ctx context.Context, userID int64) (*models.RecentCustomersResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
