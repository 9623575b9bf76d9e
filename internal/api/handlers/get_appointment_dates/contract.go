package get_appointment_dates

import (
	"context"
	"time"

	"github.com/apptbook/appointment-service/internal/service/appointments/models"
)

type AppointmentService interface {
	AppointmentDates(ctx context.Context, userID int64, from, to time.Time) (*models.AppointmentDatesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
