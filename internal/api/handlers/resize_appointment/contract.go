package resize_appointment

import (
	"context"

	resizeAppointment "github.com/apptbook/appointment-service/internal/usecase/resize_appointment"
)

type ResizeAppointmentUseCase interface {
	Execute(ctx context.Context, req *resizeAppointment.Request) (*resizeAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
