package remove_service_link

import "context"

type AppointmentService interface {
	RemoveServiceLink(ctx context.Context, linkID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
