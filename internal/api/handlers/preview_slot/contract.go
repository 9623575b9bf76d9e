package preview_slot

import (
	"context"

	previewSlot "github.com/apptbook/appointment-service/internal/usecase/preview_slot"
)

type PreviewSlotUseCase interface {
	Execute(ctx context.Context, req *previewSlot.Request) (*previewSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
