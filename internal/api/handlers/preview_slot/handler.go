package preview_slot

import (
	"errors"
	"net/http"

	"github.com/apptbook/appointment-service/internal/api/handlers"
	"github.com/apptbook/appointment-service/internal/api/middleware"
	previewSlot "github.com/apptbook/appointment-service/internal/usecase/preview_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCellStart   = "некорректный формат времени ячейки, ожидается RFC3339"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	useCase PreviewSlotUseCase
	logger  Logger
}

func NewHandler(useCase PreviewSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/preview
// Предпросмотр при перетаскивании: привязка к четверти часа и проверка доступности
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/preview - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PreviewSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/preview - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments/preview - Failed to parse cell start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCellStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, previewSlot.ErrInvalidInput):
			h.logger.Warn("POST /appointments/preview - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments/preview - Failed to preview slot: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
