package create_appointment

import (
	"errors"
	"net/http"

	"github.com/apptbook/appointment-service/internal/api/handlers"
	"github.com/apptbook/appointment-service/internal/api/middleware"
	createAppointment "github.com/apptbook/appointment-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceNotBookable = "услуга недоступна для записи"
	msgSlotConflict       = "слот пересекается с существующими записями"
	msgClosedDay          = "день закрыт для записей"
	msgOutsideHours       = "слот вне рабочих часов"
	msgBreakTime          = "слот попадает на перерыв"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *createAppointment.ConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /appointments - Slot conflict: user_id=%d, conflicts=%d",
				userID, len(conflictErr.Conflicts))
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Error:     msgSlotConflict,
				Conflicts: conflictErr.Conflicts,
			})

		case errors.Is(err, createAppointment.ErrClosedDay):
			h.logger.Warn("POST /appointments - Day is closed: user_id=%d", userID)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, ReasonResponse{
				Error:  msgClosedDay,
				Reason: "CLOSED_DAY",
			})

		case errors.Is(err, createAppointment.ErrOutsideHours):
			h.logger.Warn("POST /appointments - Outside working hours: user_id=%d", userID)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, ReasonResponse{
				Error:  msgOutsideHours,
				Reason: "OUTSIDE_HOURS",
			})

		case errors.Is(err, createAppointment.ErrBreakTime):
			h.logger.Warn("POST /appointments - Slot on break: user_id=%d", userID)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, ReasonResponse{
				Error:  msgBreakTime,
				Reason: "BREAK_TIME",
			})

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: user_id=%d, services=%v",
				userID, req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotBookable):
			h.logger.Warn("POST /appointments - Service not bookable: user_id=%d, services=%v",
				userID, req.ServiceIDs)
			handlers.RespondBadRequest(w, msgServiceNotBookable)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, user_id=%d",
		result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
