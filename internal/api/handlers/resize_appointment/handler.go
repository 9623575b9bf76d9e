package resize_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/apptbook/appointment-service/internal/api/handlers"
	"github.com/apptbook/appointment-service/internal/api/middleware"
	resizeAppointment "github.com/apptbook/appointment-service/internal/usecase/resize_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgSlotConflict         = "слот пересекается с существующими записями"
	msgClosedDay            = "день закрыт для записей"
	msgOutsideHours         = "слот вне рабочих часов"
	msgBreakTime            = "слот попадает на перерыв"
)

type Handler struct {
	useCase ResizeAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase ResizeAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/resize
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/resize - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/resize - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ResizeAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/resize - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, appointmentID))
	if err != nil {
		var conflictErr *resizeAppointment.ConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("PATCH /appointments/{id}/resize - Slot conflict: appointment_id=%d, conflicts=%d",
				appointmentID, len(conflictErr.Conflicts))
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Error:     msgSlotConflict,
				Conflicts: conflictErr.Conflicts,
			})

		case errors.Is(err, resizeAppointment.ErrClosedDay):
			h.logger.Warn("PATCH /appointments/{id}/resize - Day is closed: appointment_id=%d", appointmentID)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, ReasonResponse{
				Error:  msgClosedDay,
				Reason: "CLOSED_DAY",
			})

		case errors.Is(err, resizeAppointment.ErrOutsideHours):
			h.logger.Warn("PATCH /appointments/{id}/resize - Outside working hours: appointment_id=%d", appointmentID)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, ReasonResponse{
				Error:  msgOutsideHours,
				Reason: "OUTSIDE_HOURS",
			})

		case errors.Is(err, resizeAppointment.ErrBreakTime):
			h.logger.Warn("PATCH /appointments/{id}/resize - Slot on break: appointment_id=%d", appointmentID)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, ReasonResponse{
				Error:  msgBreakTime,
				Reason: "BREAK_TIME",
			})

		case errors.Is(err, resizeAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/resize - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, resizeAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/resize - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, resizeAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/resize - Invalid input: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /appointments/{id}/resize - Failed to resize: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/resize - Appointment resized successfully: appointment_id=%d, duration=%d, user_id=%d",
		appointmentID, result.DurationMinutes, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
