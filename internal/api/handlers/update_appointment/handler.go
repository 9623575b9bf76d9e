package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/apptbook/appointment-service/internal/api/handlers"
	"github.com/apptbook/appointment-service/internal/api/middleware"
	updateAppointment "github.com/apptbook/appointment-service/internal/usecase/update_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStartTime     = "некорректный формат времени начала, ожидается RFC3339"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgServiceNotFound      = "услуга не найдена"
	msgServiceNotBookable   = "услуга недоступна для записи"
	msgSlotConflict         = "слот пересекается с существующими записями"
	msgClosedDay            = "день закрыт для записей"
	msgOutsideHours         = "слот вне рабочих часов"
	msgBreakTime            = "слот попадает на перерыв"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *updateAppointment.ConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("PATCH /appointments/{id} - Slot conflict: appointment_id=%d, conflicts=%d",
				appointmentID, len(conflictErr.Conflicts))
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Error:     msgSlotConflict,
				Conflicts: conflictErr.Conflicts,
			})

		case errors.Is(err, updateAppointment.ErrClosedDay):
			h.logger.Warn("PATCH /appointments/{id} - Day is closed: appointment_id=%d", appointmentID)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, ReasonResponse{
				Error:  msgClosedDay,
				Reason: "CLOSED_DAY",
			})

		case errors.Is(err, updateAppointment.ErrOutsideHours):
			h.logger.Warn("PATCH /appointments/{id} - Outside working hours: appointment_id=%d", appointmentID)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, ReasonResponse{
				Error:  msgOutsideHours,
				Reason: "OUTSIDE_HOURS",
			})

		case errors.Is(err, updateAppointment.ErrBreakTime):
			h.logger.Warn("PATCH /appointments/{id} - Slot on break: appointment_id=%d", appointmentID)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, ReasonResponse{
				Error:  msgBreakTime,
				Reason: "BREAK_TIME",
			})

		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id} - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateAppointment.ErrServiceNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Service not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateAppointment.ErrServiceNotBookable):
			h.logger.Warn("PATCH /appointments/{id} - Service not bookable: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgServiceNotBookable)

		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id} - Invalid input: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /appointments/{id} - Failed to update appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Appointment updated successfully: appointment_id=%d, user_id=%d",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
