package get_appointment_dates

import (
	"errors"
	"net/http"
	"time"

	"github.com/apptbook/appointment-service/internal/api/handlers"
	"github.com/apptbook/appointment-service/internal/api/middleware"
	"github.com/apptbook/appointment-service/internal/domain"
	"github.com/apptbook/appointment-service/internal/service/appointments"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod = "некорректный период, конец раньше начала"
	msgMissingPeriod = "параметры startDate и endDate обязательны"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/dates?startDate=&endDate=
// Возвращает даты периода, на которые есть активные записи (точки в календаре)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments/dates - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	startDate := query.Get("startDate")
	endDate := query.Get("endDate")
	if startDate == "" || endDate == "" {
		h.logger.Warn("GET /appointments/dates - Missing period: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	from, err := time.Parse(domain.DateFormat, startDate)
	if err != nil {
		h.logger.Warn("GET /appointments/dates - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := time.Parse(domain.DateFormat, endDate)
	if err != nil {
		h.logger.Warn("GET /appointments/dates - Invalid endDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.AppointmentDates(r.Context(), userID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments/dates - Invalid period: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /appointments/dates - Failed to get dates: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/dates - Dates retrieved successfully: user_id=%d, count=%d",
		userID, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
