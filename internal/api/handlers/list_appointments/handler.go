package list_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/apptbook/appointment-service/internal/api/handlers"
	"github.com/apptbook/appointment-service/internal/api/middleware"
	"github.com/apptbook/appointment-service/internal/domain"
	"github.com/apptbook/appointment-service/internal/service/appointments"
	"github.com/apptbook/appointment-service/internal/service/appointments/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter = "некорректные параметры фильтра"
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

// Handle GET /api/v1/appointments?date=|startDate=&endDate=&status=&includeInactive=
// Параметр date задаёт один день и эквивалентен startDate=endDate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.ListAppointmentsRequest{UserID: userID}
	query := r.URL.Query()

	if date := query.Get("date"); date != "" {
		day, err := time.Parse(domain.DateFormat, date)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &day
		req.EndDate = &day
	} else {
		if startDate := query.Get("startDate"); startDate != "" {
			from, err := time.Parse(domain.DateFormat, startDate)
			if err != nil {
				h.logger.Warn("GET /appointments - Invalid startDate: %v", err)
				handlers.RespondBadRequest(w, msgInvalidDate)
				return
			}
			req.StartDate = &from
		}
		if endDate := query.Get("endDate"); endDate != "" {
			to, err := time.Parse(domain.DateFormat, endDate)
			if err != nil {
				h.logger.Warn("GET /appointments - Invalid endDate: %v", err)
				handlers.RespondBadRequest(w, msgInvalidDate)
				return
			}
			req.EndDate = &to
		}
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid filter: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments listed successfully: user_id=%d, count=%d",
		userID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
