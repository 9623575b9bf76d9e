package get_recent_customers

import (
	"net/http"

	"github.com/apptbook/appointment-service/internal/api/handlers"
	"github.com/apptbook/appointment-service/internal/api/middleware"
)

const msgMissingUserID = "отсутствует ID пользователя"

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

// Handle GET /api/v1/appointments/recent-customers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments/recent-customers - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.RecentCustomers(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /appointments/recent-customers - Failed to get customers: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/recent-customers - Customers retrieved successfully: user_id=%d, count=%d",
		userID, len(result.Customers))
	handlers.RespondJSON(w, http.StatusOK, result)
}
