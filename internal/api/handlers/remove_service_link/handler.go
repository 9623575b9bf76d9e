package remove_service_link

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/apptbook/appointment-service/internal/api/handlers"
	"github.com/apptbook/appointment-service/internal/api/middleware"
	"github.com/apptbook/appointment-service/internal/service/appointments"
)

const (
	msgInvalidLinkID = "некорректный ID связи услуги"
	msgLinkNotFound  = "связь услуги не найдена"
	msgNotFound      = "запись не найдена"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
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

// Handle DELETE /api/v1/appointments/services/{linkId}
// Если запись теряет последнюю услугу, она удаляется целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	linkID, err := strconv.ParseInt(vars["linkId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /appointments/services/{id} - Invalid link ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLinkID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /appointments/services/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.RemoveServiceLink(r.Context(), linkID, userID); err != nil {
		switch {
		case errors.Is(err, appointments.ErrServiceLinkNotFound):
			h.logger.Warn("DELETE /appointments/services/{id} - Link not found: link_id=%d", linkID)
			handlers.RespondNotFound(w, msgLinkNotFound)

		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/services/{id} - Appointment not found: link_id=%d", linkID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("DELETE /appointments/services/{id} - Access denied: link_id=%d, user_id=%d",
				linkID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /appointments/services/{id} - Failed to remove link: link_id=%d, error=%v",
				linkID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/services/{id} - Link removed successfully: link_id=%d, user_id=%d",
		linkID, userID)
	w.WriteHeader(http.StatusNoContent)
}
