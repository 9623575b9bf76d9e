package staff

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/apptbook/appointment-service/internal/api/handlers"
	"github.com/apptbook/appointment-service/internal/api/middleware"
	staffService "github.com/apptbook/appointment-service/internal/service/staff"
	"github.com/apptbook/appointment-service/internal/service/staff/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgInvalidStaff       = "некорректные данные сотрудника"
	msgNotFound           = "сотрудник не найден"
	msgForbidden          = "доступ запрещен"
)

// Handler обрабатывает CRUD сотрудников
type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/settings/staff
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /settings/staff - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	onlyActive := r.URL.Query().Get("onlyActive") == "true"

	result, err := h.service.List(r.Context(), userID, onlyActive)
	if err != nil {
		h.logger.Error("GET /settings/staff - Failed to list staff: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /settings/staff - Staff listed successfully: user_id=%d, count=%d",
		userID, len(result.Staff))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreate POST /api/v1/settings/staff
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /settings/staff - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /settings/staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, staffService.ErrInvalidInput):
			h.logger.Warn("POST /settings/staff - Invalid staff: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidStaff)

		default:
			h.logger.Error("POST /settings/staff - Failed to create staff: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /settings/staff - Staff created successfully: staff_id=%d, user_id=%d",
		result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUpdate PATCH /api/v1/settings/staff/{staffId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	staffID, ok := h.pathID(w, r, "PATCH")
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /settings/staff/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /settings/staff/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Update(r.Context(), staffID, &req)
	if err != nil {
		switch {
		case errors.Is(err, staffService.ErrStaffNotFound):
			h.logger.Warn("PATCH /settings/staff/{id} - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, staffService.ErrAccessDenied):
			h.logger.Warn("PATCH /settings/staff/{id} - Access denied: staff_id=%d, user_id=%d",
				staffID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, staffService.ErrInvalidInput):
			h.logger.Warn("PATCH /settings/staff/{id} - Invalid staff: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidStaff)

		default:
			h.logger.Error("PATCH /settings/staff/{id} - Failed to update staff: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /settings/staff/{id} - Staff updated successfully: staff_id=%d, user_id=%d",
		staffID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/settings/staff/{staffId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	staffID, ok := h.pathID(w, r, "DELETE")
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /settings/staff/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), staffID, userID); err != nil {
		switch {
		case errors.Is(err, staffService.ErrStaffNotFound):
			h.logger.Warn("DELETE /settings/staff/{id} - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, staffService.ErrAccessDenied):
			h.logger.Warn("DELETE /settings/staff/{id} - Access denied: staff_id=%d, user_id=%d",
				staffID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /settings/staff/{id} - Failed to delete staff: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /settings/staff/{id} - Staff deleted successfully: staff_id=%d, user_id=%d",
		staffID, userID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, method string) (int64, bool) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s /settings/staff/{id} - Invalid staff ID: %v", method, err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return 0, false
	}
	return staffID, true
}
