package working_hours

import (
	"errors"
	"net/http"

	"github.com/apptbook/appointment-service/internal/api/handlers"
	"github.com/apptbook/appointment-service/internal/api/middleware"
	"github.com/apptbook/appointment-service/internal/service/workinghours"
	"github.com/apptbook/appointment-service/internal/service/workinghours/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDay         = "некорректный или продублированный день недели"
	msgInvalidTimeRange   = "некорректное окно рабочих часов"
	msgInvalidBreak       = "перерыв должен помещаться в рабочие часы"
	msgInvalidRules       = "некорректные правила рабочих часов"
)

// Handler обрабатывает запросы настроек рабочих часов
// GET отдаёт текущие правила (при первом обращении сохраняет значения по умолчанию),
// PUT заменяет все 7 правил, POST инициализирует расписание значениями по умолчанию
type Handler struct {
	service WorkingHoursService
	logger  Logger
}

func NewHandler(service WorkingHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleGet GET /api/v1/settings/working-hours
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /settings/working-hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /settings/working-hours - Failed to get rules: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /settings/working-hours - Rules retrieved successfully: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandlePut PUT /api/v1/settings/working-hours
func (h *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /settings/working-hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.PutWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Put(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, workinghours.ErrInvalidDay):
			h.logger.Warn("PUT /settings/working-hours - Invalid day: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidDay)

		case errors.Is(err, workinghours.ErrInvalidTimeRange):
			h.logger.Warn("PUT /settings/working-hours - Invalid time range: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, workinghours.ErrInvalidBreak):
			h.logger.Warn("PUT /settings/working-hours - Invalid break: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidBreak)

		case errors.Is(err, workinghours.ErrInvalidInput):
			h.logger.Warn("PUT /settings/working-hours - Invalid rules: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRules)

		default:
			h.logger.Error("PUT /settings/working-hours - Failed to put rules: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /settings/working-hours - Rules replaced successfully: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleSeedDefaults POST /api/v1/settings/working-hours
// Инициализирует расписание значениями по умолчанию, если правил ещё нет
func (h *Handler) HandleSeedDefaults(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /settings/working-hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("POST /settings/working-hours - Failed to seed defaults: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /settings/working-hours - Defaults seeded successfully: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
