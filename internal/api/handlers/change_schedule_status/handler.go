package change_schedule_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/api/middleware"
	"github.com/m04kA/SMC-TireService/internal/service/schedules"
	"github.com/m04kA/SMC-TireService/internal/service/schedules/models"
)

const (
	msgInvalidScheduleID = "некорректный ID слота расписания"
	msgInvalidRequest    = "некорректный формат запроса"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "слот расписания не найден"
	msgForbidden         = "доступ запрещен"
	msgInvalidStatus     = "некорректный статус"
	msgInvalidTransition = "переход в указанный статус невозможен"
	msgConflict          = "статус слота уже изменен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/schedules/{scheduleId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := handlers.PathID(r, "scheduleId")
	if err != nil {
		h.logger.Warn("PATCH /schedules/{id}/status - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /schedules/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.service.ChangeStatus(r.Context(), actor, scheduleID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound), errors.Is(err, schedules.ErrServicePointNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedules.ErrAccessDenied):
			h.logger.Warn("PATCH /schedules/{id}/status - Access denied: schedule_id=%d, user_id=%d",
				scheduleID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedules.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, schedules.ErrInvalidTransition):
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, schedules.ErrStatusConflict):
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /schedules/{id}/status - Failed to change status: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /schedules/{id}/status - Status changed: schedule_id=%d, status=%s",
		scheduleID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
