package update_time_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/api/middleware"
	"github.com/m04kA/SMC-TireService/internal/service/timeslots"
	"github.com/m04kA/SMC-TireService/internal/service/timeslots/models"
)

const (
	msgInvalidSlotID  = "некорректный ID слота"
	msgInvalidRequest = "некорректный формат запроса"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "слот не найден"
	msgForbidden      = "доступ запрещен"
	msgInvalidInput   = "некорректные данные слота"
)

type Handler struct {
	service TimeSlotService
	logger  Logger
}

func NewHandler(service TimeSlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/time-slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathID(r, "slotId")
	if err != nil {
		h.logger.Warn("PATCH /time-slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateTimeSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /time-slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.service.Update(r.Context(), actor, slotID, &req)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrTimeSlotNotFound), errors.Is(err, timeslots.ErrServicePointNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, timeslots.ErrAccessDenied):
			h.logger.Warn("PATCH /time-slots/{id} - Access denied: slot_id=%d, user_id=%d", slotID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, timeslots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /time-slots/{id} - Failed to update slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /time-slots/{id} - Slot updated: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
