package generate_time_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/api/middleware"
	generateTimeSlots "github.com/m04kA/SMC-TireService/internal/usecase/generate_time_slots"
)

const (
	msgInvalidServicePointID = "некорректный ID сервисной точки"
	msgInvalidRequest        = "некорректный формат запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgNotFound              = "сервисная точка не найдена"
	msgForbidden             = "доступ запрещен"
	msgInvalidSlotDuration   = "длительность слота должна быть от 10 до 180 минут"
	msgInvalidInput          = "некорректные данные для генерации слотов"
)

type Handler struct {
	useCase GenerateTimeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateTimeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/service-points/{id}/time-slots/generate
// Перегенерирует недельный шаблон слотов по рабочим часам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	servicePointID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("POST /service-points/{id}/time-slots/generate - Invalid service point ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServicePointID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело опционально
	var req GenerateTimeSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /service-points/{id}/time-slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, servicePointID))
	if err != nil {
		switch {
		case errors.Is(err, generateTimeSlots.ErrServicePointNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, generateTimeSlots.ErrAccessDenied):
			h.logger.Warn("POST /service-points/{id}/time-slots/generate - Access denied: service_point_id=%d, user_id=%d",
				servicePointID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, generateTimeSlots.ErrInvalidSlotDuration):
			handlers.RespondBadRequest(w, msgInvalidSlotDuration)

		case errors.Is(err, generateTimeSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			// Дни до ошибки уже перегенерированы, результат только логируем
			if result != nil {
				h.logger.Error("POST /service-points/{id}/time-slots/generate - Partial generation: service_point_id=%d, days_done=%d, error=%v",
					servicePointID, len(result.Days), err)
			} else {
				h.logger.Error("POST /service-points/{id}/time-slots/generate - Failed to generate slots: service_point_id=%d, error=%v",
					servicePointID, err)
			}
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /service-points/{id}/time-slots/generate - Slots generated: service_point_id=%d, total=%d",
		servicePointID, result.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, result)
}
