package generate_schedules

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/api/middleware"
	generateSchedules "github.com/m04kA/SMC-TireService/internal/usecase/generate_schedules"
)

const (
	msgInvalidServicePointID = "некорректный ID сервисной точки"
	msgInvalidRequest        = "некорректный формат запроса"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgNotFound              = "сервисная точка не найдена"
	msgForbidden             = "доступ запрещен"
	msgInvalidDateRange      = "некорректный период генерации"
	msgInvalidSlotDuration   = "длительность слота должна быть от 10 до 180 минут"
	msgInvalidInput          = "некорректные данные для генерации расписания"
)

type Handler struct {
	useCase GenerateSchedulesUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSchedulesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/service-points/{id}/schedules/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	servicePointID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("POST /service-points/{id}/schedules/generate - Invalid service point ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServicePointID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req GenerateSchedulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /service-points/{id}/schedules/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, servicePointID)
	if err != nil {
		h.logger.Warn("POST /service-points/{id}/schedules/generate - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSchedules.ErrServicePointNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, generateSchedules.ErrAccessDenied):
			h.logger.Warn("POST /service-points/{id}/schedules/generate - Access denied: service_point_id=%d, user_id=%d",
				servicePointID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, generateSchedules.ErrInvalidDateRange):
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, generateSchedules.ErrInvalidSlotDuration):
			handlers.RespondBadRequest(w, msgInvalidSlotDuration)

		case errors.Is(err, generateSchedules.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /service-points/{id}/schedules/generate - Failed to generate schedules: service_point_id=%d, error=%v",
				servicePointID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /service-points/{id}/schedules/generate - Schedules generated: service_point_id=%d, generated=%d, inserted=%d",
		servicePointID, result.Generated, result.Inserted)
	handlers.RespondJSON(w, http.StatusOK, result)
}
