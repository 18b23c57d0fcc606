package update_service_point

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/api/middleware"
	"github.com/m04kA/SMC-TireService/internal/service/servicepoints"
	"github.com/m04kA/SMC-TireService/internal/service/servicepoints/models"
)

const (
	msgInvalidServicePointID = "некорректный ID сервисной точки"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgNotFound              = "сервисная точка не найдена"
	msgForbidden             = "доступ запрещен"
	msgInvalidData           = "некорректные данные сервисной точки"
	msgInvalidWorkingHours   = "некорректные рабочие часы"
)

type Handler struct {
	service ServicePointService
	logger  Logger
}

func NewHandler(service ServicePointService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/service-points/{id}
// Частичное обновление: передаются только изменяемые поля
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	servicePointID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /service-points/{id} - Invalid service point ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServicePointID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateServicePointRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /service-points/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Сервис сам проверит, что пользователь управляет точкой
	result, err := h.service.Update(r.Context(), actor, servicePointID, &req)
	if err != nil {
		switch {
		case errors.Is(err, servicepoints.ErrServicePointNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, servicepoints.ErrAccessDenied):
			h.logger.Warn("PATCH /service-points/{id} - Access denied: service_point_id=%d, user_id=%d",
				servicePointID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, servicepoints.ErrInvalidWorkingHours):
			handlers.RespondBadRequest(w, msgInvalidWorkingHours)

		case errors.Is(err, servicepoints.ErrInvalidInput):
			h.logger.Warn("PATCH /service-points/{id} - Invalid data: service_point_id=%d, error=%v",
				servicePointID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /service-points/{id} - Failed to update service point: service_point_id=%d, error=%v",
				servicePointID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /service-points/{id} - Service point updated successfully: service_point_id=%d",
		servicePointID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
