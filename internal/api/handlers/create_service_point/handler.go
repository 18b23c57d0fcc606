package create_service_point

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/api/middleware"
	"github.com/m04kA/SMC-TireService/internal/service/servicepoints"
	"github.com/m04kA/SMC-TireService/internal/service/servicepoints/models"
)

const (
	msgInvalidRequest      = "некорректный формат запроса"
	msgInvalidInput        = "некорректные данные сервисной точки"
	msgInvalidWorkingHours = "некорректные рабочие часы"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgPartnerNotFound     = "партнер не найден"
	msgForbidden           = "доступ запрещен"
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

// Handle POST /api/v1/service-points
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateServicePointRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /service-points - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, servicepoints.ErrPartnerNotFound):
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, servicepoints.ErrAccessDenied):
			h.logger.Warn("POST /service-points - Access denied: partner_id=%d, user_id=%d",
				req.PartnerID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, servicepoints.ErrInvalidWorkingHours):
			handlers.RespondBadRequest(w, msgInvalidWorkingHours)

		case errors.Is(err, servicepoints.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /service-points - Failed to create service point: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /service-points - Service point created: service_point_id=%d, partner_id=%d",
		result.ID, result.PartnerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
