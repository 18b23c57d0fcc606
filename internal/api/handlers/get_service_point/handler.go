package get_service_point

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/service/servicepoints"
)

const (
	msgInvalidServicePointID = "некорректный ID сервисной точки"
	msgNotFound              = "сервисная точка не найдена"
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

// Handle GET /api/v1/service-points/{id}
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	servicePointID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /service-points/{id} - Invalid service point ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServicePointID)
		return
	}

	result, err := h.service.GetByID(r.Context(), servicePointID)
	if err != nil {
		if errors.Is(err, servicepoints.ErrServicePointNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /service-points/{id} - Failed to get service point: service_point_id=%d, error=%v",
			servicePointID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
