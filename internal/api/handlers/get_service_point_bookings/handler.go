package get_service_point_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/api/middleware"
	"github.com/m04kA/SMC-TireService/internal/service/bookings"
)

const (
	msgInvalidServicePointID = "некорректный ID сервисной точки"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidParams         = "некорректные параметры запроса"
	msgNotFound              = "сервисная точка не найдена"
	msgForbidden             = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/service-points/{id}/bookings
// Query params: date | startDate, endDate; status; includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	servicePointID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /service-points/{id}/bookings - Invalid service point ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServicePointID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	q := r.URL.Query()
	serviceReq, err := ToServiceRequest(servicePointID, q.Get("date"), q.Get("startDate"), q.Get("endDate"),
		q.Get("status"), q.Get("includeCancelled"))
	if err != nil {
		h.logger.Warn("GET /service-points/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит, что вызывающий управляет точкой
	result, err := h.service.GetServicePointBookings(r.Context(), actor, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrServicePointNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /service-points/{id}/bookings - Access denied: service_point_id=%d, user_id=%d",
				servicePointID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /service-points/{id}/bookings - Failed to get bookings: service_point_id=%d, error=%v",
				servicePointID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /service-points/{id}/bookings - Bookings retrieved successfully: service_point_id=%d, count=%d",
		servicePointID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
