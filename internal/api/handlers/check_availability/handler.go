package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-TireService/internal/usecase/check_availability"
)

const (
	msgInvalidServicePointID = "некорректный ID сервисной точки"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime           = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput          = "некорректные параметры запроса"
	msgServicePointNotFound  = "сервисная точка не найдена"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/service-points/{id}/availability
// Query params: date (YYYY-MM-DD), time (HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	servicePointID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /service-points/{id}/availability - Invalid service point ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServicePointID)
		return
	}

	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	at, err := handlers.ParseTime(r.URL.Query().Get("time"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		ServicePointID: servicePointID,
		Date:           date,
		Time:           at,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrServicePointNotFound):
			handlers.RespondNotFound(w, msgServicePointNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /service-points/{id}/availability - Failed to check availability: service_point_id=%d, error=%v",
				servicePointID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
