package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-TireService/internal/usecase/get_available_slots"
)

const (
	msgInvalidServicePointID = "некорректный ID сервисной точки"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidBookingDate    = "дата в прошлом"
	msgDateTooFar            = "дата слишком далеко в будущем"
	msgServicePointNotFound  = "сервисная точка не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/service-points/{id}/available-slots
// Query params: date (required, YYYY-MM-DD), includeFull (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	servicePointID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /service-points/{id}/available-slots - Invalid service point ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServicePointID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(servicePointID, dateStr, r.URL.Query().Get("includeFull"))
	if err != nil {
		h.logger.Warn("GET /service-points/{id}/available-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServicePointNotFound):
			handlers.RespondNotFound(w, msgServicePointNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidServicePointID)

		default:
			h.logger.Error("GET /service-points/{id}/available-slots - Failed to get slots: service_point_id=%d, error=%v",
				servicePointID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /service-points/{id}/available-slots - Slots retrieved successfully: service_point_id=%d, slots_count=%d",
		servicePointID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
