package list_time_slots

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/service/timeslots"
)

const (
	msgInvalidServicePointID = "некорректный ID сервисной точки"
	msgInvalidDay            = "некорректный день недели, ожидается monday..sunday"
	msgNotFound              = "сервисная точка не найдена"
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

// Handle GET /api/v1/service-points/{id}/time-slots
// Query params: day (опционально, monday..sunday)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	servicePointID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /service-points/{id}/time-slots - Invalid service point ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServicePointID)
		return
	}

	var day *time.Weekday
	if dayStr := r.URL.Query().Get("day"); dayStr != "" {
		weekday, ok := domain.ParseWeekdayKey(strings.ToLower(dayStr))
		if !ok {
			handlers.RespondBadRequest(w, msgInvalidDay)
			return
		}
		day = &weekday
	}

	result, err := h.service.List(r.Context(), servicePointID, day)
	if err != nil {
		if errors.Is(err, timeslots.ErrServicePointNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /service-points/{id}/time-slots - Failed to list slots: service_point_id=%d, error=%v",
			servicePointID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
