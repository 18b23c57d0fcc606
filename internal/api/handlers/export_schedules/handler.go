package export_schedules

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/api/middleware"
	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/service/schedules"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	msgInvalidServicePointID = "некорректный ID сервисной точки"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgNotFound              = "сервисная точка не найдена"
	msgForbidden             = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/service-points/{id}/schedules/export
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	servicePointID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /service-points/{id}/schedules/export - Invalid service point ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServicePointID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Книга собирается в буфер, чтобы ошибка не оборвала уже начатый ответ
	var buf bytes.Buffer
	if err := h.service.Export(r.Context(), actor, servicePointID, date, &buf); err != nil {
		switch {
		case errors.Is(err, schedules.ErrServicePointNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedules.ErrAccessDenied):
			h.logger.Warn("GET /service-points/{id}/schedules/export - Access denied: service_point_id=%d, user_id=%d",
				servicePointID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /service-points/{id}/schedules/export - Failed to export: service_point_id=%d, error=%v",
				servicePointID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	filename := fmt.Sprintf("schedule_%d_%s.xlsx", servicePointID, date.Format(domain.DateFormat))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("GET /service-points/{id}/schedules/export - Failed to write response: %v", err)
	}
}
