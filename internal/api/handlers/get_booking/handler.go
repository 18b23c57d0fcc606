package get_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/api/middleware"
	"github.com/m04kA/SMC-TireService/internal/service/bookings"
	"github.com/m04kA/SMC-TireService/internal/service/bookings/models"
)

const (
	msgBadBookingID  = "ID бронирования должен быть положительным числом"
	msgNoBooking     = "бронирование не найдено"
	msgUnauthorized  = "требуется авторизация"
	msgNotYourRecord = "бронирование принадлежит другому пользователю или точке"
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

// Handle GET /api/v1/bookings/{bookingId}
// Клиенты опрашивают статус: отдаем ETag по updatedAt и 304 на If-None-Match
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	id, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Bad booking id: %v", err)
		handlers.RespondBadRequest(w, msgBadBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), actor, id)
	switch {
	case err == nil:
	case errors.Is(err, bookings.ErrBookingNotFound):
		handlers.RespondNotFound(w, msgNoBooking)
		return
	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("GET /bookings/{id} - Forbidden: booking_id=%d, user_id=%d, role=%s", id, actor.UserID, actor.Role)
		handlers.RespondForbidden(w, msgNotYourRecord)
		return
	default:
		h.logger.Error("GET /bookings/{id} - booking_id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	tag := etag(booking)
	w.Header().Set("ETag", tag)
	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, booking)
}

func etag(b *models.BookingResponse) string {
	return fmt.Sprintf(`"%d-%s-%d"`, b.ID, b.Status, b.UpdatedAt.UnixNano())
}
