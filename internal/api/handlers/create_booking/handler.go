package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/api/middleware"
	"github.com/m04kA/SMC-TireService/internal/domain"
	createBooking "github.com/m04kA/SMC-TireService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime          = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidData          = "некорректные данные бронирования"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgConcurrentBooking    = "слот только что заняли, попробуйте еще раз"
	msgServicePointNotFound = "сервисная точка не найдена"
	msgNotWorking           = "сервисная точка не принимает записи"
	msgInvalidBookingDate   = "некорректная дата бронирования"
	msgDateTooFar           = "дата бронирования слишком далеко в будущем"
	msgInvalidTimeSlot      = "время не совпадает с началом доступного слота"
	msgTooLateToBook        = "слишком поздно для бронирования этого слота"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Авторизация необязательна: если клиент представился, бронирование привязывается к нему
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var actor *domain.Actor
	if a, ok := middleware.GetActor(r.Context()); ok {
		actor = &a
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: service_point_id=%d, %s %s",
				req.ServicePointID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrConcurrentBooking):
			h.logger.Warn("POST /bookings - Concurrent booking: service_point_id=%d, %s %s",
				req.ServicePointID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgConcurrentBooking)

		case errors.Is(err, createBooking.ErrServicePointNotFound):
			h.logger.Warn("POST /bookings - Service point not found: service_point_id=%d", req.ServicePointID)
			handlers.RespondNotFound(w, msgServicePointNotFound)

		case errors.Is(err, createBooking.ErrServicePointNotWorking):
			h.logger.Warn("POST /bookings - Service point not working: service_point_id=%d", req.ServicePointID)
			handlers.RespondConflict(w, msgNotWorking)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: service_point_id=%d, time=%s",
				req.ServicePointID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: service_point_id=%d, error=%v",
				req.ServicePointID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, service_point_id=%d",
		result.Booking.ID, req.ServicePointID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
