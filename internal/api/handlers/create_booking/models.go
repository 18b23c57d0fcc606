package create_booking

import (
	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-TireService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServicePointID int64   `json:"servicePointId"`
	BookingDate    string  `json:"bookingDate"` // "2025-10-15"
	StartTime      string  `json:"startTime"`   // "10:00"
	CustomerName   string  `json:"customerName"`
	CustomerPhone  string  `json:"customerPhone"`
	CustomerEmail  *string `json:"customerEmail,omitempty"`
	CarModel       *string `json:"carModel,omitempty"`
	LicensePlate   *string `json:"licensePlate,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	models.BookingResponse
	TimeSlotID     int64 `json:"timeSlotId"`
	RemainingSpots int   `json:"remainingSpots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Ошибка парсинга даты оборачивается в errInvalidDate, времени - в errInvalidTime
func (r *CreateBookingRequest) ToUseCaseRequest(actor *domain.Actor) (*createBooking.Request, error) {
	bookingDate, err := handlers.ParseDate(r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := handlers.ParseTime(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		Actor:          actor,
		ServicePointID: r.ServicePointID,
		Date:           bookingDate,
		StartTime:      startTime,
		CustomerName:   r.CustomerName,
		CustomerPhone:  r.CustomerPhone,
		CustomerEmail:  r.CustomerEmail,
		CarModel:       r.CarModel,
		LicensePlate:   r.LicensePlate,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingResponse: *models.FromDomainBooking(resp.Booking),
		TimeSlotID:      resp.TimeSlotID,
		RemainingSpots:  resp.Remaining,
	}
}
